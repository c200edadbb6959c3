package tower_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	tower "github.com/cloudfoundry/gotower"
)

var _ tower.Calculator = &tower.ConcreteCalculator{}

var _ = Describe("ConcreteCalculator", func() {
	var (
		concreteCalculator *tower.ConcreteCalculator
		logs               *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		concreteCalculator = &tower.ConcreteCalculator{Logger: zap.New(core)}
	})

	Describe("RunDemo", func() {
		It("prints both expressions for height 2", func() {
			var out bytes.Buffer
			Expect(concreteCalculator.RunDemo(&out, 2)).To(Succeed())
			Expect(out.String()).To(Equal(
				"prod i = 1: 4\n" +
					"prod2 i = 1: 4\n" +
					"prod i = 2: 8\n" +
					"prod2 i = 2: 2\n"))
		})

		It("logs every computed value", func() {
			var out bytes.Buffer
			Expect(concreteCalculator.RunDemo(&out, 2)).To(Succeed())
			Expect(logs.FilterMessage("computed prod").Len()).To(Equal(2))
			Expect(logs.FilterMessage("computed prod2").Len()).To(Equal(2))
		})

		It("prints nothing for a height below 1", func() {
			var out bytes.Buffer
			Expect(concreteCalculator.RunDemo(&out, 0)).To(Succeed())
			Expect(out.Len()).To(BeZero())
		})

		It("stops at the first index prod2 is undefined for", func() {
			var out bytes.Buffer
			err := concreteCalculator.RunDemo(&out, 3)
			Expect(err).To(MatchError(tower.ErrDomain))
			Expect(out.String()).To(Equal(
				"prod i = 1: 16\n" +
					"prod2 i = 1: 4\n" +
					"prod i = 2: 64\n" +
					"prod2 i = 2: 2\n" +
					"prod i = 3: 128\n"))
		})

		It("groups digits when asked to", func() {
			concreteCalculator.Grouped = true
			var out bytes.Buffer
			Expect(concreteCalculator.RunDemo(&out, 2)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("prod i = 2: 8\n"))
		})
	})

	Describe("CollectLevels", func() {
		It("streams one level per index and closes", func() {
			levels, _ := concreteCalculator.CollectLevels(3)

			var got []tower.Level
			for level := range levels {
				got = append(got, level)
			}

			Expect(got).To(HaveLen(3))
			Expect(got[0].Index).To(Equal(1))
			Expect(got[0].Prod.Int64()).To(Equal(int64(16)))
			Expect(got[1].Prod2.Int64()).To(Equal(int64(2)))
			Expect(got[2].Prod.Int64()).To(Equal(int64(128)))
			Expect(got[2].Prod2).To(BeNil())
			Expect(logs.FilterMessage("level incomplete").Len()).To(Equal(1))
		})

		It("closes once stopped", func() {
			levels, stop := concreteCalculator.CollectLevels(8)

			Expect(<-levels).ToNot(BeZero())
			stop <- struct{}{}

			Eventually(func() bool {
				_, ok := <-levels
				return ok
			}).Should(BeFalse())
		})

		It("does not block when stopped after the last level", func() {
			levels, stop := concreteCalculator.CollectLevels(1)
			for range levels {
			}

			stop <- struct{}{}

			// If the stop channel blocked it would never get here
			Expect(true).To(BeTrue())
		})
	})

	Describe("CountNodes", func() {
		It("counts the nodes of a vEB tree", func() {
			count, err := concreteCalculator.CountNodes(16)
			Expect(err).ToNot(HaveOccurred())
			Expect(count.Universe).To(Equal(tower.Universe(16)))
			Expect(count.Nodes.Int64()).To(Equal(int64(13)))
			Expect(count.Summary.Int64()).To(Equal(int64(8)))
			Expect(count.Total().Int64()).To(Equal(int64(21)))
		})

		It("rejects universes that are not powers of two", func() {
			_, err := concreteCalculator.CountNodes(12)
			Expect(err).To(MatchError(tower.ErrDomain))
		})
	})

	Describe("LogUsage", func() {
		It("logs at debug level", func() {
			concreteCalculator.LogUsage()
			Expect(logs.FilterLevelExact(zapcore.DebugLevel).Len()).To(Equal(1))
		})
	})
})
