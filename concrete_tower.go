package tower

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	prodFormat  = "prod i = %d: %s\n"
	prod2Format = "prod2 i = %d: %s\n"
)

type ConcreteCalculator struct {
	Logger *zap.Logger
	// Grouped prints demo values with thousands separators.
	Grouped bool
}

func (c *ConcreteCalculator) Prod(i, h int) (*big.Int, error) {
	v, err := Prod(i, h)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("computed prod",
		zap.Int("i", i),
		zap.Int("height", h),
		zap.Int("bits", v.BitLen()),
	)
	return v, nil
}

func (c *ConcreteCalculator) Prod2(i int) (*big.Int, error) {
	v, err := Prod2(i)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("computed prod2",
		zap.Int("i", i),
		zap.Int("bits", v.BitLen()),
	)
	return v, nil
}

// RunDemo writes a prod and a prod2 line for every index in 1..h. It stops at
// the first index one of them cannot be computed for; lines already written
// are left in w.
func (c *ConcreteCalculator) RunDemo(w io.Writer, h int) error {
	for i := 1; i <= h; i++ {
		prod, err := c.Prod(i, h)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, prodFormat, i, FormatValue(prod, c.Grouped)); err != nil {
			return errors.Wrap(err, "writing prod")
		}

		prod2, err := c.Prod2(i)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, prod2Format, i, FormatValue(prod2, c.Grouped)); err != nil {
			return errors.Wrap(err, "writing prod2")
		}
	}
	return nil
}

func (c *ConcreteCalculator) CollectLevels(h int) (<-chan Level, chan<- struct{}) {
	levelsCh := make(chan Level, 1)

	// stopCh is buffered so a consumer can stop after the producer is gone
	stopCh := make(chan struct{}, 1)

	go func() {
		defer close(levelsCh)

		for i := 1; i <= h; i++ {
			var level Level
			if err := level.Get(i, h); err != nil {
				c.logger().Debug("level incomplete", zap.Int("i", i), zap.Error(err))
			}

			select {
			case levelsCh <- level:
			case <-stopCh:
				return
			}
		}
	}()

	return levelsCh, stopCh
}

func (c *ConcreteCalculator) CountNodes(u Universe) (NodeCount, error) {
	var count NodeCount
	if err := count.Get(u); err != nil {
		return NodeCount{}, err
	}
	c.logger().Debug("counted nodes",
		zap.Uint64("universe", uint64(u)),
		zap.String("total", count.Total().String()),
	)
	return count, nil
}

func (c *ConcreteCalculator) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// LogUsage logs the resources the process has used so far at debug level.
func (c *ConcreteCalculator) LogUsage() {
	var usage ProcUsage
	if err := usage.Get(); err != nil {
		c.logger().Debug("process usage unavailable", zap.Error(err))
		return
	}
	c.logger().Debug("process usage",
		zap.Duration("user", usage.User),
		zap.Duration("sys", usage.Sys),
		zap.String("max_rss", humanize.Bytes(usage.MaxRSS)),
	)
}
