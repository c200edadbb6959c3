package tower

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

// Validate reports ErrDomain unless u is a power of two no smaller than 2.
func (u Universe) Validate() error {
	if u < 2 || u&(u-1) != 0 {
		return errors.Wrapf(ErrDomain, "universe %d is not a power of two >= 2", uint64(u))
	}
	return nil
}

// Lg is log2(u). Only meaningful for a valid universe.
func (u Universe) Lg() int {
	return bits.TrailingZeros64(uint64(u))
}

// UpperSqrt is 2^ceil(lg u / 2), the number of clusters of a node.
func (u Universe) UpperSqrt() uint64 {
	return 1 << uint((u.Lg()+1)/2)
}

// LowerSqrt is 2^floor(lg u / 2), the universe of each cluster.
func (u Universe) LowerSqrt() uint64 {
	return 1 << uint(u.Lg()/2)
}

// High is the cluster number of x.
func (u Universe) High(x uint64) uint64 {
	return x / u.LowerSqrt()
}

// Low is the position of x within its cluster.
func (u Universe) Low(x uint64) uint64 {
	return x % u.LowerSqrt()
}

// Index rebuilds x from High(x) and Low(x).
func (u Universe) Index(high, low uint64) uint64 {
	return high*u.LowerSqrt() + low
}

// Get counts the nodes of a vEB tree over u. Nodes are the tree and its
// clusters, recursively; Summary counts every node that belongs to a summary
// tree at any level.
func (n *NodeCount) Get(u Universe) error {
	if err := u.Validate(); err != nil {
		return err
	}

	c := countTree(u.Lg(), map[int]census{})

	n.Universe = u
	n.Nodes = c.nodes
	n.Summary = c.summary

	return nil
}

func (n *NodeCount) Total() *big.Int {
	return new(big.Int).Add(n.Nodes, n.Summary)
}

// Ratio is Nodes / Summary, +Inf for the base universe which has no summary.
func (n *NodeCount) Ratio() float64 {
	if n.Summary.Sign() == 0 {
		return math.Inf(1)
	}
	r, _ := new(big.Float).Quo(
		new(big.Float).SetInt(n.Nodes),
		new(big.Float).SetInt(n.Summary),
	).Float64()
	return r
}

type census struct {
	nodes, summary *big.Int
}

func countTree(lg int, memo map[int]census) census {
	if c, ok := memo[lg]; ok {
		return c
	}

	var c census
	if lg <= 1 {
		c = census{nodes: big.NewInt(1), summary: big.NewInt(0)}
	} else {
		upper, lower := (lg+1)/2, lg/2
		clusters := new(big.Int).Lsh(big.NewInt(1), uint(upper))

		cluster := countTree(lower, memo)
		summary := countTree(upper, memo)

		c.nodes = new(big.Int).Mul(clusters, cluster.nodes)
		c.nodes.Add(c.nodes, big.NewInt(1))

		c.summary = new(big.Int).Mul(clusters, cluster.summary)
		c.summary.Add(c.summary, summary.nodes)
		c.summary.Add(c.summary, summary.summary)
	}

	memo[lg] = c
	return c
}
