package tower

import (
	"errors"
	"io"
	"math/big"
	"time"
)

var (
	ErrNotImplemented = errors.New("gotower: not implemented")
	ErrDomain         = errors.New("gotower: argument out of domain")
)

type Calculator interface {
	Prod(i, h int) (*big.Int, error)
	Prod2(i int) (*big.Int, error)
	RunDemo(w io.Writer, h int) error
	CollectLevels(h int) (<-chan Level, chan<- struct{})
	CountNodes(u Universe) (NodeCount, error)
}

// Level is one row of the demo: both power-tower expressions at index I.
type Level struct {
	Index  int
	Height int
	Prod   *big.Int
	Prod2  *big.Int
}

// Universe is the key-space size of a van Emde Boas tree.
type Universe uint64

type NodeCount struct {
	Universe Universe
	Nodes    *big.Int
	Summary  *big.Int
}

type ProcUsage struct {
	User   time.Duration
	Sys    time.Duration
	MaxRSS uint64 // bytes
}
