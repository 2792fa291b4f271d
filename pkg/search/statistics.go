package search

import "fmt"

// Statistics summarizes a single root search call: AlphaBeta.Search resets it on entry.
type Statistics struct {
	Nodes      uint64
	TTHits     uint64
	NullCuts   uint64
	FutilCuts  uint64
	BetaCutoff uint64
}

func (s Statistics) String() string {
	return fmt.Sprintf("nodes=%v tthits=%v nullcuts=%v futilcuts=%v betacuts=%v",
		s.Nodes, s.TTHits, s.NullCuts, s.FutilCuts, s.BetaCutoff)
}
