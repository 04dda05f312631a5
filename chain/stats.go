package chain

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/forcechain/contact"
)

// Stats summarizes the contact forces in a single snapshot.
type Stats struct {
	MeanForce, MedianForce, MaxForce float64
	TotalForce                       float64
	Coordination                     float64 // Mean contacts per particle
}

// NewStats computes Stats for the contacts found among n particles.
func NewStats(cs []contact.Contact, n int) Stats {
	if len(cs) == 0 { return Stats{} }

	fs := make([]float64, len(cs))
	for i := range cs { fs[i] = cs[i].Force }

	s := Stats{
		MeanForce:    stat.Mean(fs, nil),
		MaxForce:     floats.Max(fs),
		TotalForce:   floats.Sum(fs),
		Coordination: contact.CoordinationNumber(cs, n),
	}

	sort.Float64s(fs)
	s.MedianForce = stat.Quantile(0.5, stat.Empirical, fs, nil)

	return s
}
