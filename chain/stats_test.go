package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/forcechain/contact"
)

func TestNewStats(t *testing.T) {
	cs := []contact.Contact{{Force: 4}, {Force: 1}, {Force: 2}}
	s := NewStats(cs, 3)

	assert.InDelta(t, 7.0/3, s.MeanForce, 1e-12)
	assert.Equal(t, 4.0, s.MaxForce)
	assert.Equal(t, 2.0, s.MedianForce)
	assert.Equal(t, 7.0, s.TotalForce)
	assert.InDelta(t, 2.0, s.Coordination, 1e-12)

	// The input order is left alone.
	assert.Equal(t, 4.0, cs[0].Force)

	assert.Equal(t, Stats{}, NewStats(nil, 10))
}

func TestForceSeries(t *testing.T) {
	rs := []Result{
		{Contacts: 2, Stats: Stats{MeanForce: 1, MaxForce: 2}},
		{Status: NoContacts},
		{Contacts: 1, Stats: Stats{MeanForce: 3, MaxForce: 3}},
	}
	xs, means, maxes := forceSeries(rs)
	assert.Equal(t, []float64{0, 2}, xs)
	assert.Equal(t, []float64{1, 3}, means)
	assert.Equal(t, []float64{2, 3}, maxes)

	assert.Error(t, PlotForces([]Result{{Status: NoContacts}}, "forces.png"))
}

func TestReport(t *testing.T) {
	rs := []Result{
		{File: "dir/frame1.csv", Status: Saved, Contacts: 3, Vertices: 2},
		{File: "dir/frame2.csv", Status: NoContacts},
		{File: "dir/frame3.csv", Status: SchemaError,
			Err: assert.AnError},
	}
	s := Summarize(rs)
	report := s.Report(rs)

	assert.Contains(t, report, "frame1.csv")
	assert.Contains(t, report, "NoContacts")
	assert.Contains(t, report, assert.AnError.Error())
	assert.Contains(t, report,
		"3 files: 1 written, 1 without contacts, 1 errors, 3 contacts.")
	assert.Len(t, strings.Split(report, "\n"), 5)
}
