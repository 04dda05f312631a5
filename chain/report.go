package chain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Summary counts the outcomes of a batch.
type Summary struct {
	Files, Contacts int
	Counts          [StatusCount]int
}

// Summarize counts the statuses in rs.
func Summarize(rs []Result) Summary {
	s := Summary{Files: len(rs)}
	for i := range rs {
		s.Counts[rs[i].Status]++
		s.Contacts += rs[i].Contacts
	}
	return s
}

// Errors returns the number of snapshots which could not be converted.
func (s *Summary) Errors() int {
	n := 0
	for st := Status(0); st < StatusCount; st++ {
		if st.IsError() { n += s.Counts[st] }
	}
	return n
}

// Written returns the number of meshes written to disk.
func (s *Summary) Written() int { return s.Counts[Saved] + s.Counts[Degraded] }

// Report formats a per-file table followed by the summary line.
func (s *Summary) Report(rs []Result) string {
	lines := []string{
		headerStyle.Render(fmt.Sprintf(
			"%-24s %-18s %9s %10s %12s", "File", "Status",
			"Contacts", "Vertices", "Max Force",
		)),
	}

	for i := range rs {
		r := &rs[i]
		row := fmt.Sprintf("%-24s %-18s %9d %10d %12.4g",
			filepath.Base(r.File), r.Status, r.Contacts,
			r.Vertices, r.Stats.MaxForce)
		if r.Err != nil { row += "  " + r.Err.Error() }
		lines = append(lines, statusStyle(r.Status).Render(row))
	}

	lines = append(lines, headerStyle.Render(fmt.Sprintf(
		"%d files: %d written, %d without contacts, %d errors, %d contacts.",
		s.Files, s.Written(), s.Counts[NoContacts], s.Errors(), s.Contacts,
	)))

	return strings.Join(lines, "\n")
}

func statusStyle(st Status) lipgloss.Style {
	switch {
	case st == Saved:
		return okStyle
	case st.IsError():
		return errStyle
	}
	return warnStyle
}
