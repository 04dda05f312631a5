package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phil-mansfield/forcechain/mesh"
)

// MeshExt is the extension given to written meshes.
const MeshExt = ".vtk"

/*
Meshes are written as legacy VTK PolyData in ASCII so that older versions of
ParaView can read them:

    # vtk DataFile Version 4.2
    <title>
    ASCII
    DATASET POLYDATA
    POINTS <n> double
    <x> <y> <z>         (n lines)
    LINES <m> <3m>
    2 <i> <j>           (m lines)
    CELL_DATA <m>
    SCALARS Force double 1
    LOOKUP_TABLE default
    <force>             (m lines)

The CELL_DATA block is omitted if the mesh has no scalars.
*/

// WriteVTK writes m to w. The mesh should have passed Check.
func WriteVTK(w io.Writer, m *mesh.Mesh, title string) error {
	bw := bufio.NewWriter(w)

	title = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' { return ' ' }
		return r
	}, title)
	if len(title) > 255 { title = title[:255] }

	fmt.Fprintln(bw, "# vtk DataFile Version 4.2")
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET POLYDATA")

	n := m.Vertices()
	fmt.Fprintf(bw, "POINTS %d double\n", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "%s %s %s\n", ftoa(m.Points[3*i]),
			ftoa(m.Points[3*i+1]), ftoa(m.Points[3*i+2]))
	}

	size := 0
	for _, line := range m.Lines { size += len(line) + 1 }
	fmt.Fprintf(bw, "LINES %d %d\n", len(m.Lines), size)
	for _, line := range m.Lines {
		bw.WriteString(strconv.Itoa(len(line)))
		for _, idx := range line {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx))
		}
		bw.WriteByte('\n')
	}

	if m.HasScalars() {
		fmt.Fprintf(bw, "CELL_DATA %d\n", len(m.Lines))
		fmt.Fprintf(bw, "SCALARS %s double 1\n", mesh.ForceName)
		fmt.Fprintln(bw, "LOOKUP_TABLE default")
		for _, f := range m.Forces {
			bw.WriteString(ftoa(f))
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// WriteVTKFile writes m to the given file, replacing any existing file.
func WriteVTKFile(file string, m *mesh.Mesh) error {
	f, err := os.Create(file)
	if err != nil { return err }

	title := fmt.Sprintf("Contact forces from %s", filepath.Base(file))
	if err = WriteVTK(f, m, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OutputPath returns the file a snapshot's mesh is written to: the
// snapshot's base name with MeshExt, inside outDir, or next to the snapshot
// if outDir is empty.
func OutputPath(snapshot, outDir string) string {
	base := filepath.Base(snapshot)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + MeshExt
	if outDir == "" { outDir = filepath.Dir(snapshot) }
	return filepath.Join(outDir, base)
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
