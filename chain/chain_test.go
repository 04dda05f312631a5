package chain

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/forcechain/contact"
	"github.com/phil-mansfield/forcechain/geom"
	"github.com/phil-mansfield/forcechain/io"
	"github.com/phil-mansfield/forcechain/mesh"
)

const header = "PointIds,Points:0,Points:1,Points:2\n"

var snapshots = map[string]string{
	// One contact.
	"frame2.csv": header + "0,0,0,0\n1,0.00015,0,0\n",
	// No contacts.
	"frame10.csv": header + "0,0,0,0\n1,0.001,0,0\n2,0,0.001,0\n",
	// Particle 0 touches 1 and 2, which share a position.
	"frame1.csv": header + "0,0,0,0\n1,0.0001,0,0\n2,0.0001,0,0\n",
	// Schema error.
	"frame3.csv": "PointIds,Points:0,Points:1\n0,0,0\n",
	// Unreadable value.
	"frame4.csv": header + "0,0,0,0\n1,zero,0,0\n",
}

func writeSnapshots(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range snapshots {
		file := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(file, []byte(text), 0644))
	}
	return dir
}

func TestRun(t *testing.T) {
	dir := writeSnapshots(t)
	files, err := io.FindSnapshots(dir, "*.csv")
	require.NoError(t, err)

	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), "")
	b.Workers = 3
	rs := b.Run(files)
	require.Len(t, rs, 5)

	names := []string{
		"frame1.csv", "frame2.csv", "frame3.csv", "frame4.csv", "frame10.csv",
	}
	statuses := []Status{Saved, Saved, SchemaError, Failed, NoContacts}
	for i := range rs {
		assert.Equal(t, names[i], filepath.Base(rs[i].File), "result %d", i)
		assert.Equal(t, statuses[i], rs[i].Status, "result %d: %v", i, rs[i].Err)
	}

	assert.Equal(t, 3, rs[0].Contacts)
	assert.Equal(t, 2, rs[0].Vertices)
	assert.Equal(t, 1, rs[1].Contacts)
	assert.Equal(t, 2, rs[1].Vertices)

	// Meshes are written next to their snapshots and nowhere else.
	for i, r := range rs {
		vtk := filepath.Join(dir, strings.TrimSuffix(names[i], ".csv")+".vtk")
		_, err := os.Stat(vtk)
		if r.Status == Saved {
			assert.Equal(t, vtk, r.Output)
			assert.NoError(t, err, vtk)
		} else {
			assert.Equal(t, "", r.Output)
			assert.True(t, os.IsNotExist(err), vtk)
		}
	}

	data, err := os.ReadFile(rs[1].Output)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "POINTS 2 double\n0 0 0\n0.00015 0 0\n")
	assert.Contains(t, text, "LINES 1 3\n2 0 1\n")
	assert.Contains(t, text, "CELL_DATA 1\nSCALARS Force double 1\n")

	s := Summarize(rs)
	assert.Equal(t, 5, s.Files)
	assert.Equal(t, 2, s.Written())
	assert.Equal(t, 2, s.Errors())
	assert.Equal(t, 1, s.Counts[NoContacts])
	assert.Equal(t, 4, s.Contacts)
}

func TestRunSingleWorker(t *testing.T) {
	dir := writeSnapshots(t)
	files, err := io.FindSnapshots(dir, "*.csv")
	require.NoError(t, err)

	outDir := t.TempDir()
	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), outDir)
	b.Workers = 0
	rs := b.Run(files)
	require.Len(t, rs, len(files))

	assert.Equal(t, filepath.Join(outDir, "frame1.vtk"), rs[0].Output)
	_, err = os.Stat(filepath.Join(dir, "frame1.vtk"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunEmpty(t *testing.T) {
	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), "")
	assert.Empty(t, b.Run(nil))
}

func TestProcessMissingFile(t *testing.T) {
	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), "")
	r := b.ProcessFile(filepath.Join(t.TempDir(), "frame1.csv"))
	assert.Equal(t, MissingInput, r.Status)
	assert.True(t, errors.Is(r.Err, io.ErrMissingInput))
}

func TestExportFailureContinues(t *testing.T) {
	dir := writeSnapshots(t)
	files := []string{
		filepath.Join(dir, "frame1.csv"), filepath.Join(dir, "frame2.csv"),
	}

	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), "")
	calls := 0
	b.Export = func(file string, m *mesh.Mesh) error {
		calls++
		if strings.HasSuffix(file, "frame1.vtk") {
			return errors.New("disk full")
		}
		return nil
	}
	b.Workers = 1

	rs := b.Run(files)
	assert.Equal(t, 2, calls)
	assert.Equal(t, Failed, rs[0].Status)
	assert.EqualError(t, rs[0].Err, "disk full")
	assert.Equal(t, Saved, rs[1].Status)
}

type panicReader struct{}

func (panicReader) ReadParticles(file string) ([]geom.Particle, error) {
	panic("corrupt snapshot")
}

func TestProcessRecoversPanic(t *testing.T) {
	b := NewBatch(panicReader{}, contact.DefaultMaterial(), "")
	rs := b.Run([]string{"frame1.csv", "frame2.csv"})
	for _, r := range rs {
		assert.Equal(t, Failed, r.Status)
		assert.Contains(t, r.Err.Error(), "corrupt snapshot")
	}
}

func TestExportMeshMismatch(t *testing.T) {
	var written *mesh.Mesh
	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), "")
	b.Export = func(file string, m *mesh.Mesh) error {
		written = m
		return nil
	}

	res := Result{File: "frame1.csv"}
	m := &mesh.Mesh{
		Points: []float64{0, 0, 0, 1, 1, 1},
		Lines:  [][]int{{0, 1}},
		Forces: []float64{1, 2},
	}
	b.exportMesh(&res, m)

	assert.Equal(t, Degraded, res.Status)
	assert.True(t, errors.Is(res.Err, mesh.ErrScalarMismatch))
	assert.False(t, res.Status.IsError())
	require.NotNil(t, written)
	assert.False(t, written.HasScalars())
	assert.Len(t, written.Lines, 1)
	assert.Equal(t, "frame1.vtk", res.Output)
}

func TestExportMeshMalformed(t *testing.T) {
	b := NewBatch(io.NewCSVReader(), contact.DefaultMaterial(), "")
	b.Export = func(file string, m *mesh.Mesh) error {
		t.Fatal("malformed mesh was exported")
		return nil
	}

	res := Result{File: "frame1.csv"}
	m := &mesh.Mesh{
		Points: []float64{0, 0, 0, 1, 1},
		Lines:  [][]int{{0, 1}},
		Forces: []float64{1},
	}
	b.exportMesh(&res, m)

	assert.Equal(t, MalformedGeometry, res.Status)
	assert.True(t, errors.Is(res.Err, mesh.ErrMalformedGeometry))
	assert.Equal(t, "", res.Output)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "NoContacts", NoContacts.String())
	assert.Equal(t, "Status(99)", Status(99).String())
	assert.False(t, Saved.IsError())
	assert.False(t, NoContacts.IsError())
	assert.True(t, SchemaError.IsError())
	assert.True(t, Failed.IsError())
}
