/*package chain runs the contact force pipeline over a batch of snapshots:
each file is read, its contacts are found, and the resulting mesh is
written next to it. A failure in one snapshot never stops the batch.
*/
package chain

import (
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/phil-mansfield/forcechain/contact"
	"github.com/phil-mansfield/forcechain/io"
	"github.com/phil-mansfield/forcechain/mesh"
)

// NumCores is the default number of snapshots processed at once.
var NumCores = runtime.NumCPU()

type Status int
const (
	Saved Status = iota
	Degraded
	NoContacts
	MissingInput
	SchemaError
	MalformedGeometry
	Failed
	StatusCount
)

var statusNames = [StatusCount]string{
	"Saved", "Degraded", "NoContacts", "MissingInput", "SchemaError",
	"MalformedGeometry", "Failed",
}

func (s Status) String() string {
	if s < 0 || s >= StatusCount { return fmt.Sprintf("Status(%d)", int(s)) }
	return statusNames[s]
}

// IsError returns true for statuses which mean the snapshot could not be
// converted. NoContacts and Degraded are not errors.
func (s Status) IsError() bool { return s >= MissingInput }

// Result is the outcome of processing a single snapshot.
type Result struct {
	File, Output string
	Status       Status
	Err          error

	Particles, Contacts, Vertices int
	Stats                         Stats
}

// Batch holds everything which is shared between snapshots.
type Batch struct {
	Reader   io.SnapshotReader
	Material *contact.Material
	OutDir   string
	Workers  int

	// Export writes a finished mesh. It is io.WriteVTKFile by default.
	Export func(file string, m *mesh.Mesh) error
}

// NewBatch creates a Batch which writes meshes to outDir, or next to their
// snapshots if outDir is empty.
func NewBatch(
	rd io.SnapshotReader, mat *contact.Material, outDir string,
) *Batch {
	return &Batch{
		Reader: rd, Material: mat, OutDir: outDir,
		Workers: NumCores,
		Export: io.WriteVTKFile,
	}
}

// Run processes every file and returns one Result per file, in the same
// order as files. Files are split between b.Workers goroutines.
func (b *Batch) Run(files []string) []Result {
	results := make([]Result, len(files))
	if len(files) == 0 { return results }

	workers := b.Workers
	if workers < 1 { workers = 1 }
	if workers > len(files) { workers = len(files) }

	jobs := make(chan int, len(files))
	for i := range files { jobs <- i }
	close(jobs)

	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go func(id int) {
			for i := range jobs { results[i] = b.ProcessFile(files[i]) }
			out <- id
		}(id)
	}
	for i := 0; i < workers; i++ { <-out }

	return results
}

// ProcessFile converts a single snapshot. Errors, including panics, are
// reported through the Result.
func (b *Batch) ProcessFile(file string) (res Result) {
	res.File = file
	defer func() {
		if r := recover(); r != nil {
			res.Status = Failed
			res.Err = fmt.Errorf("unexpected failure: %v", r)
			log.Printf("An error occurred while processing %s: %v", file, r)
		}
	}()

	log.Printf("Processing file: %s", file)

	ps, err := b.Reader.ReadParticles(file)
	if err != nil {
		res.Status, res.Err = classify(err), err
		log.Printf("Could not read %s: %v", file, err)
		return res
	}
	res.Particles = len(ps)

	cs, found := contact.Detect(ps, b.Material)
	if !found {
		res.Status = NoContacts
		log.Printf("No contacts found in %s", file)
		return res
	}
	res.Contacts = len(cs)
	res.Stats = NewStats(cs, len(ps))

	b.exportMesh(&res, mesh.Assemble(cs))
	return res
}

// exportMesh checks m and writes it, filling in the remaining fields of res.
func (b *Batch) exportMesh(res *Result, m *mesh.Mesh) {
	res.Vertices = m.Vertices()
	status := Saved

	if err := m.Check(); errors.Is(err, mesh.ErrScalarMismatch) {
		log.Printf("Mismatch in %s: %v. Writing mesh without forces.",
			res.File, err)
		m.DropScalars()
		res.Err = err
		status = Degraded
	} else if err != nil {
		res.Status, res.Err = MalformedGeometry, err
		log.Printf("Error in points data for %s: %v", res.File, err)
		return
	}

	out := io.OutputPath(res.File, b.OutDir)
	if err := b.Export(out, m); err != nil {
		res.Status, res.Err = Failed, err
		log.Printf("Could not write %s: %v", out, err)
		return
	}

	res.Output, res.Status = out, status
	log.Printf("VTK file saved to %s", out)
}

func classify(err error) Status {
	switch {
	case errors.Is(err, io.ErrMissingInput):
		return MissingInput
	case errors.Is(err, io.ErrMissingColumns):
		return SchemaError
	}
	return Failed
}
