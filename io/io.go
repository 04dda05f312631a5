/*package io reads particle snapshots and writes contact meshes.
*/
package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/forcechain/geom"
)

const (
	// Column names written by ParaView's spreadsheet export.
	DefaultIDColumn = "PointIds"
	DefaultXColumn  = "Points:0"
	DefaultYColumn  = "Points:1"
	DefaultZColumn  = "Points:2"
)

var (
	// ErrMissingInput is returned when a snapshot does not exist.
	ErrMissingInput = errors.New("snapshot file not found")
	// ErrMissingColumns is returned when a snapshot lacks a required column.
	ErrMissingColumns = errors.New("required columns are missing")
)

// SnapshotReader reads the particles contained in a single snapshot file.
type SnapshotReader interface {
	ReadParticles(file string) ([]geom.Particle, error)
}

// CSVReader reads comma-separated snapshots with a header row. Columns are
// located by name and any other columns are ignored.
type CSVReader struct {
	IDColumn, XColumn, YColumn, ZColumn string
}

// NewCSVReader returns a CSVReader which uses ParaView's column names.
func NewCSVReader() *CSVReader {
	return &CSVReader{
		DefaultIDColumn, DefaultXColumn, DefaultYColumn, DefaultZColumn,
	}
}

// ReadParticles reads all particles in file.
func (rd *CSVReader) ReadParticles(file string) ([]geom.Particle, error) {
	f, err := os.Open(file)
	if err != nil { return nil, openErr(file, err) }
	defer f.Close()

	return rd.Read(f, file)
}

// Read reads particles from r. name is only used in error messages.
func (rd *CSVReader) Read(r io.Reader, name string) ([]geom.Particle, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w in %s: file is empty", ErrMissingColumns, name)
	} else if err != nil {
		return nil, fmt.Errorf("could not read header of %s: %v", name, err)
	}

	names := []string{rd.IDColumn, rd.XColumn, rd.YColumn, rd.ZColumn}
	cols, missing := columnIndices(header, names)
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"%w in %s: %s", ErrMissingColumns, name, strings.Join(missing, ", "),
		)
	}

	ps := []geom.Particle{}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("could not read %s: %v", name, err)
		}

		p, err := parseParticle(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d of %s: %v", row, name, err)
		}
		ps = append(ps, p)
	}

	return ps, nil
}

// columnIndices finds the position of each name in header. Names which
// do not appear are returned in missing.
func columnIndices(header, names []string) (cols []int, missing []string) {
	pos := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := pos[h]; !ok { pos[h] = i }
	}

	cols = make([]int, len(names))
	for i, name := range names {
		idx, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[i] = idx
	}
	return cols, missing
}

func parseParticle(rec []string, cols []int) (geom.Particle, error) {
	p := geom.Particle{}

	id, err := parseID(strings.TrimSpace(rec[cols[0]]))
	if err != nil { return p, err }

	var x [3]float64
	for k := 0; k < 3; k++ {
		s := strings.TrimSpace(rec[cols[k+1]])
		x[k], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return p, fmt.Errorf("invalid coordinate '%s'", s)
		}
	}

	p.ID, p.Pos = id, r3.Vec{X: x[0], Y: x[1], Z: x[2]}
	return p, nil
}

// parseID accepts integer identifiers, including ones written in floating
// point notation by tools which store every column as a double.
func parseID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil { return id, nil }

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("invalid particle ID '%s'", s)
	}
	return int64(f), nil
}

// TableReader reads whitespace-separated text snapshots by column index.
type TableReader struct {
	IDIndex, XIndex, YIndex, ZIndex int
}

// ReadParticles reads all particles in file.
func (rd *TableReader) ReadParticles(file string) ([]geom.Particle, error) {
	if _, err := os.Stat(file); err != nil { return nil, openErr(file, err) }

	colIdxs := []int{ rd.IDIndex, rd.XIndex, rd.YIndex, rd.ZIndex }
	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %v", file, err)
	}

	ids, xs, ys, zs := cols[0], cols[1], cols[2], cols[3]
	ps := make([]geom.Particle, len(ids))
	for i := range ps {
		if ids[i] != math.Trunc(ids[i]) {
			return nil, fmt.Errorf(
				"row %d of %s: invalid particle ID %g", i, file, ids[i],
			)
		}
		ps[i].ID = int64(ids[i])
		ps[i].Pos = r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}
	}

	return ps, nil
}

func openErr(file string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingInput, file)
	}
	return err
}
