package io

import (
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/forcechain/contact"
)

const (
	ExampleForceChainFile = `[ForceChain]

#######################
# Required Parameters #
#######################

# Directory containing the particle snapshots. Every file matching Pattern
# is processed, ordered by the number formed from the digits in its name
# (frame1.csv, frame2.csv, frame10.csv).
Input = path/to/input/dir

#######################
# Optional Parameters #
#######################

# Glob pattern used to select snapshots inside Input. Default is *.csv.
# Pattern = *.csv

# Directory that .vtk files are written to. By default each mesh is written
# next to the snapshot it was built from.
# Output = path/to/output/dir

# The format of the snapshots. Must be one of [ CSV | Table ]. CSV files
# need a header row and are read by column name (ParaView's spreadsheet
# export, for example). Table files are whitespace-separated text with
# '#' comments and are read by column index. Default is CSV.
# InputFormat = CSV

# Column names used by the CSV format.
# IDColumn = PointIds
# XColumn = Points:0
# YColumn = Points:1
# ZColumn = Points:2

# Zero-indexed columns used by the Table format.
# IDIndex = 0
# XIndex = 1
# YIndex = 2
# ZIndex = 3

# Material properties. All particles are identical spheres. Diameter is in
# meters and YoungsModulus in Pascals.
# Diameter = 0.0002
# YoungsModulus = 1e6
# PoissonRatio = 0.3

# Writes a plot of the mean and maximum contact force in each snapshot.
# Requires python and matplotlib.
# PlotFile = forces.png

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

// Input formats understood by ForceChainConfig.InputFormat.
const (
	CSVFormat   = "CSV"
	TableFormat = "Table"
)

type ForceChainConfig struct {
	// Required
	Input string

	// Optional
	Pattern, Output string
	InputFormat     string

	IDColumn, XColumn, YColumn, ZColumn string
	IDIndex, XIndex, YIndex, ZIndex     int

	Diameter, YoungsModulus, PoissonRatio float64

	PlotFile             string
	LogFile, ProfileFile string
}

type ForceChainWrapper struct {
	ForceChain ForceChainConfig
}

func DefaultForceChainWrapper() *ForceChainWrapper {
	con := ForceChainConfig{
		Pattern:     "*.csv",
		InputFormat: CSVFormat,

		IDColumn: DefaultIDColumn,
		XColumn:  DefaultXColumn,
		YColumn:  DefaultYColumn,
		ZColumn:  DefaultZColumn,
		IDIndex:  0, XIndex: 1, YIndex: 2, ZIndex: 3,

		Diameter:      contact.DefaultDiameter,
		YoungsModulus: contact.DefaultYoungsModulus,
		PoissonRatio:  contact.DefaultPoissonRatio,
	}
	return &ForceChainWrapper{con}
}

// ReadForceChainConfig reads a [ForceChain] config file on top of the
// default values.
func ReadForceChainConfig(fname string) (*ForceChainConfig, error) {
	wrap := DefaultForceChainWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil { return nil, err }
	return &wrap.ForceChain, nil
}

func (con *ForceChainConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *ForceChainConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *ForceChainConfig) ValidPattern() bool {
	return con.Pattern != ""
}
func (con *ForceChainConfig) ValidInputFormat() bool {
	return strings.EqualFold(con.InputFormat, CSVFormat) ||
		strings.EqualFold(con.InputFormat, TableFormat)
}
func (con *ForceChainConfig) ValidColumns() bool {
	if strings.EqualFold(con.InputFormat, TableFormat) {
		return con.IDIndex >= 0 && con.XIndex >= 0 &&
			con.YIndex >= 0 && con.ZIndex >= 0
	}
	return con.IDColumn != "" && con.XColumn != "" &&
		con.YColumn != "" && con.ZColumn != ""
}
func (con *ForceChainConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}
func (con *ForceChainConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *ForceChainConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// Material returns the particle material described by the config.
func (con *ForceChainConfig) Material() *contact.Material {
	return &contact.Material{
		Diameter:      con.Diameter,
		YoungsModulus: con.YoungsModulus,
		PoissonRatio:  con.PoissonRatio,
	}
}

// Reader returns the SnapshotReader for the config's input format.
func (con *ForceChainConfig) Reader() SnapshotReader {
	if strings.EqualFold(con.InputFormat, TableFormat) {
		return &TableReader{
			IDIndex: con.IDIndex, XIndex: con.XIndex,
			YIndex: con.YIndex, ZIndex: con.ZIndex,
		}
	}
	return &CSVReader{
		IDColumn: con.IDColumn, XColumn: con.XColumn,
		YColumn: con.YColumn, ZColumn: con.ZColumn,
	}
}
