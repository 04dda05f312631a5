package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/phil-mansfield/forcechain/chain"
	"github.com/phil-mansfield/forcechain/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil { log.Fatal(err.Error()) }
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil { log.Fatal(err.Error()) }
	}
}

func main() {
	var (
		forceChain, exampleConfig string
	)
	vars := map[string]*string{
		"ForceChain":    &forceChain,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&chain.NumCores, "Threads", runtime.NumCPU(),
		"Number of snapshots processed at once. Default is the number of "+
			"logical cores.",
	)
	flag.StringVar(
		&forceChain, "ForceChain", "",
		"Configuration file for [ForceChain] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'ForceChain'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }

	switch modeName {
	case "ForceChain":
		con, err := io.ReadForceChainConfig(forceChain)
		if err != nil { log.Fatal(err.Error()) }

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidPattern() {
			log.Fatal("Invalid 'Pattern' value.")
		} else if !con.ValidInputFormat() {
			log.Fatalf(
				"Unrecognized 'InputFormat' value '%s'. Must be one of "+
					"[ %s | %s ].", con.InputFormat, io.CSVFormat, io.TableFormat,
			)
		} else if !con.ValidColumns() {
			log.Fatal("Invalid column names or column indices.")
		} else if err := con.Material().Check(); err != nil {
			log.Fatal(err.Error())
		}

		if chain.NumCores < 1 {
			log.Fatalf("'Threads' must be positive, but is %d.", chain.NumCores)
		}

		fg, err := setupFileGroup(con)
		if err != nil { log.Fatal(err.Error()) }
		code := forceChainMain(con)
		fg.Close()
		os.Exit(code)

	case "ExampleConfig":
		switch strings.ToLower(exampleConfig) {
		case "forcechain":
			fmt.Println(io.ExampleForceChainFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'ForceChain'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" { setNames = append(setNames, name) }
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but forcechain "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupFileGroup redirects logging and starts profiling if the config asks
// for it.
func setupFileGroup(con *io.ForceChainConfig) (*FileGroup, error) {
	fg := &FileGroup{}

	if con.ValidLogFile() {
		var err error
		fg.log, err = os.Create(con.LogFile)
		if err != nil { return nil, err }
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		var err error
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil { return nil, err }
		if err = pprof.StartCPUProfile(fg.prof); err != nil { return nil, err }
	}

	return fg, nil
}

// forceChainMain converts every snapshot in the input directory and returns
// the process exit code: 0 if every snapshot was either written or had no
// contacts, 1 otherwise.
func forceChainMain(con *io.ForceChainConfig) int {
	files, err := io.FindSnapshots(con.Input, con.Pattern)
	if err != nil { log.Fatal(err.Error()) }
	if len(files) == 0 {
		log.Printf("No files in %s match '%s'.", con.Input, con.Pattern)
		return 0
	}
	for _, file := range files {
		if !io.HasDigits(file) {
			log.Printf("%s has no digits in its name and is processed first.",
				file)
		}
	}

	if con.ValidOutput() {
		if err = os.MkdirAll(con.Output, 0777); err != nil {
			log.Fatal(err.Error())
		}
	}

	b := chain.NewBatch(con.Reader(), con.Material(), con.Output)
	results := b.Run(files)

	summary := chain.Summarize(results)
	fmt.Println(summary.Report(results))

	if con.ValidPlotFile() {
		if err := chain.PlotForces(results, con.PlotFile); err != nil {
			log.Println(err.Error())
		}
	}

	if summary.Errors() > 0 { return 1 }
	return 0
}
