// Package cli implements the argument parsing and file/directory
// dispatch shared by cmd/modelzip-compress and cmd/modelzip-decompress
// (§6), grounded on original_source's CompressionMain.cpp/
// DecompressionMain.cpp main() (single-file vs. batch-directory branch)
// and written in gophersat's own flat flag.NewFlagSet CLI idiom.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crillab/modelzip/codec"
	"github.com/crillab/modelzip/heuristic"
)

// ArgumentError reports a malformed invocation (§7): wrong argc parity,
// an unknown flag value, or mixed file/directory arguments.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return fmt.Sprintf("argument error: %s", e.Msg) }

// Config holds the parsed CLI configuration shared by both binaries.
type Config struct {
	Formula string
	Model   string
	Output  string

	Heuristic     string
	Codec         string
	MomsK         float64
	GolombK       uint
	FlipThreshold int
	HybridP       float64
	Verbose       bool
}

// Defaults per §6's option enumeration.
const (
	DefaultHeuristic     = heuristic.JewaDyn
	DefaultCodec         = codec.GolRiceName
	DefaultMomsK         = 10.0
	DefaultGolombK       = 2
	DefaultFlipThreshold = 5
	DefaultHybridP       = 0.5
)

var validHeuristics = map[string]bool{
	heuristic.None: true, heuristic.Jewa: true, heuristic.JewaDyn: true,
	heuristic.Moms: true, heuristic.MomsDyn: true, heuristic.Hybr: true, heuristic.HybrDyn: true,
}

var validCodecs = map[string]bool{
	codec.GolRiceName: true, codec.ZipName: true, codec.LZ4Name: true,
}

// Parse parses argv (not including the program name) per §6's grammar:
// three positional paths followed by `-flag value` pairs. Parse checks
// the argc parity itself: apart from the value-less `-v` switch, the
// arguments after the three positionals must form an even run of pairs.
func Parse(argv []string) (Config, error) {
	if len(argv) < 3 {
		return Config{}, &ArgumentError{Msg: "expected <formula> <model> <output> [flags...]"}
	}
	flagArgs := 0
	for _, a := range argv[3:] {
		if a != "-v" && !strings.HasPrefix(a, "-v=") {
			flagArgs++
		}
	}
	if flagArgs%2 != 0 {
		return Config{}, &ArgumentError{Msg: "argument count parity error: flags must come in -name value pairs"}
	}

	cfg := Config{
		Formula:       argv[0],
		Model:         argv[1],
		Output:        argv[2],
		Heuristic:     DefaultHeuristic,
		Codec:         DefaultCodec,
		MomsK:         DefaultMomsK,
		GolombK:       DefaultGolombK,
		FlipThreshold: DefaultFlipThreshold,
		HybridP:       DefaultHybridP,
	}

	fs := flag.NewFlagSet("modelzip", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.Heuristic, "h", DefaultHeuristic, "heuristic")
	fs.StringVar(&cfg.Codec, "c", DefaultCodec, "codec")
	fs.Float64Var(&cfg.MomsK, "mp", DefaultMomsK, "MOMS exponent base-2")
	var golombK int
	fs.IntVar(&golombK, "grp", DefaultGolombK, "Golomb-Rice k")
	fs.IntVar(&cfg.FlipThreshold, "p", DefaultFlipThreshold, "consecutive-miss flip threshold")
	fs.Float64Var(&cfg.HybridP, "hp", DefaultHybridP, "hybrid blend parameter")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose progress output")

	if err := fs.Parse(argv[3:]); err != nil {
		return Config{}, &ArgumentError{Msg: fmt.Sprintf("unknown flag: %v", err)}
	}
	if fs.NArg() != 0 {
		return Config{}, &ArgumentError{Msg: fmt.Sprintf("unexpected trailing arguments: %v", fs.Args())}
	}
	cfg.GolombK = uint(golombK)

	if !validHeuristics[cfg.Heuristic] {
		return Config{}, &ArgumentError{Msg: fmt.Sprintf("unknown heuristic %q", cfg.Heuristic)}
	}
	if !validCodecs[cfg.Codec] {
		return Config{}, &ArgumentError{Msg: fmt.Sprintf("unknown codec %q", cfg.Codec)}
	}
	if golombK < 0 {
		return Config{}, &ArgumentError{Msg: "-grp must be >= 0"}
	}
	if cfg.FlipThreshold < 1 {
		return Config{}, &ArgumentError{Msg: "-p must be >= 1"}
	}

	return cfg, nil
}

// Mode is the single-triple vs. batch-directory dispatch of §6.
type Mode int

const (
	// SingleFile processes one (formula, model, output) triple.
	SingleFile Mode = iota
	// BatchDirectory walks <model>/<inst>/ subdirectories.
	BatchDirectory
)

// ResolveMode inspects the formula and model paths and determines the
// dispatch mode, rejecting a file/directory mix between those two (§6).
// The output path is not inspected.
func ResolveMode(cfg Config) (Mode, error) {
	fInfo, err := os.Stat(cfg.Formula)
	if err != nil {
		return 0, &ArgumentError{Msg: fmt.Sprintf("formula path: %v", err)}
	}
	mInfo, err := os.Stat(cfg.Model)
	if err != nil {
		return 0, &ArgumentError{Msg: fmt.Sprintf("model path: %v", err)}
	}

	fIsDir := fInfo.IsDir()
	mIsDir := mInfo.IsDir()
	if fIsDir != mIsDir {
		return 0, &ArgumentError{Msg: "formula and model arguments must both be files or both be directories"}
	}
	if fIsDir {
		return BatchDirectory, nil
	}
	return SingleFile, nil
}

// Instance is one (formula, model) pair to process, with the output
// path it should produce, as enumerated by a BatchDirectory walk.
type Instance struct {
	Name    string // subdirectory / instance name
	Formula string
	Model   string
	Output  string
}

// ListBatch enumerates the triples a batch run must process: for every
// subdirectory <model>/<inst>/, require <formula>/<inst>.cnf and create
// <output>/<inst>/ (§6). Instance.Model is the instance directory
// itself; the caller is responsible for iterating files inside it.
func ListBatch(cfg Config) ([]Instance, error) {
	entries, err := os.ReadDir(cfg.Model)
	if err != nil {
		return nil, &ArgumentError{Msg: fmt.Sprintf("reading model directory: %v", err)}
	}
	var instances []Instance
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		inst := e.Name()
		formulaPath := filepath.Join(cfg.Formula, inst+".cnf")
		if _, err := os.Stat(formulaPath); err != nil {
			return nil, &ArgumentError{Msg: fmt.Sprintf("missing formula for instance %q: %v", inst, err)}
		}
		outDir := filepath.Join(cfg.Output, inst)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("cli: creating output directory: %w", err)
		}
		instances = append(instances, Instance{
			Name:    inst,
			Formula: formulaPath,
			Model:   filepath.Join(cfg.Model, inst),
			Output:  outDir,
		})
	}
	return instances, nil
}
