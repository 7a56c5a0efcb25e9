// Command modelzip-compress implements the compression side of §6:
// read a DIMACS formula and a satisfying model, emit the codec-encoded
// prediction bitstream. Single-file or batch-directory dispatch per
// the shared internal/cli package.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crillab/modelzip/cnf"
	"github.com/crillab/modelzip/cnf/dimacs"
	"github.com/crillab/modelzip/cnf/model"
	"github.com/crillab/modelzip/codec"
	"github.com/crillab/modelzip/compress"
	"github.com/crillab/modelzip/heuristic"
	"github.com/crillab/modelzip/internal/cli"
	"github.com/crillab/modelzip/stats"
)

func main() {
	cfg, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mode, err := cli.ResolveMode(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if mode == cli.SingleFile {
		if _, err := compressOne(cfg, cfg.Formula, cfg.Model, cfg.Output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	instances, err := cli.ListBatch(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var allStats []stats.Info
	for _, inst := range instances {
		modelFiles, err := os.ReadDir(inst.Model)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, mf := range modelFiles {
			if mf.IsDir() {
				continue
			}
			modelPath := filepath.Join(inst.Model, mf.Name())
			outputPath := filepath.Join(inst.Output, mf.Name())
			info, err := compressOne(cfg, inst.Formula, modelPath, outputPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			info.FormulaName = inst.Name
			info.ModelName = mf.Name()
			allStats = append(allStats, info)
		}
	}

	csvPath := filepath.Join(cfg.Output, "statistics.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := stats.WriteCSV(f, allStats); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// compressOne processes a single (formula, model, output) triple and
// returns the stats.Info row describing the run.
func compressOne(cfg cli.Config, formulaPath, modelPath, outputPath string) (stats.Info, error) {
	overallStart := time.Now()

	ff, err := os.Open(formulaPath)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}
	defer ff.Close()

	parseStart := time.Now()
	f, err := dimacs.Parse(ff)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}

	mf, err := os.Open(modelPath)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}
	defer mf.Close()
	mInfo, statErr := mf.Stat()
	var modelFileSize int64
	if statErr == nil {
		modelFileSize = mInfo.Size()
	}

	m, maxID, err := model.Parse(mf)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}
	if maxID > f.NbVars() {
		f.Grow(maxID)
	}
	parsingTime := time.Since(parseStart)

	h, err := heuristic.New(cfg.Heuristic, f, cfg.MomsK, cfg.HybridP)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}

	bits, st, err := compress.Compress(f, m, h, cfg.FlipThreshold)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}
	dontCare := 0
	for i := 1; i <= f.NbVars(); i++ {
		if st.Get(cnf.Var(i)) == cnf.Open {
			dontCare++
		}
	}

	distances := codec.DiffEncode(bits)
	backend, err := codec.New(cfg.Codec, cfg.GolombK, 3*len(m))
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}
	encoded, err := backend.Encode(distances)
	if err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}
	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return stats.Info{}, fmt.Errorf("modelzip-compress: %w", err)
	}

	hits := 0
	for _, b := range bits {
		if b {
			hits++
		}
	}
	hitRate := 0.0
	if len(bits) > 0 {
		hitRate = float64(hits) / float64(len(bits))
	}

	info := stats.Info{
		FormulaSize:         f.NbClauses(),
		VariablesSize:       f.NbVars(),
		ModelSize:           len(m),
		ModelFileSize:       modelFileSize,
		CompressionFileSize: int64(len(encoded)),
		BitvectorSize:       len(bits),
		DiffEncodingSize:    len(distances),
		NrPropDontCareVars:  dontCare,
		PredictionHitRate:   hitRate,
		ParsingTime:         parsingTime,
		OverallTime:         time.Since(overallStart),
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "modelzip-compress: %s -> %s (%d -> %d bytes)\n",
			modelPath, outputPath, modelFileSize, len(encoded))
	}
	return info, nil
}
