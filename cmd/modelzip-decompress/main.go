// Command modelzip-decompress implements the decompression side of §6:
// read a DIMACS formula and a codec-encoded prediction bitstream,
// reconstruct the satisfying assignment. Single-file or
// batch-directory dispatch per the shared internal/cli package.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crillab/modelzip/cnf/dimacs"
	"github.com/crillab/modelzip/cnf/model"
	"github.com/crillab/modelzip/codec"
	"github.com/crillab/modelzip/compress"
	"github.com/crillab/modelzip/heuristic"
	"github.com/crillab/modelzip/internal/cli"
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
		if err := decompressOne(cfg, cfg.Formula, cfg.Model, cfg.Output); err != nil {
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
	for _, inst := range instances {
		compressedFiles, err := os.ReadDir(inst.Model)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, mf := range compressedFiles {
			if mf.IsDir() {
				continue
			}
			modelPath := filepath.Join(inst.Model, mf.Name())
			outputPath := filepath.Join(inst.Output, mf.Name())
			if err := decompressOne(cfg, inst.Formula, modelPath, outputPath); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	}
}

// decompressOne processes a single (formula, compressed-model, output)
// triple, writing the reconstructed assignment in the §6 model format.
func decompressOne(cfg cli.Config, formulaPath, compressedPath, outputPath string) error {
	ff, err := os.Open(formulaPath)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}
	defer ff.Close()

	f, err := dimacs.Parse(ff)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}

	encoded, err := os.ReadFile(compressedPath)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}

	backend, err := codec.New(cfg.Codec, cfg.GolombK, 0)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}
	distances, err := backend.Decode(encoded)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}

	h, err := heuristic.New(cfg.Heuristic, f, cfg.MomsK, cfg.HybridP)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}

	st, err := compress.Decompress(f, distances, h, cfg.FlipThreshold)
	if err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}
	line := model.Format(st, f.NbVars()) + "\n"
	if err := os.WriteFile(outputPath, []byte(line), 0o644); err != nil {
		return fmt.Errorf("modelzip-decompress: %w", err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "modelzip-decompress: %s -> %s\n", compressedPath, outputPath)
	}
	return nil
}
