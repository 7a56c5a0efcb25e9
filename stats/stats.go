// Package stats supplements spec.md's distilled CLI scope with the
// batch statistics aggregation named out of scope in §1 but implied by
// §6's directory-batch-mode contract and the "CompressionInfo/contracts"
// line of the Size Budget. Grounded on
// original_source/src/util/Output.h's CompressionInfo/StatsOutput.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// Info mirrors one row of original_source's CompressionInfo, renamed
// to Go field-naming conventions.
type Info struct {
	FormulaName         string
	ModelName           string
	FormulaSize         int
	ModelSize           int
	VariablesSize       int
	ModelFileSize       int64
	CompressionFileSize int64
	BitvectorSize       int
	DiffEncodingSize    int
	NrPropDontCareVars  int
	PredictionHitRate   float64
	ParsingTime         time.Duration
	OverallTime         time.Duration
}

// CompressionRatioFileSize is modelFileSize / compressionFileSize.
func (i Info) CompressionRatioFileSize() float64 {
	if i.CompressionFileSize == 0 {
		return 0
	}
	return float64(i.ModelFileSize) / float64(i.CompressionFileSize)
}

// CompressionRatioBitvector compares against a plain bitvector encoding
// of the model (1 bit per variable, rounded up to a byte), matching
// Output.h's bitvectorFileSize computation.
func (i Info) CompressionRatioBitvector() float64 {
	if i.CompressionFileSize == 0 || i.ModelSize == 0 {
		return 0
	}
	bitvectorFileSize := 1 + (i.ModelSize-1)/8
	return float64(bitvectorFileSize) / float64(i.CompressionFileSize)
}

// Aggregate holds the cross-run statistics StatsOutput computes:
// averages, geometric means and medians of the compression ratios.
type Aggregate struct {
	AvgModelSize         float64
	AvgModelFileSize     float64
	AvgCompressedSize    float64
	GeoMeanFileSize      float64
	MedianFileSize       float64
	GeoMeanBitvector     float64
	MedianBitvector      float64
	GeoMeanHitRate       float64
	AvgNrDontCareVars    float64
	AvgParsingTime       time.Duration
	AvgOverallTime       time.Duration
}

// NewAggregate computes an Aggregate over stats, matching
// StatsOutput's constructor arithmetic (arithmetic mean of sizes,
// geometric mean and median of ratios).
func NewAggregate(statistics []Info) Aggregate {
	if len(statistics) == 0 {
		return Aggregate{}
	}
	n := float64(len(statistics))
	var agg Aggregate
	agg.GeoMeanFileSize, agg.GeoMeanBitvector, agg.GeoMeanHitRate = 1, 1, 1

	var parsing, overall time.Duration
	for _, s := range statistics {
		agg.AvgModelSize += float64(s.ModelSize)
		agg.AvgModelFileSize += float64(s.ModelFileSize)
		agg.AvgCompressedSize += float64(s.CompressionFileSize)
		agg.GeoMeanFileSize *= math.Pow(s.CompressionRatioFileSize(), 1/n)
		agg.GeoMeanBitvector *= math.Pow(s.CompressionRatioBitvector(), 1/n)
		if s.PredictionHitRate != 0 {
			agg.GeoMeanHitRate *= math.Pow(s.PredictionHitRate, 1/n)
		}
		agg.AvgNrDontCareVars += float64(s.NrPropDontCareVars)
		parsing += s.ParsingTime
		overall += s.OverallTime
	}
	agg.AvgModelSize /= n
	agg.AvgModelFileSize /= n
	agg.AvgCompressedSize /= n
	agg.AvgNrDontCareVars /= n
	agg.AvgParsingTime = time.Duration(float64(parsing) / n)
	agg.AvgOverallTime = time.Duration(float64(overall) / n)

	agg.MedianFileSize = median(statistics, Info.CompressionRatioFileSize)
	agg.MedianBitvector = median(statistics, Info.CompressionRatioBitvector)
	return agg
}

func median(statistics []Info, ratio func(Info) float64) float64 {
	sorted := make([]Info, len(statistics))
	copy(sorted, statistics)
	sort.Slice(sorted, func(i, j int) bool { return ratio(sorted[i]) < ratio(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return ratio(sorted[mid])
	}
	return (ratio(sorted[mid-1]) + ratio(sorted[mid])) / 2.0
}

// Print writes a StatsOutput::printStatistics-style report to w.
func Print(w io.Writer, statistics []Info) {
	agg := NewAggregate(statistics)
	fmt.Fprintf(w, "%-36s%-40s%-10s%-10s%-10s%-10s%-10s%-10s%-10s\n",
		"Instance:", "Model:", "Clauses", "Vars", "Model", "File", "Compr.", "Compr.", "Predic")
	for _, s := range statistics {
		fmt.Fprintf(w, "%-36s%-40s%-10d%-10d%-10d%-10d%-10d%-10.4f%-10.4f\n",
			s.FormulaName, s.ModelName, s.FormulaSize, s.VariablesSize, s.ModelSize,
			s.ModelFileSize, s.CompressionFileSize, s.CompressionRatioFileSize(), s.PredictionHitRate)
	}
	fmt.Fprintf(w, "\nAverage model size: %v\n", agg.AvgModelSize)
	fmt.Fprintf(w, "Average model file size: %v\n", agg.AvgModelFileSize)
	fmt.Fprintf(w, "Average compressed file size: %v\n", agg.AvgCompressedSize)
	fmt.Fprintf(w, "Geometric mean of compression ratios with file sizes: %v\n", agg.GeoMeanFileSize)
	fmt.Fprintf(w, "Median of compression ratio with file sizes: %v\n", agg.MedianFileSize)
	fmt.Fprintf(w, "Geometric mean of compression ratios compared to a bitvector: %v\n", agg.GeoMeanBitvector)
	fmt.Fprintf(w, "Median of compression ratio compared to a bitvector: %v\n", agg.MedianBitvector)
	fmt.Fprintf(w, "Geometric mean of prediction model hit rates: %v\n", agg.GeoMeanHitRate)
	fmt.Fprintf(w, "Average number of propagated don't care variables: %v\n", agg.AvgNrDontCareVars)
	fmt.Fprintf(w, "Average parsing time per model: %v\n", agg.AvgParsingTime)
	fmt.Fprintf(w, "Average execution time per model: %v\n", agg.AvgOverallTime)
}

// WriteCSV writes one row per Info plus the aggregate summary,
// matching StatsOutput::writeToCsv's layout.
func WriteCSV(w io.Writer, statistics []Info) error {
	agg := NewAggregate(statistics)
	if _, err := io.WriteString(w, "Instance, Model, Clauses count, Variables count, Model variable count, "+
		"Model file size, Compressed file size, Compression ratio file sizes, Compression ratio bitvector, "+
		"Prediction model hit rate, Parsing time, Execution time, Bitvector size, Diff encoding size, "+
		"Number of propagated don't care vars\n"); err != nil {
		return err
	}
	for _, s := range statistics {
		if _, err := fmt.Fprintf(w, "%s, %s, %d, %d, %d, %d, %d, %v, %v, %v, %v, %v, %d, %d, %d\n",
			s.FormulaName, s.ModelName, s.FormulaSize, s.VariablesSize, s.ModelSize, s.ModelFileSize,
			s.CompressionFileSize, s.CompressionRatioFileSize(), s.CompressionRatioBitvector(),
			s.PredictionHitRate, s.ParsingTime, s.OverallTime, s.BitvectorSize, s.DiffEncodingSize,
			s.NrPropDontCareVars); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nAverage model file size:, %v\nAverage compressed file size:, %v\n"+
		"Geometric mean of compression ratios with file sizes:, %v\nMedian of compression ratio with file sizes:, %v\n"+
		"Geometric mean of compression ratios compared to a bitvector:, %v\nMedian of compression ratio compared to a bitvector:, %v\n"+
		"Geometric mean of prediction model hit rates:, %v\nNumber of propagated don't care variables:, %v\n"+
		"Average parsing time per model:, %v\nAverage execution time per model:, %v\n",
		agg.AvgModelFileSize, agg.AvgCompressedSize, agg.GeoMeanFileSize, agg.MedianFileSize,
		agg.GeoMeanBitvector, agg.MedianBitvector, agg.GeoMeanHitRate, agg.AvgNrDontCareVars,
		agg.AvgParsingTime, agg.AvgOverallTime)
	return err
}
