package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
)

// FilterStats holds per-run read counts.
type FilterStats struct {
	Total         int64
	Passed        int64
	Failed        int64
	TooShort      int64
	GCOutOfBounds int64
	// Discarded is the part of Failed that was not written anywhere.
	Discarded int64
}

func (s *FilterStats) add(v Verdict) {
	s.Total++
	switch v {
	case Passed:
		s.Passed++
		return
	case TooShort:
		s.TooShort++
	case GCOutOfBounds:
		s.GCOutOfBounds++
	}
	s.Failed++
}

// PassedPercentage is 0 for an empty input.
func (s *FilterStats) PassedPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}

func Comma(value int64) string {
	str := strconv.FormatInt(value, 10)
	result := ""
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 && str[i] != '-' {
			result = "," + result
		}
		result = string(str[i]) + result
		count++
	}
	return result
}

func printBanner(out io.Writer, cfg *Config) {
	color.New(color.FgHiCyan).Fprintf(out, "Filtering %s\n", cfg.InputPath)
	if cfg.MinLength > 0 {
		fmt.Fprintf(out, "  Minimum length:   %d\n", cfg.MinLength)
	} else {
		fmt.Fprintf(out, "  Minimum length:   not set\n")
	}
	fmt.Fprintf(out, "  GC bounds:        %d-%d%%\n", cfg.GCLower, cfg.GCUpper)
	fmt.Fprintf(out, "  Keep filtered:    %t\n", cfg.KeepFiltered)
	fmt.Fprintf(out, "  Passed reads to:  %s\n", cfg.PassedPath())
	if cfg.KeepFiltered {
		fmt.Fprintf(out, "  Failed reads to:  %s\n", cfg.FailedPath())
	}
}

func printSummary(out io.Writer, stats *FilterStats, duration time.Duration) {
	fmt.Fprintf(out, "\nTotal reads: %s\n", Comma(stats.Total))
	fmt.Fprintf(out, "Passed reads: %s\n", Comma(stats.Passed))
	color.New(color.FgHiGreen).Fprintf(out, "Percentage of passed reads: %.2f%%\n", stats.PassedPercentage())
	color.New(color.FgHiMagenta).Fprintf(out, "\nToo short count: %s\n", Comma(stats.TooShort))
	color.New(color.FgHiMagenta).Fprintf(out, "GC out of bounds count: %s\n", Comma(stats.GCOutOfBounds))
	if stats.Discarded > 0 {
		fmt.Fprintf(out, "Discarded reads: %s\n", Comma(stats.Discarded))
	}
	fmt.Fprintf(out, "\nApplication execution time: %s\n", duration)
}

// FilterReads runs one pass over cfg.InputPath, writing every read to the
// passed file or, with KeepFiltered, the failed file. Output files are closed
// on every return path; whatever was written before an error stays on disk.
func FilterReads(cfg *Config, out io.Writer) (*FilterStats, error) {
	startTime := time.Now()
	printBanner(out, cfg)

	if err := checkOutputPaths(cfg); err != nil {
		return nil, err
	}
	inFile, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	rw, err := OpenReadWriter(cfg)
	if err != nil {
		return nil, err
	}

	stats, err := filterStream(NewFastqReader(inFile), rw, cfg)
	if cerr := rw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	stats.Discarded = rw.Discarded()

	printSummary(out, stats, time.Since(startTime))
	return stats, nil
}

func filterStream(reader *FastqReader, rw *ReadWriter, cfg *Config) (*FilterStats, error) {
	stats := &FilterStats{}
	for {
		read, err := reader.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		if err := ValidateRead(read); err != nil {
			return stats, fmt.Errorf("line %d: %w", reader.Lines()-3, err)
		}
		verdict, err := ClassifyRead(read, cfg)
		if err != nil {
			return stats, err
		}
		if err := rw.Write(read, verdict == Passed); err != nil {
			return stats, err
		}
		stats.add(verdict)
	}
}
