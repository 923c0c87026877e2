package main

import (
	"fmt"
	"strings"
)

// Verdict is the outcome of filtering a single read.
type Verdict int

const (
	Passed Verdict = iota
	TooShort
	GCOutOfBounds
)

func (v Verdict) String() string {
	switch v {
	case Passed:
		return "passed"
	case TooShort:
		return "too short"
	case GCOutOfBounds:
		return "GC out of bounds"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// ValidateRead checks the record shape before anything is computed from it.
func ValidateRead(read *FastqRead) error {
	if read == nil {
		return fmt.Errorf("%w: nil read", ErrMalformedRead)
	}
	if !strings.HasPrefix(read.Header, "@") {
		return fmt.Errorf("%w: expected '@' at the beginning of header line, got: %s", ErrMalformedRead, read.Header)
	}
	if len(read.Sequence) == 0 {
		return fmt.Errorf("%w: empty sequence in read %s", ErrMalformedRead, read.Header)
	}
	if !strings.HasPrefix(read.Separator, "+") {
		return fmt.Errorf("%w: expected '+' line in read %s, got: %s", ErrMalformedRead, read.Header, read.Separator)
	}
	if len(read.Sequence) != len(read.Quality) {
		return fmt.Errorf("%w: sequence and quality strings must have the same length in read %s, got: %d and %d",
			ErrMalformedRead, read.Header, len(read.Sequence), len(read.Quality))
	}
	return nil
}

// GCPercent counts uppercase G and C only; lowercase bases are not counted.
func GCPercent(seq string) (float64, error) {
	if len(seq) == 0 {
		return 0, fmt.Errorf("%w: cannot compute GC content of an empty sequence", ErrMalformedRead)
	}
	gc := strings.Count(seq, "G") + strings.Count(seq, "C")
	return 100 * float64(gc) / float64(len(seq)), nil
}

// ClassifyRead applies the length and GC-content predicates. A read failing
// both is reported as TooShort.
func ClassifyRead(read *FastqRead, cfg *Config) (Verdict, error) {
	gc, err := GCPercent(read.Sequence)
	if err != nil {
		return Passed, err
	}
	if len(read.Sequence) < cfg.MinLength {
		return TooShort, nil
	}
	if gc < float64(cfg.GCLower) || gc > float64(cfg.GCUpper) {
		return GCOutOfBounds, nil
	}
	return Passed, nil
}

func PassesFilter(read *FastqRead, cfg *Config) (bool, error) {
	v, err := ClassifyRead(read, cfg)
	if err != nil {
		return false, err
	}
	return v == Passed, nil
}
