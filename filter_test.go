package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGCPercent verifies the GC percentage, counting uppercase G and C only.
func TestGCPercent(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want float64
	}{
		{name: "AllGC", seq: "GCGCGCGCGC", want: 100},
		{name: "NoGC", seq: "ATATATATAT", want: 0},
		{name: "Half", seq: "GATC", want: 50},
		{name: "WithN", seq: "GNNN", want: 25},
		{name: "LowercaseNotCounted", seq: "gcGC", want: 50},
		{name: "OneThird", seq: "GAA", want: 100.0 / 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GCPercent(tc.seq)
			require.NoError(t, err)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("GCPercent(%q) = %v, want %v", tc.seq, got, tc.want)
			}
		})
	}
}

func TestGCPercentEmptySequence(t *testing.T) {
	_, err := GCPercent("")
	assert.ErrorIs(t, err, ErrMalformedRead)
}

// TestValidateRead checks the structural rules a record must satisfy before it is filtered.
func TestValidateRead(t *testing.T) {
	tests := []struct {
		name    string
		read    *FastqRead
		wantErr bool
	}{
		{name: "Valid", read: &FastqRead{Header: "@r", Sequence: "ACGT", Separator: "+", Quality: "IIII"}},
		{name: "SeparatorWithName", read: &FastqRead{Header: "@r", Sequence: "ACGT", Separator: "+r", Quality: "IIII"}},
		{name: "Nil", read: nil, wantErr: true},
		{name: "EmptySequence", read: &FastqRead{Header: "@r", Sequence: "", Separator: "+", Quality: ""}, wantErr: true},
		{name: "MissingAt", read: &FastqRead{Header: "r", Sequence: "ACGT", Separator: "+", Quality: "IIII"}, wantErr: true},
		{name: "MissingPlus", read: &FastqRead{Header: "@r", Sequence: "ACGT", Separator: "-", Quality: "IIII"}, wantErr: true},
		{name: "QualityLengthMismatch", read: &FastqRead{Header: "@r", Sequence: "ACGT", Separator: "+", Quality: "III"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRead(tc.read)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformedRead)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestClassifyRead verifies the verdict for reads on and around the length and GC bounds.
func TestClassifyRead(t *testing.T) {
	read := func(seq string) *FastqRead {
		return &FastqRead{Header: "@r", Sequence: seq, Separator: "+", Quality: seq}
	}

	tests := []struct {
		name string
		read *FastqRead
		cfg  Config
		want Verdict
	}{
		{name: "NoFilters", read: read("ATAT"), cfg: Config{GCUpper: 100}, want: Passed},
		{name: "LengthEqualMin", read: read("ATAT"), cfg: Config{MinLength: 4, GCUpper: 100}, want: Passed},
		{name: "TooShort", read: read("ATA"), cfg: Config{MinLength: 4, GCUpper: 100}, want: TooShort},
		{name: "GCAtLowerBound", read: read("GCAT"), cfg: Config{GCLower: 50, GCUpper: 60}, want: Passed},
		{name: "GCAtUpperBound", read: read("GCAT"), cfg: Config{GCLower: 40, GCUpper: 50}, want: Passed},
		{name: "GCBelowLower", read: read("GAAT"), cfg: Config{GCLower: 40, GCUpper: 60}, want: GCOutOfBounds},
		{name: "GCAboveUpper", read: read("GCGC"), cfg: Config{GCLower: 40, GCUpper: 60}, want: GCOutOfBounds},
		{name: "FailsBothReportsTooShort", read: read("GC"), cfg: Config{MinLength: 5, GCUpper: 50}, want: TooShort},
		{name: "ConcreteGCRead", read: read("GCGCGCGCGC"), cfg: Config{MinLength: 5, GCLower: 50, GCUpper: 100}, want: Passed},
		{name: "ConcreteATRead", read: read("ATATATATAT"), cfg: Config{MinLength: 5, GCLower: 50, GCUpper: 100}, want: GCOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyRead(tc.read, &tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyReadEmptySequence(t *testing.T) {
	_, err := ClassifyRead(&FastqRead{Header: "@r", Separator: "+"}, &Config{GCUpper: 100})
	assert.ErrorIs(t, err, ErrMalformedRead)

	passed, err := PassesFilter(&FastqRead{Header: "@r", Separator: "+"}, &Config{GCUpper: 100})
	assert.False(t, passed)
	assert.ErrorIs(t, err, ErrMalformedRead)
}

// PassesFilter must agree with the plain predicate for every bound combination.
func TestPassesFilterMatchesPredicate(t *testing.T) {
	seqs := []string{"A", "G", "AC", "GGGA", "ATATGC", "GCGCGCGCGC", "ATATATATAT", "NNNNGC", "acgtGC"}
	for _, seq := range seqs {
		for minLength := 0; minLength <= 8; minLength += 2 {
			for lower := 0; lower <= 100; lower += 25 {
				for upper := lower; upper <= 100; upper += 25 {
					cfg := &Config{MinLength: minLength, GCLower: lower, GCUpper: upper}
					read := &FastqRead{Header: "@r", Sequence: seq, Separator: "+", Quality: seq}

					gc, err := GCPercent(seq)
					require.NoError(t, err)
					want := len(seq) >= minLength && float64(lower) <= gc && gc <= float64(upper)

					got, err := PassesFilter(read, cfg)
					require.NoError(t, err)
					assert.Equal(t, want, got, fmt.Sprintf("seq=%s min=%d bounds=%d-%d", seq, minLength, lower, upper))
				}
			}
		}
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "too short", TooShort.String())
	assert.Equal(t, "GC out of bounds", GCOutOfBounds.String())
	assert.Equal(t, "Verdict(7)", Verdict(7).String())
}
