package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// maxLineLength bounds a single FASTQ line; long-read data easily exceeds bufio's 64k default.
const maxLineLength = 16 * 1024 * 1024

type FastqRead struct {
	Header    string
	Sequence  string
	Separator string
	Quality   string
}

// FastqReader streams 4-line records from an input in file order.
type FastqReader struct {
	scanner *bufio.Scanner
	lines   int64
}

func NewFastqReader(r io.Reader) *FastqReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &FastqReader{scanner: scanner}
}

// Next returns the next read, or io.EOF once no complete record is left.
// A trailing group of fewer than 4 lines is dropped.
func (fr *FastqReader) Next() (*FastqRead, error) {
	var lines [4]string
	for i := range lines {
		if !fr.scanner.Scan() {
			if err := fr.scanner.Err(); err != nil {
				return nil, fmt.Errorf("error reading file: %w", err)
			}
			return nil, io.EOF
		}
		fr.lines++
		lines[i] = strings.TrimRightFunc(fr.scanner.Text(), unicode.IsSpace)
	}
	return &FastqRead{
		Header:    lines[0],
		Sequence:  lines[1],
		Separator: lines[2],
		Quality:   lines[3],
	}, nil
}

// Lines is the number of lines consumed so far.
func (fr *FastqReader) Lines() int64 {
	return fr.lines
}
