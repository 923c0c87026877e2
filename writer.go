package main

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

func createOutputFile(path string) (*os.File, error) {
	return os.Create(path)
}

// OutputFile is a buffered FASTQ output, optionally gzip compressed.
type OutputFile struct {
	Path   string
	file   *os.File
	gw     *pgzip.Writer
	writer *bufio.Writer
}

func NewOutputFile(path string, compress bool) (*OutputFile, error) {
	file, err := createOutputFile(path)
	if err != nil {
		return nil, err
	}
	out := &OutputFile{Path: path, file: file}

	var w io.Writer = file
	if compress {
		out.gw = pgzip.NewWriter(file)
		w = out.gw
	}
	out.writer = bufio.NewWriter(w)
	return out, nil
}

func (o *OutputFile) Write(read *FastqRead) error {
	return writeRead(o.writer, read)
}

// Close flushes the buffer and the gzip stream before closing the file.
// The file is closed even when flushing fails.
func (o *OutputFile) Close() error {
	err := o.writer.Flush()
	if o.gw != nil {
		if cerr := o.gw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := o.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// writeRead emits the four lines of a record, each newline terminated.
func writeRead(w *bufio.Writer, read *FastqRead) error {
	for _, line := range [4]string{read.Header, read.Sequence, read.Separator, read.Quality} {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// ReadWriter routes reads to the passed file or, when kept, the failed file.
type ReadWriter struct {
	passed    *OutputFile
	failed    *OutputFile
	discarded int64
}

// OpenReadWriter truncates or creates the output files used by cfg.
func OpenReadWriter(cfg *Config) (*ReadWriter, error) {
	passed, err := NewOutputFile(cfg.PassedPath(), cfg.GzipOutput)
	if err != nil {
		return nil, err
	}
	rw := &ReadWriter{passed: passed}
	if cfg.KeepFiltered {
		rw.failed, err = NewOutputFile(cfg.FailedPath(), cfg.GzipOutput)
		if err != nil {
			passed.Close()
			return nil, err
		}
	}
	return rw, nil
}

func (rw *ReadWriter) Write(read *FastqRead, passed bool) error {
	if passed {
		return rw.passed.Write(read)
	}
	if rw.failed == nil {
		rw.discarded++
		return nil
	}
	return rw.failed.Write(read)
}

// Discarded counts failing reads dropped because KeepFiltered is off.
func (rw *ReadWriter) Discarded() int64 {
	return rw.discarded
}

func (rw *ReadWriter) Close() error {
	err := rw.passed.Close()
	if rw.failed != nil {
		err = errors.Join(err, rw.failed.Close())
	}
	return err
}
