package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// optionSpec describes a named option and how many values follow it.
type optionSpec struct {
	name    string
	minArgs int
	maxArgs int
	usage   string
}

var optionSchema = []optionSpec{
	{name: "--min_length", minArgs: 1, maxArgs: 1, usage: "INT     minimal read length to pass the filter, must be > 0"},
	{name: "--keep_filtered", usage: "        write reads that fail the filter to <base>_failed.fastq"},
	{name: "--gc_bounds", minArgs: 1, maxArgs: 2, usage: "INT [INT] GC-content bounds in percent; a single value is the upper bound"},
	{name: "--output_base_name", minArgs: 1, maxArgs: 1, usage: "STR  prefix for output files (default: input file name without extension)"},
	{name: "--gzip_output", usage: "          compress output files with gzip"},
}

func lookupOption(name string) (optionSpec, bool) {
	for _, spec := range optionSchema {
		if spec.name == name {
			return spec, true
		}
	}
	return optionSpec{}, false
}

// Config is the validated configuration of a single run.
type Config struct {
	MinLength      int
	KeepFiltered   bool
	GCLower        int
	GCUpper        int
	OutputBaseName string
	InputPath      string
	GzipOutput     bool
}

// rawOptions holds what was given on the command line; nil means "not supplied".
type rawOptions struct {
	minLength      *int
	keepFiltered   bool
	gcBounds       []int
	outputBaseName *string
	gzipOutput     bool
}

// ParseArgs turns command line tokens (without the program name) into a Config.
// The last token is the FASTQ file, everything before it are options.
func ParseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing fastq file", ErrInvalidArgument)
	}
	inputPath := args[len(args)-1]
	if strings.HasPrefix(inputPath, "--") {
		return nil, fmt.Errorf("%w: missing fastq file after %s", ErrInvalidArgument, inputPath)
	}

	values, err := splitOptions(args[:len(args)-1])
	if err != nil {
		return nil, err
	}
	raw, err := parseOptionValues(values)
	if err != nil {
		return nil, err
	}
	if err := checkInputFile(inputPath); err != nil {
		return nil, err
	}
	cfg := raw.resolve(inputPath)
	if err := checkOutputPaths(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitOptions groups option tokens with the values that follow them.
func splitOptions(tokens []string) (map[string][]string, error) {
	values := make(map[string][]string)
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if !strings.HasPrefix(tok, "--") {
			return nil, fmt.Errorf("%w: unexpected argument %q", ErrInvalidArgument, tok)
		}
		spec, ok := lookupOption(tok)
		if !ok {
			return nil, fmt.Errorf("%w: unknown option %s", ErrInvalidArgument, tok)
		}
		if _, seen := values[tok]; seen {
			return nil, fmt.Errorf("%w: option %s given more than once", ErrInvalidArgument, tok)
		}
		i++

		optArgs := []string{}
		for i < len(tokens) && !strings.HasPrefix(tokens[i], "--") {
			optArgs = append(optArgs, tokens[i])
			i++
		}
		switch {
		case len(optArgs) < spec.minArgs:
			return nil, fmt.Errorf("%w: option %s requires a value", ErrInvalidArgument, tok)
		case len(optArgs) > spec.maxArgs && spec.maxArgs == 0:
			return nil, fmt.Errorf("%w: option %s takes no value, got %q", ErrInvalidArgument, tok, optArgs[0])
		case len(optArgs) > spec.maxArgs:
			return nil, fmt.Errorf("%w: option %s takes at most %d values, got %d", ErrInvalidArgument, tok, spec.maxArgs, len(optArgs))
		}
		values[tok] = optArgs
	}
	return values, nil
}

func parseOptionValues(values map[string][]string) (*rawOptions, error) {
	raw := &rawOptions{}

	if v, ok := values["--min_length"]; ok {
		n, err := parseNonNegative("--min_length", v[0])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: --min_length must be > 0", ErrInvalidArgument)
		}
		raw.minLength = &n
	}

	if v, ok := values["--gc_bounds"]; ok {
		bounds := make([]int, 0, len(v))
		for _, s := range v {
			n, err := parseNonNegative("--gc_bounds", s)
			if err != nil {
				return nil, err
			}
			if n > 100 {
				return nil, fmt.Errorf("%w: --gc_bounds value %d is above 100", ErrInvalidArgument, n)
			}
			bounds = append(bounds, n)
		}
		if len(bounds) == 2 && bounds[0] > bounds[1] {
			return nil, fmt.Errorf("%w: --gc_bounds lower bound %d is greater than upper bound %d", ErrInvalidArgument, bounds[0], bounds[1])
		}
		raw.gcBounds = bounds
	}

	if v, ok := values["--output_base_name"]; ok {
		if strings.TrimSpace(v[0]) == "" {
			return nil, fmt.Errorf("%w: --output_base_name must not be empty", ErrInvalidArgument)
		}
		raw.outputBaseName = &v[0]
	}

	_, raw.keepFiltered = values["--keep_filtered"]
	_, raw.gzipOutput = values["--gzip_output"]
	return raw, nil
}

func parseNonNegative(option, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects an integer, got %q", ErrInvalidArgument, option, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidArgument, option, n)
	}
	return n, nil
}

func checkInputFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return nil
}

// checkOutputPaths refuses output files that would truncate the input.
func checkOutputPaths(cfg *Config) error {
	input, err := os.Stat(cfg.InputPath)
	if err != nil {
		return err
	}
	paths := []string{cfg.PassedPath()}
	if cfg.KeepFiltered {
		paths = append(paths, cfg.FailedPath())
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		if os.SameFile(input, info) {
			return fmt.Errorf("%w: --output_base_name %s would overwrite the input file %s", ErrInvalidArgument, cfg.OutputBaseName, cfg.InputPath)
		}
	}
	return nil
}

// resolve fills in defaults for everything that was not supplied.
func (raw *rawOptions) resolve(inputPath string) *Config {
	cfg := &Config{
		KeepFiltered: raw.keepFiltered,
		GCLower:      0,
		GCUpper:      100,
		InputPath:    inputPath,
		GzipOutput:   raw.gzipOutput,
	}
	if raw.minLength != nil {
		cfg.MinLength = *raw.minLength
	}
	switch len(raw.gcBounds) {
	case 1:
		cfg.GCUpper = raw.gcBounds[0]
	case 2:
		cfg.GCLower, cfg.GCUpper = raw.gcBounds[0], raw.gcBounds[1]
	}
	if raw.outputBaseName != nil {
		cfg.OutputBaseName = *raw.outputBaseName
	} else {
		cfg.OutputBaseName = baseName(inputPath)
	}
	return cfg
}

// baseName strips the directory and the last extension from a path.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (c *Config) outputPath(suffix string) string {
	path := c.OutputBaseName + suffix + ".fastq"
	if c.GzipOutput {
		path += ".gz"
	}
	return path
}

// PassedPath is the file that receives reads passing the filter.
func (c *Config) PassedPath() string {
	return c.outputPath("_passed")
}

// FailedPath is the file that receives failing reads when KeepFiltered is set.
func (c *Config) FailedPath() string {
	return c.outputPath("_failed")
}

func optionUsage() string {
	var b strings.Builder
	for _, spec := range optionSchema {
		fmt.Fprintf(&b, "  %s %s\n", spec.name, spec.usage)
	}
	return b.String()
}
