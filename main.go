package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fastqFilter [options] <fastq_file>",
		Short: "Filter FASTQ reads by length and GC content",
		Long: `Filter reads of a FASTQ file by minimal sequence length and GC-content bounds.
Reads that pass are written to <base>_passed.fastq; with --keep_filtered the
others go to <base>_failed.fastq.

Options:
` + optionUsage() + `
Example:
  fastqFilter --min_length 50 --keep_filtered --gc_bounds 55 70 --output_base_name output_reads reads.fastq`,
		// Options take one or two space separated values, which pflag cannot
		// express; ParseArgs owns the tokens.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if arg == "-h" || arg == "--help" {
					return cmd.Help()
				}
			}

			cfg, err := ParseArgs(args)
			if err != nil {
				return err
			}
			if _, err := FilterReads(cfg, cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nFiltering completed")
			return nil
		},
	}
}

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		log.Fatalf("Error filtering reads: %v", err)
	}
}
