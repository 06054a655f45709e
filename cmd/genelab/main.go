// SPDX-License-Identifier: MIT

// Command genelab runs the two processing tracks from the command line:
//
//	genelab process  — expression matrix → normalized/ternary matrices,
//	                   lists, similarity matrices, set libraries, edges
//	genelab overlap  — two gene-set libraries → scored pair table
//
// Configuration is layered: built-in defaults, optional YAML config
// file, GENELAB_* environment variables, then command-line flags.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "genelab",
	Short: "genelab converts expression matrices and gene-set libraries into derived artifacts",
	Long: `genelab is the batch ETL for gene-expression data: it canonicalizes
gene symbols, normalizes the matrix (filter/impute, log2, quantile,
z-score), ternarizes it, and derives lists, similarity matrices, set
libraries, and edge lists. A second track scores the overlap of two
gene-set libraries with Jaccard indices and Fisher exact tests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgFile)
		if err != nil {
			return err
		}

		level, err := zerolog.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("genelab: invalid log level %q: %w", cfg.Logging.Level, err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default ./genelab.yaml)")
	rootCmd.AddCommand(processCmd, overlapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "genelab:", err)
		os.Exit(1)
	}
}
