// Package main provides the CLI entry point for sheetjson.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukaji3/sheetjson/pkg/sheetjson"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var (
		cfgFile string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "sheetjson",
		Short: "Convert a worksheet into a JSON array of records",
		Long: `sheetjson reads one sheet of an Excel workbook and writes its rows as a
JSON array of objects keyed by the header row.

With no flags it converts sheet "Reservations" of Dataset.xlsx into
reservations.json in the working directory and prints nothing on success.
Settings can also come from sheetjson.yaml or SHEETJSON_* environment variables.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd.Root().PersistentFlags(), cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := decodeConfig(v)
			if err != nil {
				return err
			}
			return run(cfg, newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./sheetjson.yaml if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	registerFlags(flags)

	rootCmd.AddCommand(newSheetsCmd(v), newConfigCmd(v), newVersionCmd())
	return rootCmd
}

// run converts every configured sheet in order, stopping at the first failure.
func run(cfg *Config, log *slog.Logger) error {
	for _, job := range cfg.jobs() {
		opts, err := cfg.options(job)
		if err != nil {
			return err
		}
		opts.Logger = log

		res, err := sheetjson.Convert(opts)
		if err != nil {
			return err
		}
		log.Info("converted sheet",
			"sheet", res.SheetName,
			"output", res.OutputPath,
			"rows", res.Rows)
	}
	return nil
}

// newLogger logs warnings only, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newSheetsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the sheets of the input workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := sheetjson.ListSheets(v.GetString("input"))
			if err != nil {
				return err
			}
			for _, name := range book.Sheets {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
