// Package cli implements the fsq command-line interface.
package cli

import (
	"errors"
	"fmt"

	internal "github.com/ZanzyTHEbar/fsquery/fsq"
	"github.com/ZanzyTHEbar/fsquery/fsq/config"
	"github.com/ZanzyTHEbar/fsquery/fsq/function"
	"github.com/ZanzyTHEbar/fsquery/fsq/output"
	"github.com/ZanzyTHEbar/fsquery/fsq/query"
	"github.com/ZanzyTHEbar/fsquery/fsq/scanner"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultColumns is the select list used when --select is not given.
const DefaultColumns = "path"

type searchFlags struct {
	configPath string
	columns    string
	where      string
	groupBy    string
}

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"scan.workers":         "workers",
	"scan.maxDepth":        "max-depth",
	"scan.hidden":          "hidden",
	"scan.gitignore":       "gitignore",
	"scan.archives":        "archives",
	"scan.followSymlinks":  "follow-symlinks",
	"scan.maxContentBytes": "max-content-bytes",
	"output.format":        "format",
	"log.level":            "log-level",
	"log.pretty":           "pretty",
}

// NewRootCommand builds the command tree. Every call returns an independent
// tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	flags := &searchFlags{}

	root := &cobra.Command{
		Use:   internal.DefaultAppName + " [paths...]",
		Short: "Query files by metadata and content",
		Long: `fsq searches directory trees with SQL-like column, filter and grouping
expressions over file attributes.

  fsq ~/Music --select "artist, title, bitrate" --where "is_audio and bitrate gte 256"
  fsq . --select "is_source, count(*), sum(size)" --group-by is_source
  fsq /etc --where "size gt 10k and contains('password')"`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, v, flags, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default is ./config.yaml or "+internal.DefaultConfigFile+")")
	pf.StringP("format", "f", internal.DefaultOutputFormat, "output format: table, json, jsonl or csv")
	pf.String("log-level", internal.DefaultLogLevel, "log level: trace, debug, info, warn, error")
	pf.Bool("pretty", false, "human friendly log output")

	f := root.Flags()
	f.StringVarP(&flags.columns, "select", "s", DefaultColumns, "comma separated columns")
	f.StringVarP(&flags.where, "where", "w", "", "filter, terms joined by AND")
	f.StringVarP(&flags.groupBy, "group-by", "g", "", "comma separated fields to group by")
	f.Int("workers", 0, "concurrent directory readers (0 derives from CPU count)")
	f.Int("max-depth", -1, "levels below each root to descend into (-1 is unlimited)")
	f.Bool("hidden", true, "include hidden entries")
	f.Bool("gitignore", false, "honour .gitignore files")
	f.Bool("archives", false, "list members of zip archives")
	f.Bool("follow-symlinks", false, "descend into symlinked directories")
	f.Int64("max-content-bytes", 0, "skip content search on larger files (0 is unlimited)")

	for key, name := range flagBindings {
		flag := lookupFlag(root, name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(newFunctionsCommand(v, flags), newFieldsCommand(v, flags))
	return root
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f
	}
	return cmd.Flags().Lookup(name)
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

func loadConfig(v *viper.Viper, flags *searchFlags) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(v, flags.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, internal.GetLogger(cfg.Log.Level, cfg.Log.Pretty), nil
}

func runSearch(cmd *cobra.Command, v *viper.Viper, flags *searchFlags, args []string) error {
	cfg, logger, err := loadConfig(v, flags)
	if err != nil {
		return err
	}

	q, err := query.Parse(flags.columns, flags.where, flags.groupBy)
	if err != nil {
		return err
	}
	if len(q.Columns) == 0 {
		if q.Columns, err = query.ParseColumns(DefaultColumns); err != nil {
			return err
		}
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	eval := function.NewEvaluator(function.WithLogger(logger))
	s := scanner.New(cfg.Scan, eval, scanner.WithLogger(logger))
	res, err := s.Run(cmd.Context(), roots, q)
	if err != nil {
		var argErr *function.ArgumentError
		if errors.As(err, &argErr) {
			logger.Fatal().Err(err).Msg("malformed query argument")
		}
		return err
	}

	formatter, err := output.New(cfg.Output.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return formatter.Format(res.Header, res.Rows)
}
