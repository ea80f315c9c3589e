package cli

import (
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/fsquery/fsq/field"
	"github.com/ZanzyTHEbar/fsquery/fsq/function"
	"github.com/ZanzyTHEbar/fsquery/fsq/output"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newFunctionsCommand(v *viper.Viper, flags *searchFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the available functions by group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(v, flags)
			if err != nil {
				return err
			}
			formatter, err := output.New(cfg.Output.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return formatter.Format(
				[]string{"group", "aliases", "description", "platform"},
				functionRows(function.NewEvaluator().Platform()),
			)
		},
	}
}

// functionRows lists the catalog in group display order.
func functionRows(platform function.Platform) [][]string {
	entries := function.CatalogEntries()
	var rows [][]string
	for _, g := range function.GroupsInOrder() {
		for _, e := range entries[g] {
			support := "yes"
			if !platform.Supports(e.Function.Requires()) {
				support = "no"
			}
			rows = append(rows, []string{g, strings.Join(e.Aliases, ", "), e.Description, support})
		}
	}
	return rows
}

func newFieldsCommand(v *viper.Viper, flags *searchFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the queryable file attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(v, flags)
			if err != nil {
				return err
			}
			formatter, err := output.New(cfg.Output.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return formatter.Format(
				[]string{"field", "aliases", "numeric", "datetime", "metadata"},
				fieldRows(),
			)
		},
	}
}

func fieldRows() [][]string {
	all := field.All()
	rows := make([][]string, 0, len(all))
	for _, f := range all {
		rows = append(rows, []string{
			f.String(),
			strings.Join(f.Aliases(), ", "),
			strconv.FormatBool(f.IsNumeric()),
			strconv.FormatBool(f.IsDatetime()),
			strconv.FormatBool(f.NeedsMetadata()),
		})
	}
	return rows
}
