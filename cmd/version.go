package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leftmike/colexpr/expr"
	"github.com/leftmike/colexpr/sql"
)

func init() {
	colexprCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number of Colexpr",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), sql.Version())
				fmt.Fprintf(cmd.OutOrStdout(), "functions: %v\n", expr.Functions())
			},
		})
}
