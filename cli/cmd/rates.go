package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func ratesCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "rates [BASE]",
		Short: "Print the rate table for a base currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f)
			if err != nil {
				return err
			}

			defer a.Close()

			var base string
			if len(args) == 1 {
				base = strings.ToUpper(args[0])
			}

			table, err := a.converter().GetRates(commandContext(cmd), base)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), table)
		},
	}
}
