package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-converter"
)

type conversionOutput struct {
	Result float64       `json:"result"`
	Meta   currency.Meta `json:"meta"`
}

func convertCommand(f *flags) *cobra.Command {
	var (
		round int32
		meta  bool
	)

	convertCmd := &cobra.Command{
		Use:   "convert FROM TO AMOUNT",
		Short: "Convert an amount between two currencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("amount %q is not a number: %w", args[2], err)
			}

			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return &currency.InvalidAmountError{Amount: amount}
			}

			a, err := newApp(cmd, f)
			if err != nil {
				return err
			}

			defer a.Close()

			converter := a.converter()

			result, err := converter.ConvertRound(
				commandContext(cmd),
				strings.ToUpper(args[0]),
				strings.ToUpper(args[1]),
				amount,
				round,
			)
			if err != nil {
				return err
			}

			if meta {
				return printJSON(cmd.OutOrStdout(), conversionOutput{Result: result, Meta: converter.Meta()})
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'f', -1, 64))

			return err
		},
	}

	convertCmd.Flags().Int32Var(&round, "round", 0, "Decimal places to round to, 0 keeps the full result")
	convertCmd.Flags().BoolVar(&meta, "meta", false, "Print the converter meta data with the result")

	return convertCmd
}
