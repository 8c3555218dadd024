package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-converter/fetchers"
	"github.com/malusev998/currency-converter/services"
)

func warmCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "warm BASE...",
		Short: "Fetch and cache the rate tables of several bases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f)
			if err != nil {
				return err
			}

			defer a.Close()

			bases := make([]string, 0, len(args))
			for _, arg := range args {
				bases = append(bases, strings.ToUpper(arg))
			}

			warmer := services.Warmer{
				Settings: a.config.Settings,
				Fetcher:  fetchers.NewHTTPFetcher(a.config.Settings.APISource, a.config.Timeout, a.logger),
				Cache:    a.storage,
				Logger:   a.logger,
			}

			tables, err := warmer.Warm(commandContext(cmd), bases)
			if err != nil {
				return err
			}

			for _, base := range bases {
				table := tables[base]

				a.logger.WithFields(map[string]interface{}{
					"base":      base,
					"table":     table.Base,
					"rates":     len(table.Rates),
					"timestamp": table.Timestamp,
				}).Info("rates warmed")
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "warmed %d rate tables in %s storage\n", len(tables), a.storage.GetStorageProviderName())

			return err
		},
	}
}
