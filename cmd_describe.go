package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sofa-quotation/app"
)

// quotation describe: print a freshly generated description.
var describeCmd = &cobra.Command{
	Use:   "describe [model name]",
	Short: "Generate the marketing description for the collection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Initialize(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		name := a.Store.Snapshot().SofaModelName
		if len(args) == 1 {
			name = args[0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.Description.Resolve(cmd.Context(), name))
		return nil
	},
}
