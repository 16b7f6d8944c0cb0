package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sofa-quotation/app"
)

const resetPrompt = "确定要清空所有数据吗？此操作不可撤销。"

var resetYes bool

// confirmReset asks on out and reads a y/N answer from in
func confirmReset(in io.Reader, out io.Writer) bool {
	fmt.Fprintf(out, "%s [y/N]: ", resetPrompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// quotation reset: clear the saved quotation.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every module, combination and setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed := resetYes || confirmReset(cmd.InOrStdin(), cmd.OutOrStdout())
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		a, err := app.Initialize(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Store.ResetAll(true); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅  Quotation reset to defaults.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
}
