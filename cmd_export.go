package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sofa-quotation/app"
)

var (
	exportFormat string
	exportOut    string
)

// quotation export: write the quotation document to a file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the quotation as pdf, html or xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))
		if format != "pdf" && format != "html" && format != "xlsx" {
			return fmt.Errorf("invalid format %q (valid: pdf, html, xlsx)", exportFormat)
		}

		ctx := cmd.Context()
		a, err := app.Initialize(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.Store.Snapshot()
		reference := a.Documents.Reference()
		out := exportOut
		if out == "" {
			out = reference + "." + format
		}

		var data []byte
		switch format {
		case "pdf":
			description := a.Description.Settled(ctx, state.SofaModelName)
			data, err = a.Documents.GeneratePDF(ctx, state, description, reference)
		case "html":
			var html string
			html, err = a.Documents.RenderHTML(state, a.Description.Settled(ctx, state.SofaModelName), reference)
			data = []byte(html)
		case "xlsx":
			data, err = a.Spreadsheets.Export(state)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.Printf("📄 Exported %s (%d bytes)", out, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "output format: pdf, html or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (defaults to <reference>.<format>)")
}
