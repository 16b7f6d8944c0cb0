package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sofa-quotation/config"
)

var (
	configPath string
	cfg        config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "quotation",
	Short:         "Sofa quotation builder",
	Long:          "Edit a sofa collection's modules and combinations, and print the quotation as HTML, PDF or XLSX.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadDotEnv()

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// loadDotEnv loads .env in development (ignores error if file doesn't exist).
// In production, variables should be set directly.
func loadDotEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}
	// Use Overload to ensure .env values override system environment variables
	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		return
	}
	log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(describeCmd)
}
