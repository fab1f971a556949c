package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rankgate/rankgate/internal/core"
	"github.com/rankgate/rankgate/internal/output"
)

var plansFormat string

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the subscription plan catalog",
	Long:  "List the built-in subscription plans with their quota ceilings and rate limits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans := core.Plans()

		switch plansFormat {
		case "table":
			fmt.Println(output.FormatPlans(plans))
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(plans); err != nil {
				return fmt.Errorf("encode plans: %w", err)
			}
		case "yaml":
			if err := yaml.NewEncoder(os.Stdout).Encode(plans); err != nil {
				return fmt.Errorf("encode plans: %w", err)
			}
		default:
			return fmt.Errorf("unknown format %q (expected table, json, or yaml)", plansFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
	plansCmd.Flags().StringVarP(&plansFormat, "format", "f", "table", "output format: table, json, or yaml")
}
