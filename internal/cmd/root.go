package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - static-export shop with cart and checkout",
	Long: `Storefront serves a product catalog, a persisted shopping cart and a
checkout handoff to an external payment provider.

Run "storefront serve" to start the HTTP surface, or "storefront sitemap"
to enumerate the static paths and write sitemap.xml.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
