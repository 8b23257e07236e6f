package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/config"
	"github.com/mercata-dev/storefront/internal/sitegen"
)

var sitemapOut string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Enumerate static paths and write sitemap.xml",
	Long: `Fetches the product listing once and writes a sitemap covering the
fixed pages plus every product page. The base URL follows the
production/development environment flag. A failed catalog fetch still
produces a sitemap with the fixed pages only.`,
	RunE: runSitemap,
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "sitemap.xml", "output file")
	rootCmd.AddCommand(sitemapCmd)
}

func runSitemap(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := buildCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	paths := sitegen.Paths(cat.All())

	f, err := os.Create(sitemapOut)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", sitemapOut, err)
	}
	defer f.Close()

	baseURL := cfg.Site.ResolvedBaseURL()
	if err := sitegen.WriteSitemap(f, baseURL, paths, time.Now()); err != nil {
		return err
	}

	log.Info("sitemap written",
		zap.String("out", sitemapOut),
		zap.String("base_url", baseURL),
		zap.Int("paths", len(paths)))
	return nil
}
