// Package sitegen enumerates the storefront's static paths and renders
// the sitemap. This is the build-time surface: the serve path never
// calls it.
package sitegen

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mercata-dev/storefront/internal/models"
)

// Paths lists every static route: the fixed pages plus one product page
// per catalog entry. An empty catalog yields just the fixed pages, which
// is exactly what a failed catalog fetch should produce.
func Paths(products []models.Product) []string {
	paths := []string{"/", "/products", "/cart"}
	for _, p := range products {
		paths = append(paths, ProductPath(p))
	}
	return paths
}

// ProductPath builds a product page path from its slugs.
func ProductPath(p models.Product) string {
	return "/products/" + strings.Join(p.SlugSegments(), "/")
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// WriteSitemap renders the path list as a sitemap.xml rooted at baseURL.
func WriteSitemap(w io.Writer, baseURL string, paths []string, lastMod time.Time) error {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range paths {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     base + p,
			LastMod: lastMod.UTC().Format("2006-01-02"),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
