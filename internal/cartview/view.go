// Package cartview derives the displayable cart from the two sources of
// truth: persisted entries (what and how many) joined against the
// catalog (what it is and costs). Everything here is recomputed on every
// read and never persisted.
package cartview

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/models"
)

// badgeCap is the highest count the cart badge renders before switching
// to "9+". Display only; calculations always use the real count.
const badgeCap = 9

// BuildView joins cart entries against the catalog, preserving entry
// order. Entries whose product id no longer resolves are dropped
// silently; a stale cart line is not an error, the line just disappears
// from the page.
func BuildView(entries []models.CartEntry, cat catalog.Catalog, log *zap.Logger) []models.CartViewItem {
	items := make([]models.CartViewItem, 0, len(entries))
	for _, e := range entries {
		product, err := cat.ByID(e.ProductID)
		if err != nil {
			log.Debug("dropping cart entry without catalog match",
				zap.String("product_id", e.ProductID))
			continue
		}
		items = append(items, models.CartViewItem{Product: product, Quantity: e.Quantity})
	}
	return items
}

// ComputeTotal sums price × quantity over the view items. A price that
// does not parse as a decimal counts as zero and is logged; a broken
// catalog row must never take the cart page down.
func ComputeTotal(items []models.CartViewItem, log *zap.Logger) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
		if err != nil {
			log.Warn("unparseable product price, counting as zero",
				zap.String("product_id", item.ID), zap.String("price", item.Price))
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// LineTotal renders price × quantity for a single view item, with the
// same zero-and-log policy as ComputeTotal.
func LineTotal(item models.CartViewItem, log *zap.Logger) string {
	price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
	if err != nil {
		log.Warn("unparseable product price, counting as zero",
			zap.String("product_id", item.ID), zap.String("price", item.Price))
		return decimal.Zero.StringFixed(2)
	}
	return price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
}

// FormatTotal renders a total with two fractional digits, the way the
// cart page and the payment widget expect it.
func FormatTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}

// ComputeItemCount sums quantities across the view. Unbounded; only the
// badge rendering caps it.
func ComputeItemCount(items []models.CartViewItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// BadgeLabel renders the item count for the cart badge, capping the
// display at "9+".
func BadgeLabel(count int) string {
	if count > badgeCap {
		return strconv.Itoa(badgeCap) + "+"
	}
	return strconv.Itoa(count)
}
