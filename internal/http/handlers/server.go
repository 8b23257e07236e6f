package handlers

import (
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartstore"
	"github.com/mercata-dev/storefront/internal/cartview"
	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/checkout"
)

var (
	cartStore      cartstore.Store
	productCatalog catalog.Catalog
	viewModel      *cartview.ViewModel
	checkoutSvc    *checkout.Coordinator

	log = zap.NewNop()
)

func SetCartStore(s cartstore.Store) {
	cartStore = s
}

func SetCatalog(c catalog.Catalog) {
	productCatalog = c
}

func SetViewModel(vm *cartview.ViewModel) {
	viewModel = vm
}

func SetCheckout(c *checkout.Coordinator) {
	checkoutSvc = c
}

func SetLogger(l *zap.Logger) {
	log = l
}
