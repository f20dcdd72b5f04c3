package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/Zolikazer/forktimize-autocart/internal/api"
	"github.com/Zolikazer/forktimize-autocart/internal/cart"
	"github.com/Zolikazer/forktimize-autocart/internal/config"
	"github.com/Zolikazer/forktimize-autocart/internal/events"
	"github.com/Zolikazer/forktimize-autocart/internal/fetch"
	"github.com/Zolikazer/forktimize-autocart/internal/handlers"
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/storage"
	"github.com/Zolikazer/forktimize-autocart/internal/telemetry"
	"github.com/Zolikazer/forktimize-autocart/internal/vendor"
)

// SetupVendors builds the vendor registry from configuration. Without
// configured vendors the built-in defaults apply.
func SetupVendors(cfg *config.Config, log logger.Logger) (*vendor.Registry, error) {
	registry, err := vendor.NewRegistry(cfg.Vendors...)
	if err != nil {
		return nil, err
	}
	for _, v := range registry.List() {
		log.Info("Vendor configured",
			logger.String("vendor", v.ID),
			logger.String("hostname", v.Hostname),
		)
	}
	return registry, nil
}

// SetupRouter assembles the fetcher, orchestrator and handlers into the
// service router. store and publisher may be nil.
func SetupRouter(
	cfg *config.Config,
	registry *vendor.Registry,
	store *storage.CartRecordStore,
	publisher *events.Publisher,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *gin.Engine {
	fetcher := fetch.NewHTTPFetcher(cfg.Cart.FetchTimeout, log)

	// Untyped nils must not reach the orchestrator's interface fields.
	var recordStore cart.RecordStore
	if store != nil {
		recordStore = store
	}
	var eventPublisher cart.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}

	service := cart.NewService(recordStore, eventPublisher, metrics, cfg.Cart.ProcessingDelay, log)

	newActivator := func(baseURL string) (page.Activator, error) {
		return fetch.NewHTTPActivator(fetcher.Client(), baseURL, log)
	}

	cartHandler := handlers.NewCartHandler(registry, fetcher, service, newActivator, metrics, log)
	recordHandler := handlers.NewRecordHandler(store, log)

	return api.NewRouter(cartHandler, recordHandler, cfg.Server.CORSOrigins, log)
}
