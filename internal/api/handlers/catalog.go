package handlers

import (
	"net/http"

	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/keicha2025/keicha-shop/internal/utils/response"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) GetCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := h.catalogService.GetCatalog(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, catalog)
	}
}

func (h *CatalogHandler) GetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.catalogService.GetSettings(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, settings)
	}
}

// RefreshCatalog busts the sheet cache, for use right after editing the
// sheets.
func (h *CatalogHandler) RefreshCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		catalog, err := h.catalogService.RefreshCatalog(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Catalog refreshed")
		response.Success(w, http.StatusOK, catalog)
	}
}
