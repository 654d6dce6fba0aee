package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/powerguard/autonomy-planner/internal/service"
)

// (GET /api/v1/catalog/sources)
func (s *ServiceHandler) ListCatalogSources(w http.ResponseWriter, r *http.Request) {
	group, err := service.ParseSourceGroup(r.URL.Query().Get("group"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	sources, err := s.catalogSrv.ListSources(r.Context(), group, r.URL.Query().Get("q"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, CatalogSourceListToApi(sources))
}

// (GET /api/v1/catalog/sources/{id})
func (s *ServiceHandler) GetCatalogSource(w http.ResponseWriter, r *http.Request) {
	source, err := s.catalogSrv.GetSource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, CatalogSourceToApi(*source))
}

// (GET /api/v1/catalog/devices)
func (s *ServiceHandler) ListCatalogDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.catalogSrv.ListDevices(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("q"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, CatalogDeviceListToApi(devices))
}

// (GET /api/v1/catalog/devices/{id})
func (s *ServiceHandler) GetCatalogDevice(w http.ResponseWriter, r *http.Request) {
	device, err := s.catalogSrv.GetDevice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, CatalogDeviceToApi(*device))
}

// (GET /api/v1/catalog/categories)
func (s *ServiceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalogSrv.Categories(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, categories)
}
