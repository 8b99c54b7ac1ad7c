package endpoints

import (
	"blackarrow-backend/internal/dto"
	"blackarrow-backend/internal/service/region"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type RegionEndpoints interface {
	List(http.ResponseWriter, *http.Request) error
	Resolve(http.ResponseWriter, *http.Request) error
	Upsert(http.ResponseWriter, *http.Request) error
	Delete(http.ResponseWriter, *http.Request) error
}

type regionEndpoints struct {
	service *region.Service
}

func NewRegionEndpoints(service *region.Service) RegionEndpoints {
	return &regionEndpoints{service: service}
}

func (h *regionEndpoints) List(w http.ResponseWriter, r *http.Request) error {
	regions, err := h.service.List(r.Context())
	if err != nil {
		return serviceError("list regions", err)
	}
	return WriteJSON(w, http.StatusOK, dto.RegionListResponse{Regions: regions})
}

// Resolve never 404s: unknown codes get the default region's pricing and copy.
func (h *regionEndpoints) Resolve(w http.ResponseWriter, r *http.Request) error {
	item, err := h.service.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		return serviceError("resolve region", err)
	}
	return WriteJSON(w, http.StatusOK, item)
}

func (h *regionEndpoints) Upsert(w http.ResponseWriter, r *http.Request) error {
	var req dto.RegionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	item, err := h.service.Upsert(r.Context(), chi.URLParam(r, "code"), region.UpsertParams{
		Name:           req.Name,
		Currency:       req.Currency,
		CurrencySymbol: req.CurrencySymbol,
		Pricing:        req.Pricing,
		AgentsHeadline: req.AgentsHeadline,
		CafesHeadline:  req.CafesHeadline,
		ContactPhone:   req.ContactPhone,
		Default:        req.Default,
	})
	if err != nil {
		return serviceError("upsert region", err)
	}
	return WriteJSON(w, http.StatusOK, item)
}

func (h *regionEndpoints) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		return serviceError("delete region", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
