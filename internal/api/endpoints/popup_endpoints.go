package endpoints

import (
	"blackarrow-backend/internal/api/middleware"
	"blackarrow-backend/internal/dto"
	"blackarrow-backend/internal/popup"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type PopupEndpoints interface {
	List(http.ResponseWriter, *http.Request) error
	Show(http.ResponseWriter, *http.Request) error
	Dismiss(http.ResponseWriter, *http.Request) error
}

type popupEndpoints struct {
	service *popup.Service
}

func NewPopupEndpoints(service *popup.Service) PopupEndpoints {
	return &popupEndpoints{service: service}
}

func (h *popupEndpoints) List(w http.ResponseWriter, r *http.Request) error {
	session := middleware.SessionID(r.Context())

	candidates, err := h.service.Candidates(r.Context(), session)
	if err != nil {
		return serviceError("list popups", err)
	}
	active, _, err := h.service.Active(r.Context(), session)
	if err != nil {
		return serviceError("list popups", err)
	}

	resp := dto.PopupListResponse{
		Popups: make([]dto.PopupCandidate, 0, len(candidates)),
		Active: string(active),
	}
	for _, c := range candidates {
		resp.Popups = append(resp.Popups, dto.PopupCandidate{
			ID:      string(c.ID),
			Trigger: string(c.Trigger),
			DelayMs: c.Delay.Milliseconds(),
		})
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *popupEndpoints) Show(w http.ResponseWriter, r *http.Request) error {
	decision, err := h.service.RequestShow(r.Context(), middleware.SessionID(r.Context()), popup.ID(chi.URLParam(r, "popupID")))
	if err != nil {
		return serviceError("show popup", err)
	}
	return WriteJSON(w, http.StatusOK, dto.PopupShowResponse{
		Granted: decision.Granted,
		Reason:  decision.Reason,
		Active:  string(decision.Active),
	})
}

func (h *popupEndpoints) Dismiss(w http.ResponseWriter, r *http.Request) error {
	var req dto.PopupDismissRequest
	// a bare POST dismisses without remembering
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		return err
	}

	if err := h.service.Dismiss(r.Context(), middleware.SessionID(r.Context()), popup.ID(chi.URLParam(r, "popupID")), req.Remember); err != nil {
		return serviceError("dismiss popup", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
