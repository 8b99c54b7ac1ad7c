package endpoints

import (
	"blackarrow-backend/internal/dto"
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/service/lead"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

type LeadEndpoints interface {
	Contact(http.ResponseWriter, *http.Request) error
	Newsletter(http.ResponseWriter, *http.Request) error
	List(http.ResponseWriter, *http.Request) error
	UpdateStatus(http.ResponseWriter, *http.Request) error
	Delete(http.ResponseWriter, *http.Request) error
}

type leadEndpoints struct {
	service *lead.Service
}

func NewLeadEndpoints(service *lead.Service) LeadEndpoints {
	return &leadEndpoints{service: service}
}

func (h *leadEndpoints) Contact(w http.ResponseWriter, r *http.Request) error {
	var req dto.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	item, err := h.service.Capture(r.Context(), lead.CaptureParams{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Service:    req.Service,
		Budget:     req.Budget,
		Message:    req.Message,
		Region:     req.Region,
		SourcePage: req.SourcePage,
	})
	if err != nil {
		return serviceError("capture lead", err)
	}
	return WriteJSON(w, http.StatusCreated, dto.LeadReceipt{ID: item.ID, Status: string(item.Status)})
}

func (h *leadEndpoints) Newsletter(w http.ResponseWriter, r *http.Request) error {
	var req dto.NewsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	item, created, err := h.service.Subscribe(r.Context(), req.Email, req.Region, req.SourcePage)
	if err != nil {
		return serviceError("newsletter signup", err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return WriteJSON(w, status, dto.LeadReceipt{ID: item.ID, Status: string(item.Status)})
}

func (h *leadEndpoints) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	leads, err := h.service.List(r.Context(), lead.ListFilter{
		Status: model.LeadStatus(q.Get("status")),
		Kind:   model.LeadKind(q.Get("kind")),
	})
	if err != nil {
		return serviceError("list leads", err)
	}
	if leads == nil {
		leads = []model.LeadItem{}
	}
	return WriteJSON(w, http.StatusOK, dto.LeadListResponse{Leads: leads})
}

// leadID unescapes the {id} segment; newsletter ids carry an email address.
func leadID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func (h *leadEndpoints) UpdateStatus(w http.ResponseWriter, r *http.Request) error {
	var req dto.LeadStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	item, err := h.service.UpdateStatus(r.Context(), leadID(r), model.LeadStatus(req.Status))
	if err != nil {
		return serviceError("update lead", err)
	}
	return WriteJSON(w, http.StatusOK, item)
}

func (h *leadEndpoints) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Delete(r.Context(), leadID(r)); err != nil {
		return serviceError("delete lead", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
