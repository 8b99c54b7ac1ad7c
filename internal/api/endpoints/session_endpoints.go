package endpoints

import (
	"blackarrow-backend/internal/api/middleware"
	"blackarrow-backend/internal/dto"
	"blackarrow-backend/utils"
	"net/http"
)

type SessionEndpoints interface {
	Create(http.ResponseWriter, *http.Request) error
}

type sessionEndpoints struct {
	newID func() string
}

func NewSessionEndpoints() SessionEndpoints {
	return &sessionEndpoints{newID: utils.NewSessionID}
}

// Create mints a visitor session. Popup slots and chat transcripts are keyed by it.
func (h *sessionEndpoints) Create(w http.ResponseWriter, r *http.Request) error {
	id := h.newID()
	w.Header().Set(middleware.SessionHeader, id)
	return WriteJSON(w, http.StatusCreated, dto.SessionResponse{SessionID: id})
}
