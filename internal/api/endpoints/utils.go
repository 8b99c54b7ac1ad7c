package endpoints

import (
	"blackarrow-backend/internal/api"
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/popup"
	authsvc "blackarrow-backend/internal/service/auth"
	"blackarrow-backend/internal/service/content"
	"blackarrow-backend/internal/service/lead"
	"blackarrow-backend/internal/service/region"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 64 << 10

type HTTPError = api.HTTPError

type ApiMessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return api.WriteJSON(w, status, v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode %T: %w", v, err),
		}
	}
	return nil
}

// decodeOptionalJSON is decodeJSON that also accepts an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid request payload",
		ErrorLog:   fmt.Errorf("decode %T: %w", v, err),
	}
}

// serviceError maps the error taxonomy shared by the services onto HTTP statuses.
func serviceError(scope string, err error) error {
	if err == nil {
		return nil
	}

	var code, message string
	var cause error

	var (
		popupErr   *popup.Error
		chatErr    *chatbot.Error
		leadErr    *lead.Error
		contentErr *content.Error
		regionErr  *region.Error
		authErr    *authsvc.Error
	)
	switch {
	case errors.As(err, &popupErr):
		code, message, cause = string(popupErr.Code), popupErr.Message, popupErr.Err
	case errors.As(err, &chatErr):
		code, message, cause = string(chatErr.Code), chatErr.Message, chatErr.Err
	case errors.As(err, &leadErr):
		code, message, cause = string(leadErr.Code), leadErr.Message, leadErr.Err
	case errors.As(err, &contentErr):
		code, message, cause = string(contentErr.Code), contentErr.Message, contentErr.Err
	case errors.As(err, &regionErr):
		code, message, cause = string(regionErr.Code), regionErr.Message, regionErr.Err
	case errors.As(err, &authErr):
		code, message, cause = string(authErr.Code), authErr.Message, authErr.Err
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("%s: %w", scope, err),
		}
	}

	errorLog := fmt.Errorf("%s: %s", scope, message)
	if cause != nil {
		errorLog = fmt.Errorf("%s: %s: %w", scope, message, cause)
	}

	status := http.StatusInternalServerError
	switch code {
	case "validation_error":
		status = http.StatusBadRequest
	case "unauthorized":
		status = http.StatusUnauthorized
	case "forbidden":
		status = http.StatusForbidden
	case "not_found":
		status = http.StatusNotFound
	case "conflict":
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	return &HTTPError{
		StatusCode: status,
		Message:    message,
		ErrorLog:   errorLog,
	}
}
