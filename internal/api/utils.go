package api

import (
	"blackarrow-backend/internal/api/middleware"
	"blackarrow-backend/internal/queue"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type apiFunc func(http.ResponseWriter, *http.Request) error

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// MakeHTTPHandleFunc runs f on the request queue and turns its error into a JSON response.
// authMiddleware runs before the job is queued so rejected requests never take a worker.
func (s *APIServer) MakeHTTPHandleFunc(f apiFunc, authMiddleware ...middleware.Middleware) http.HandlerFunc {
	baseHandler := func(w http.ResponseWriter, r *http.Request) {
		errc := make(chan error, 1)

		job := queue.Job{
			Fn: func() error {
				return f(w, r)
			},
			Errc: errc,
		}

		s.requestQueueManager.EnqueueJob(job)

		err := <-errc
		if err != nil {
			writeError(w, r, err)
		}
	}

	return middleware.Chain(baseHandler, append([]middleware.Middleware{middleware.Logging()}, authMiddleware...)...)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", httpErr.StatusCode, "err", httpErr.ErrorLog)
		} else if httpErr.ErrorLog != nil {
			slog.InfoContext(r.Context(), "request rejected", "path", r.URL.Path, "status", httpErr.StatusCode, "err", httpErr.ErrorLog)
		}
		_ = WriteJSON(w, httpErr.StatusCode, ApiError{Error: httpErr.Message})
		return
	}

	if errors.Is(err, queue.ErrClosed) {
		_ = WriteJSON(w, http.StatusServiceUnavailable, ApiError{Error: "Server is shutting down"})
		return
	}

	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
	_ = WriteJSON(w, http.StatusInternalServerError, ApiError{Error: "Internal server error"})
}
