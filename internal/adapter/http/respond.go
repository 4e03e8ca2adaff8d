package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"marketplace-ads/internal/core/domain"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "encode response error", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, errorBody{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

// fail answers with the status matching err. Details of server-side
// failures are logged, not returned.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), op+" error", slog.Any("error", err))
		msg := "internal error"
		if status == http.StatusServiceUnavailable {
			msg = "temporarily unavailable, retry"
		}
		h.writeError(w, r, status, msg)
		return
	}
	h.logger.DebugContext(r.Context(), op+" rejected", slog.Any("error", err))
	h.writeError(w, r, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInactiveCampaign),
		errors.Is(err, domain.ErrBudgetExhausted),
		errors.Is(err, domain.ErrDailyLimitReached):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientAdvertiserBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptional decodes a JSON body into v. An empty body leaves v
// untouched.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
