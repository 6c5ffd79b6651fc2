package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// signatureHeader carries the hex-encoded HMAC-SHA256 of the raw body.
const signatureHeader = "X-Signature"

type webhookResponse struct {
	Status string `json:"status"`
}

// handlePaymentWebhook verifies and processes a payment-provider event.
// Duplicate deliveries return 200 so the provider stops retrying; only
// transport-level failures return retryable statuses.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		WriteError(w, model.NewBadRequestError("unable to read request body"))
		return
	}

	// Best-effort peek at the event type for the metric label; Process
	// re-validates the full envelope after the signature check.
	var peek struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(body, &peek)
	eventType := peek.Type
	if eventType == "" {
		eventType = "unknown"
	}

	err = s.webhook.Process(r.Context(), body, r.Header.Get(signatureHeader))
	if err != nil {
		ee, ok := err.(*model.ErrorEnvelope)
		if !ok {
			ee = model.NewInternalError()
		}
		switch ee.Code {
		case model.ErrSignatureInvalid:
			if s.metrics != nil {
				s.metrics.RecordWebhookSignatureError()
				s.metrics.RecordWebhookEvent(eventType, "rejected")
			}
			s.logger.Warn("webhook signature rejected",
				zap.String("remote_addr", r.RemoteAddr))
			WriteError(w, ee)
		case model.ErrDuplicateEvent:
			// Already claimed: acknowledge so the provider stops retrying.
			if s.metrics != nil {
				s.metrics.RecordWebhookEvent(eventType, "duplicate")
			}
			WriteJSON(w, http.StatusOK, webhookResponse{Status: "duplicate"})
		default:
			if s.metrics != nil {
				s.metrics.RecordWebhookEvent(eventType, "error")
			}
			WriteError(w, ee)
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordWebhookEvent(eventType, "processed")
	}
	WriteJSON(w, http.StatusOK, webhookResponse{Status: "ok"})
}
