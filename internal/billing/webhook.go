package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// Event types accepted on the payment webhook.
const (
	EventCoinsPurchased = "coins.purchased"
	EventPlanActivated  = "plan.activated"
)

// Event is the webhook envelope sent by the payment provider.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the type-specific payload fields.
type EventData struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount,omitempty"`
	PlanID string `json:"planId,omitempty"`
}

// Processor validates and applies payment webhook events. It is strictly
// fail-closed: a bad signature or an already-claimed event id must stop
// processing before any ledger side effect.
type Processor struct {
	secret []byte
	events EventStore
	ledger Ledger
	logger *zap.Logger
}

// NewProcessor creates a webhook processor. The secret is the shared HMAC key
// agreed with the payment provider.
func NewProcessor(secret string, events EventStore, ledger Ledger, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		secret: []byte(secret),
		events: events,
		ledger: ledger,
		logger: logger,
	}
}

// VerifySignature checks the hex-encoded HMAC-SHA256 of the raw body against
// the signature header value.
func (p *Processor) VerifySignature(body []byte, signature string) error {
	if len(p.secret) == 0 || signature == "" {
		return model.NewSignatureInvalidError()
	}

	mac := hmac.New(sha256.New, p.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return model.NewSignatureInvalidError()
	}
	return nil
}

// Process verifies, claims and applies a single webhook delivery. The claim
// happens before any ledger call so a redelivered event id short-circuits
// with a DUPLICATE_EVENT error and no side effect.
func (p *Processor) Process(ctx context.Context, body []byte, signature string) error {
	if err := p.VerifySignature(body, signature); err != nil {
		p.logger.Warn("payment webhook signature rejected")
		return err
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return model.NewBadRequestError(fmt.Sprintf("invalid webhook payload: %v", err))
	}
	if event.ID == "" {
		return model.NewBadRequestError("webhook event id is required")
	}
	if event.Data.UserID == "" {
		return model.NewBadRequestError("webhook event userId is required")
	}

	claimed, err := p.events.Claim(ctx, event.ID)
	if err != nil {
		p.logger.Error("claiming payment event failed",
			zap.String("event_id", event.ID), zap.Error(err))
		return model.NewInternalError()
	}
	if !claimed {
		p.logger.Info("duplicate payment event ignored", zap.String("event_id", event.ID))
		return model.NewDuplicateEventError(event.ID)
	}

	if err := p.apply(ctx, event); err != nil {
		if ferr := p.events.Finalize(ctx, event.ID, StatusFailed); ferr != nil {
			p.logger.Error("finalizing failed payment event",
				zap.String("event_id", event.ID), zap.Error(ferr))
		}
		return err
	}

	if err := p.events.Finalize(ctx, event.ID, StatusCompleted); err != nil {
		p.logger.Error("finalizing completed payment event",
			zap.String("event_id", event.ID), zap.Error(err))
	}

	p.logger.Info("payment event processed",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type))
	return nil
}

func (p *Processor) apply(ctx context.Context, event Event) error {
	switch event.Type {
	case EventCoinsPurchased:
		if event.Data.Amount <= 0 {
			return model.NewBadRequestError("coins.purchased requires a positive amount")
		}
		if err := p.ledger.CreditCoins(ctx, event.Data.UserID, event.Data.Amount); err != nil {
			p.logger.Error("crediting coins failed",
				zap.String("event_id", event.ID), zap.Error(err))
			return model.NewInternalError()
		}
		return nil

	case EventPlanActivated:
		if event.Data.PlanID == "" {
			return model.NewBadRequestError("plan.activated requires a planId")
		}
		if err := p.ledger.ActivatePlan(ctx, event.Data.UserID, event.Data.PlanID); err != nil {
			p.logger.Error("activating plan failed",
				zap.String("event_id", event.ID), zap.Error(err))
			return model.NewInternalError()
		}
		return nil

	default:
		return model.NewBadRequestError(fmt.Sprintf("unknown webhook event type %q", event.Type))
	}
}
