package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger applies the side effects of successfully processed payment events.
// Both operations must tolerate being retried for the same event, since a
// crash between Claim and Finalize can lead to one redelivery after the
// claim TTL expires.
type Ledger interface {
	// CreditCoins adds amount coins to the user's balance.
	CreditCoins(ctx context.Context, userID string, amount int64) error

	// ActivatePlan switches the user to the given subscription plan.
	ActivatePlan(ctx context.Context, userID, planID string) error
}

// --- MemoryLedger ---

// MemoryLedger keeps balances and plans in memory. Suitable for testing and
// development deployments.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	plans    map[string]string
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]int64),
		plans:    make(map[string]string),
	}
}

func (l *MemoryLedger) CreditCoins(_ context.Context, userID string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] += amount
	return nil
}

func (l *MemoryLedger) ActivatePlan(_ context.Context, userID, planID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.plans[userID] = planID
	return nil
}

// Balance returns the current coin balance for a user. For testing.
func (l *MemoryLedger) Balance(userID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

// Plan returns the active plan for a user. For testing.
func (l *MemoryLedger) Plan(userID string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.plans[userID]
}

// --- PgLedger ---

// PgLedger is a Postgres-backed Ledger.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS coin_balances (
//	    user_id    TEXT PRIMARY KEY,
//	    balance    BIGINT NOT NULL DEFAULT 0,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
//	CREATE TABLE IF NOT EXISTS user_plans (
//	    user_id    TEXT PRIMARY KEY,
//	    plan_id    TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PgLedger struct {
	pool *pgxpool.Pool
}

// NewPgLedger creates a Postgres-backed ledger on an existing pool.
func NewPgLedger(pool *pgxpool.Pool) *PgLedger {
	return &PgLedger{pool: pool}
}

func (l *PgLedger) CreditCoins(ctx context.Context, userID string, amount int64) error {
	const q = `
		INSERT INTO coin_balances (user_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET balance = coin_balances.balance + EXCLUDED.balance, updated_at = now()`

	if _, err := l.pool.Exec(ctx, q, userID, amount); err != nil {
		return fmt.Errorf("credit coins for %q: %w", userID, err)
	}
	return nil
}

func (l *PgLedger) ActivatePlan(ctx context.Context, userID, planID string) error {
	const q = `
		INSERT INTO user_plans (user_id, plan_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET plan_id = EXCLUDED.plan_id, updated_at = now()`

	if _, err := l.pool.Exec(ctx, q, userID, planID); err != nil {
		return fmt.Errorf("activate plan for %q: %w", userID, err)
	}
	return nil
}
