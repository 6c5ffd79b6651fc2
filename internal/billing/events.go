package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventStatus records how a claimed webhook event ended up.
type EventStatus string

const (
	StatusProcessing EventStatus = "processing"
	StatusCompleted  EventStatus = "completed"
	StatusFailed     EventStatus = "failed"
)

// EventStore provides at-most-once processing for external payment events.
// The key format is "payevt:{eventId}".
type EventStore interface {
	// Claim marks an event id as in-flight. It returns true exactly once per
	// event id; any later call for the same id returns false.
	Claim(ctx context.Context, eventID string) (claimed bool, err error)

	// Finalize records the terminal status of a previously claimed event.
	Finalize(ctx context.Context, eventID string, status EventStatus) error
}

// eventRecord is the stored value for a claimed event.
type eventRecord struct {
	Status    EventStatus `json:"status"`
	ClaimedAt time.Time   `json:"claimed_at"`
}

// --- MemoryEventStore ---

// MemoryEventStore is an in-memory EventStore with TTL support. Suitable for
// testing and single-instance deployments.
type MemoryEventStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memEvent
}

type memEvent struct {
	record    eventRecord
	expiresAt time.Time
}

// NewMemoryEventStore creates a new in-memory event store. Claims expire
// after ttl so a replayed event id eventually becomes claimable again.
func NewMemoryEventStore(ttl time.Duration) *MemoryEventStore {
	return &MemoryEventStore{
		ttl:     ttl,
		entries: make(map[string]*memEvent),
	}
}

// Claim marks the event as processing. Returns false if already claimed.
func (s *MemoryEventStore) Claim(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := FormatEventKey(eventID)
	if entry, exists := s.entries[key]; exists {
		if time.Now().Before(entry.expiresAt) {
			return false, nil
		}
		delete(s.entries, key)
	}

	s.entries[key] = &memEvent{
		record:    eventRecord{Status: StatusProcessing, ClaimedAt: time.Now()},
		expiresAt: time.Now().Add(s.ttl),
	}
	return true, nil
}

// Finalize updates the status of a claimed event. Unknown ids are ignored.
func (s *MemoryEventStore) Finalize(_ context.Context, eventID string, status EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := FormatEventKey(eventID)
	if entry, exists := s.entries[key]; exists {
		entry.record.Status = status
	}
	return nil
}

// Len returns the number of entries (including expired ones). For testing.
func (s *MemoryEventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// --- RedisEventStore ---

// RedisEventStore is a Redis-backed EventStore. The claim relies on SETNX so
// concurrent deliveries of the same event id race safely across instances.
type RedisEventStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisEventStore creates a new Redis-backed event store.
func NewRedisEventStore(client redis.Cmdable, ttl time.Duration) *RedisEventStore {
	return &RedisEventStore{client: client, ttl: ttl}
}

// Claim atomically marks the event as processing via SETNX.
func (s *RedisEventStore) Claim(ctx context.Context, eventID string) (bool, error) {
	record := eventRecord{Status: StatusProcessing, ClaimedAt: time.Now()}
	data, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("marshal event record: %w", err)
	}

	key := FormatEventKey(eventID)
	claimed, err := s.client.SetNX(ctx, key, data, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %q: %w", key, err)
	}
	return claimed, nil
}

// Finalize replaces the stored record while keeping the remaining TTL.
func (s *RedisEventStore) Finalize(ctx context.Context, eventID string, status EventStatus) error {
	key := FormatEventKey(eventID)

	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %q: %w", key, err)
	}

	var record eventRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return fmt.Errorf("unmarshal event record %q: %w", key, err)
	}
	record.Status = status

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal event record: %w", err)
	}
	if err := s.client.Set(ctx, key, data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// HealthCheck pings Redis for the readiness endpoint.
func (s *RedisEventStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// FormatEventKey builds the standard event claim key.
func FormatEventKey(eventID string) string {
	return fmt.Sprintf("payevt:%s", eventID)
}
