// Package testutil provides in-memory collaborators for service and use case tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Clock is a fixed, settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// TxManager runs the callback inline and counts calls.
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// Logger discards everything.
type Logger struct{}

func (Logger) Debug(string, ...interface{}) {}
func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}

// Notifier records displacement notifications.
type Notifier struct {
	mu   sync.Mutex
	Sent []*domain.DisplacementNotification
	Err  error
}

func (n *Notifier) NotifyDisplacement(_ context.Context, msg *domain.DisplacementNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, msg)
	return n.Err
}

// GameCanceller records linked-game cancellations.
type GameCanceller struct {
	mu        sync.Mutex
	Cancelled map[int64]string
	Err       error
}

func (g *GameCanceller) CancelForReservation(_ context.Context, reservationID int64, reason string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Cancelled == nil {
		g.Cancelled = make(map[int64]string)
	}
	g.Cancelled[reservationID] = reason
	return g.Err
}
