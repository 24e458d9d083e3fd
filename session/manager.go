package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tabledine/Table_Ordering_Backend/models"
)

// UnknownTable is returned by Table when no table has been recorded for the
// session.
const UnknownTable = "unknown"

// Manager exposes the typed session operations the handlers need on top of a
// raw Store.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Cart returns the session's cart. A missing key yields an empty cart, not
// an error.
func (m *Manager) Cart(ctx context.Context, sessionID string) (models.Cart, error) {
	raw, err := m.store.Get(ctx, cartKey(sessionID))
	if errors.Is(err, ErrNotFound) {
		return models.Cart{}, nil
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("loading cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return models.Cart{}, fmt.Errorf("decoding cart: %w", err)
	}
	return cart, nil
}

// SaveCart persists the cart under the session id, refreshing the TTL.
func (m *Manager) SaveCart(ctx context.Context, sessionID string, cart models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := m.store.Set(ctx, cartKey(sessionID), string(raw), TTL); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// ClearCart removes the cart. Idempotent.
func (m *Manager) ClearCart(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, cartKey(sessionID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

// SetTable records the active table number and the menu URL later redirects
// should target.
func (m *Manager) SetTable(ctx context.Context, sessionID, tableNumber, menuURL string) error {
	if err := m.store.Set(ctx, tableKey(sessionID), tableNumber, TTL); err != nil {
		return fmt.Errorf("saving table number: %w", err)
	}
	if err := m.store.Set(ctx, menuURLKey(sessionID), menuURL, TTL); err != nil {
		return fmt.Errorf("saving menu url: %w", err)
	}
	return nil
}

// ClearTable forgets the table number and return URL. Idempotent.
func (m *Manager) ClearTable(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, tableKey(sessionID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clearing table number: %w", err)
	}
	if err := m.store.Delete(ctx, menuURLKey(sessionID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clearing menu url: %w", err)
	}
	return nil
}

// Table returns the active table number, or UnknownTable if none is set.
func (m *Manager) Table(ctx context.Context, sessionID string) (string, error) {
	table, err := m.store.Get(ctx, tableKey(sessionID))
	if errors.Is(err, ErrNotFound) {
		return UnknownTable, nil
	}
	if err != nil {
		return "", fmt.Errorf("loading table number: %w", err)
	}
	return table, nil
}

// MenuURL returns the recorded return-to-menu URL, or fallback when the
// session has none.
func (m *Manager) MenuURL(ctx context.Context, sessionID, fallback string) string {
	url, err := m.store.Get(ctx, menuURLKey(sessionID))
	if err != nil {
		return fallback
	}
	return url
}
