// Package session holds the per-browser-session state: the cart, the active
// table number and the menu URL to send the customer back to. State lives in
// an external key-value store so web workers stay stateless; the store is
// passed to every consumer explicitly, never held as package state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a session key is absent or expired.
var ErrNotFound = errors.New("session: key not found")

// TTL is how long session state survives without being touched.
const TTL = 24 * time.Hour

// Store is the raw key-value backend. Values are opaque strings; Manager
// layers JSON on top.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func tableKey(sessionID string) string {
	return fmt.Sprintf("table:%s", sessionID)
}

func menuURLKey(sessionID string) string {
	return fmt.Sprintf("menu_url:%s", sessionID)
}
