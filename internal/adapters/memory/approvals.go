// Package memory keeps approval decisions for the life of the process.
package memory

import (
	"context"
	"maps"
	"sync"

	"flex_reviews/internal/domain"
)

type Approvals struct {
	mu sync.RWMutex
	m  map[domain.ReviewKey]bool
}

func NewApprovals() *Approvals {
	return &Approvals{m: make(map[domain.ReviewKey]bool)}
}

func (a *Approvals) SetApproval(ctx context.Context, key domain.ReviewKey, approved bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	a.m[key] = approved
	a.mu.Unlock()
	return nil
}

// Approvals returns a snapshot; callers may modify it freely.
func (a *Approvals) Approvals(ctx context.Context) (map[domain.ReviewKey]bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.m), nil
}
