// Package catalog lists the managed properties reviews are grouped under.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"flex_reviews/internal/domain"
)

//go:embed properties.json
var propertiesJSON []byte

// Static is an in-memory catalog, ordered as loaded.
type Static struct {
	props []domain.Property
	byID  map[string]int
}

// Load reads the embedded property list.
func Load() (*Static, error) {
	var ps []domain.Property
	if err := json.Unmarshal(propertiesJSON, &ps); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(ps), nil
}

func New(ps []domain.Property) *Static {
	s := &Static{props: slices.Clone(ps), byID: make(map[string]int, len(ps))}
	for i, p := range s.props {
		s.byID[p.ID] = i
	}
	return s
}

func (s *Static) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return slices.Clone(s.props), nil
}

func (s *Static) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Property{}, fmt.Errorf("property %q: %w", id, domain.ErrNotFound)
	}
	return s.props[i], nil
}
