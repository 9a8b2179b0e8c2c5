// internal/fleetdata/provider.go
package fleetdata

import (
	"context"
	"sync"

	"vessel-risk-workers/internal/risk/scoring"
)

// Provider hands out a scorer built from the loaded dataset. The dataset is
// loaded on first use and kept until Refresh swaps in a new one, so every
// assessment worker scores against the same snapshot.
type Provider struct {
	loader *Loader

	mu     sync.RWMutex
	scorer *scoring.Scorer
}

func NewProvider(loader *Loader) *Provider {
	return &Provider{loader: loader}
}

// Scorer returns the current scorer, loading the dataset if none is cached.
func (p *Provider) Scorer(ctx context.Context) (*scoring.Scorer, error) {
	p.mu.RLock()
	s := p.scorer
	p.mu.RUnlock()

	if s != nil {
		return s, nil
	}
	return p.Refresh(ctx)
}

// Refresh reloads the dataset and swaps in a freshly built scorer.
func (p *Provider) Refresh(ctx context.Context) (*scoring.Scorer, error) {
	ds, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := scoring.NewScorer(ds.Vessels, ds.Inspections)

	p.mu.Lock()
	p.scorer = s
	p.mu.Unlock()

	return s, nil
}
