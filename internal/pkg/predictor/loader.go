package predictor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// Source fetches the raw model artifact document.
type Source func(ctx context.Context) ([]byte, error)

// Predictor holds the currently loaded model.
//
// The model pointer is swapped atomically under a read-write lock, so a failed
// load never clobbers a previously working model.
type Predictor struct {
	source Source

	mu    sync.RWMutex
	model *Model
}

// New builds a Predictor around the given artifact source.
func New(source Source) *Predictor {
	return &Predictor{source: source}
}

// Load fetches and decodes the artifact with exponential backoff.
func (p *Predictor) Load(ctx context.Context) error {
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		data, err := p.source(ctx)
		if err != nil {
			slog.WarnContext(ctx, "model artifact fetch failed, retrying", "error", err)
			return retry.RetryableError(err)
		}

		model, err := Decode(data)
		if err != nil {
			// A malformed artifact will not fix itself on retry.
			return err
		}

		p.mu.Lock()
		p.model = model
		p.mu.Unlock()

		return nil
	})
}

// Model returns the loaded model, or ErrModelUnavailable.
func (p *Predictor) Model() (*Model, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.model == nil {
		return nil, ErrModelUnavailable
	}
	return p.model, nil
}
