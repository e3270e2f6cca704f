package services

import (
	"context"
	"sync"

	"github.com/epeers/folio/internal/models"
	log "github.com/sirupsen/logrus"
)

type warningContextKey struct{}

// WarningCollector accumulates the non-fatal issues of one request.
// Identical warnings are kept once, in the order first seen.
type WarningCollector struct {
	mu       sync.Mutex
	seen     map[models.Warning]bool
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus the collector itself so the handler can read the warnings back.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{seen: make(map[models.Warning]bool)}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning records w on the collector in ctx. Without a collector the
// warning is only logged.
func AddWarning(ctx context.Context, w models.Warning) {
	log.WithField("code", w.Code).Debug(w.Message)

	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.seen[w] {
		return
	}
	wc.seen[w] = true
	wc.warnings = append(wc.warnings, w)
}

// GetWarnings returns a copy of the collected warnings
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
