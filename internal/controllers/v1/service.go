package v1

import (
	"github.com/rs/zerolog/log"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/metrics"
	"github.com/violet-vault/backend/internal/models"
)

var (
	store       = models.Store{}
	billService = bills.NewService(store)
)

func init() {
	billService.Subscribe(metrics.ObserveBillChange)
	billService.Subscribe(func(change bills.Change) {
		log.Info().Str("bill", change.BillID).Strs("invalidates", change.Invalidates).Msgf("bill %s", change.Kind)
	})
}

// UseMatcher sets the matcher used to reconcile bills with payments.
func UseMatcher(m bills.Matcher) {
	billService.WithMatcher(m)
}
