package snapshot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ledes/internal/logger"
	"ledes/internal/metrics"
	"ledes/internal/models"
)

const (
	// DueSoonWindow bounds the entity and bill "due soon" counts.
	DueSoonWindow = 30 * 24 * time.Hour
	// ExpiringSoonWindow bounds the active-contract "expiring soon" count.
	ExpiringSoonWindow = 90 * 24 * time.Hour
)

// RecordStore is the read side of the record store.
type RecordStore interface {
	ListEntities(ctx context.Context) ([]models.Entity, error)
	ListContracts(ctx context.Context) ([]models.Contract, error)
	ListBills(ctx context.Context) ([]models.LegalBill, error)
}

// Aggregator loads the three collections and derives their stats.
type Aggregator struct {
	store  RecordStore
	now    func() time.Time
	logger *zap.Logger
}

// Option customises an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the wall clock used for the due-soon horizons.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator builds an aggregator. A nil store is valid and yields empty snapshots.
func NewAggregator(store RecordStore, log *zap.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:  store,
		now:    time.Now,
		logger: logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Collect never fails: each collection that cannot be read is logged and left empty,
// and stats are computed over whatever was loaded.
func (a *Aggregator) Collect(ctx context.Context) models.Snapshot {
	snap := models.EmptySnapshot()
	if a.store == nil {
		a.logger.Warn("record store not configured, using empty data")
		return snap
	}

	if entities, err := a.store.ListEntities(ctx); err != nil {
		a.degrade("entities", err)
	} else if entities != nil {
		snap.Entities = entities
	}
	if contracts, err := a.store.ListContracts(ctx); err != nil {
		a.degrade("contracts", err)
	} else if contracts != nil {
		snap.Contracts = contracts
	}
	if bills, err := a.store.ListBills(ctx); err != nil {
		a.degrade("legal_bills", err)
	} else if bills != nil {
		snap.Bills = bills
	}

	snap.Stats = ComputeStats(a.now(), snap.Entities, snap.Contracts, snap.Bills)
	return snap
}

// Now reports the aggregator's clock.
func (a *Aggregator) Now() time.Time {
	return a.now()
}

func (a *Aggregator) degrade(collection string, err error) {
	metrics.StoreQueryFailures.WithLabelValues(collection).Inc()
	a.logger.Warn("fetch context data failed, using empty collection",
		zap.String("collection", collection),
		zap.Error(err),
	)
}

// ComputeStats derives the summary figures relative to now. Due-soon counts have no
// lower bound, so overdue records are counted alongside upcoming ones.
func ComputeStats(now time.Time, entities []models.Entity, contracts []models.Contract, bills []models.LegalBill) models.Stats {
	next30 := now.Add(DueSoonWindow)
	next90 := now.Add(ExpiringSoonWindow)

	stats := models.Stats{
		TotalEntities:  len(entities),
		TotalContracts: len(contracts),
		TotalBills:     len(bills),
	}
	for _, e := range entities {
		if !e.NextComplianceDate.After(next30) {
			stats.EntitiesDueSoon++
		}
	}
	for _, c := range contracts {
		active := c.Status == models.ContractStatusActive
		if active && !c.ExpirationDate.After(next90) {
			stats.ContractsExpiringSoon++
		}
		if c.AutoRenew {
			stats.AutoRenewalContracts++
		}
		if active {
			stats.TotalContractValue += c.Value()
		}
	}
	for _, b := range bills {
		if b.Status != models.BillStatusPending {
			continue
		}
		stats.PendingBills++
		stats.TotalOutstanding += b.Amount
		if !b.DueDate.After(next30) {
			stats.BillsDueSoon++
		}
	}
	return stats
}
