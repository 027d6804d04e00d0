package reconcile

import (
	"context"
	"encoding/json"
	"time"

	"medledger/models"
	"medledger/utils"

	"go.uber.org/zap"
)

// Refresh fetches the three source sets and the ledger, re-projects the revenue view,
// and swaps in the resulting snapshot. A failed fetch degrades that source to empty for
// this cycle rather than aborting; partial data yields a partial revenue view. Only when
// every source is unreachable does Refresh return an error and leave the previous
// snapshot in place.
func (s *DefaultReconcileService) Refresh(ctx context.Context) (*Snapshot, error) {
	logger := utils.GetLogger()

	// A source that errors is treated as empty for this cycle, even if it handed back
	// partial data alongside the error.
	failures := 0
	appointments, err := s.Appointments.List(ctx)
	if err != nil {
		failures++
		appointments = nil
		logger.Warn("refresh: degrading to empty source", zap.Error(SourceFetchError{Source: "appointments", Err: err}))
	}
	doctors, err := s.Doctors.List(ctx)
	if err != nil {
		failures++
		doctors = nil
		logger.Warn("refresh: degrading to empty source", zap.Error(SourceFetchError{Source: "doctors", Err: err}))
	}
	prescriptions, err := s.Prescriptions.List(ctx)
	if err != nil {
		failures++
		prescriptions = nil
		logger.Warn("refresh: degrading to empty source", zap.Error(SourceFetchError{Source: "prescriptions", Err: err}))
	}
	ledgerEntries, err := s.Finance.ListCommissions(ctx)
	if err != nil {
		failures++
		ledgerEntries = nil
		logger.Warn("refresh: degrading to empty source", zap.Error(SourceFetchError{Source: "ledger", Err: err}))
	}
	if failures == 4 {
		return nil, SourceFetchError{Source: "all", Err: err}
	}

	items := Project(appointments, doctors, prescriptions, ledgerEntries)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A refresh whose ledger fetch started before a local settlement's write landed must
	// not un-verify that appointment. The overlay re-applies the written entry's
	// verification and retires itself once the authoritative read reflects it.
	present := make(map[string]bool, len(items))
	for i := range items {
		key := Key(items[i].AppointmentID)
		present[key] = true
		entry, ok := s.settledLocally[key]
		if !ok {
			continue
		}
		if items[i].Verified {
			delete(s.settledLocally, key)
		} else {
			items[i].Verified = true
			items[i].VerifiedAt = entry.Meta.VerifiedAt
			items[i].FinanceID = entry.ID
		}
	}
	// Keys whose appointment dropped out of the projection have nothing left to guard.
	for key := range s.settledLocally {
		if !present[key] {
			delete(s.settledLocally, key)
		}
	}

	for _, e := range ledgerEntries {
		if e.Meta.Verified {
			s.history.Insert(e)
		}
	}

	snap := &Snapshot{
		Items:       items,
		Doctors:     Aggregate(items),
		History:     s.history.Entries(),
		RefreshedAt: time.Now(),
	}
	s.snap = snap
	s.cacheSnapshot(ctx, snap)

	logger.Debug("refresh: snapshot swapped",
		zap.Int("items", len(snap.Items)),
		zap.Int("doctors", len(snap.Doctors)),
		zap.Int("history", len(snap.History)),
	)
	return snap, nil
}

// RevenueItems returns the current revenue view, most recent appointment first.
func (s *DefaultReconcileService) RevenueItems() []models.RevenueItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RevenueItem, len(s.snap.Items))
	copy(out, s.snap.Items)
	return out
}

// DoctorAggregates returns the current per-doctor totals.
func (s *DefaultReconcileService) DoctorAggregates() []models.DoctorAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DoctorAggregate, len(s.snap.Doctors))
	copy(out, s.snap.Doctors)
	return out
}

// History returns the deduplicated settled list, most recent first.
func (s *DefaultReconcileService) History() []models.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LedgerEntry, len(s.snap.History))
	copy(out, s.snap.History)
	return out
}

// cacheSnapshot writes the snapshot to Redis so restarts and sibling readers get the
// last derived view cheaply. Best effort; callers hold the lock.
func (s *DefaultReconcileService) cacheSnapshot(ctx context.Context, snap *Snapshot) {
	if s.Cache == nil {
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		utils.GetLogger().Warn("cacheSnapshot: marshal failed", zap.Error(err))
		return
	}
	if err := s.Cache.Set(ctx, utils.SnapshotCacheKey, payload, utils.SnapshotCacheTTL()).Err(); err != nil {
		utils.GetLogger().Warn("cacheSnapshot: redis set failed", zap.Error(err))
	}
}
