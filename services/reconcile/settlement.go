package reconcile

import (
	"context"
	"time"

	"medledger/models"
	"medledger/utils"

	"go.uber.org/zap"
)

// Settle verifies and pays out the commission for a single appointment. Preconditions
// are checked before anything is written: the item must not already be verified, and a
// prescription must exist for the appointment. The already-verified check runs against a
// fresh ledger read, not the snapshot the caller rendered from, so a duplicate click or
// retried request after a completed settlement is rejected rather than double-paid.
//
// Exactly one ledger entry is appended per successful call. The doctor notification
// afterwards is best effort; the ledger write is the durable source of truth and a
// failed notice neither rolls back nor fails the settlement.
func (s *DefaultReconcileService) Settle(ctx context.Context, appointmentID string, actor models.Actor) (*models.LedgerEntry, error) {
	logger := utils.GetLogger()

	item, ok := s.findItem(appointmentID)
	if !ok {
		return nil, ItemNotFoundError{AppointmentID: appointmentID}
	}
	if item.Verified {
		return nil, AlreadySettledError{AppointmentID: appointmentID}
	}
	if !item.HasPrescription {
		return nil, PrescriptionRequiredError{AppointmentID: appointmentID}
	}

	// Authoritative re-check. The snapshot may be stale; the ledger is not.
	entries, err := s.Finance.ListCommissions(ctx)
	if err != nil {
		return nil, SourceFetchError{Source: "ledger", Err: err}
	}
	apptKey := Key(item.AppointmentID)
	if existing := matchLedgerEntry(entries, apptKey, item.DoctorID); existing != nil && existing.Meta.Verified {
		return nil, AlreadySettledError{AppointmentID: appointmentID}
	}

	now := time.Now()
	occurredAt := item.ScheduledAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	entry := models.LedgerEntry{
		DoctorRef:      item.DoctorID,
		PatientRef:     item.PatientID,
		AppointmentRef: item.AppointmentID,
		Type:           models.LedgerTypeDoctorCommission,
		Amount:         item.Amount,
		OccurredAt:     occurredAt,
		Meta: models.LedgerMeta{
			AppointmentRef: item.AppointmentID,
			Verified:       true,
			VerifiedAt:     now,
			VerifiedBy:     actor.ID,
			VerifiedByName: actor.Name,
		},
	}

	created, err := s.Finance.Append(ctx, entry)
	if err != nil {
		return nil, LedgerWriteError{Err: err}
	}

	logger.Info("settlement recorded",
		zap.String("appointmentId", item.AppointmentID),
		zap.String("doctorId", item.DoctorID),
		zap.Float64("amount", item.Amount),
		zap.String("verifiedBy", actor.ID),
	)

	s.dispatchNotice(ctx, item)
	s.applyOptimisticMerge(ctx, *created)

	return created, nil
}

// findItem looks up a revenue item in the current snapshot by normalized appointment id.
func (s *DefaultReconcileService) findItem(appointmentID string) (models.RevenueItem, bool) {
	key := Key(appointmentID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.snap.Items {
		if Key(item.AppointmentID) == key {
			return item, true
		}
	}
	return models.RevenueItem{}, false
}

// dispatchNotice queues the doctor-facing push. Failures are logged and swallowed.
func (s *DefaultReconcileService) dispatchNotice(ctx context.Context, item models.RevenueItem) {
	if s.Notices == nil {
		return
	}
	notice := models.SettlementNotice{
		DoctorID:      item.DoctorID,
		AppointmentID: item.AppointmentID,
		PatientName:   item.PatientName,
		Amount:        item.Amount,
	}
	if err := s.Notices.EnqueueSettlementNotice(ctx, notice); err != nil {
		utils.GetLogger().Warn("settlement notice not queued",
			zap.String("appointmentId", item.AppointmentID),
			zap.Error(err),
		)
	}
}

// applyOptimisticMerge patches the derived state with a just-written ledger entry so the
// operator sees the settlement immediately, without waiting for the next authoritative
// refresh. The patch mirrors what re-projection from fresh data would produce: applying
// it and then refreshing yields the same snapshot as refreshing alone.
func (s *DefaultReconcileService) applyOptimisticMerge(ctx context.Context, entry models.LedgerEntry) {
	apptKey := EntryAppointmentKey(entry)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.RevenueItem, len(s.snap.Items))
	copy(items, s.snap.Items)

	var patched *models.RevenueItem
	for i := range items {
		if Key(items[i].AppointmentID) == apptKey {
			items[i].Verified = true
			items[i].VerifiedAt = entry.Meta.VerifiedAt
			items[i].FinanceID = entry.ID
			patched = &items[i]
			break
		}
	}
	if patched == nil {
		// The snapshot was replaced between the write and the merge; the next refresh
		// reads a ledger that already holds the entry.
		return
	}

	doctors := make([]models.DoctorAggregate, len(s.snap.Doctors))
	copy(doctors, s.snap.Doctors)
	for i := range doctors {
		if doctors[i].DoctorID == patched.DoctorID {
			doctors[i].PendingAmount -= patched.Amount
			doctors[i].VerifiedAmount += patched.Amount
			break
		}
	}

	s.history.Insert(entry)
	s.settledLocally[apptKey] = entry

	snap := &Snapshot{
		Items:       items,
		Doctors:     doctors,
		History:     s.history.Entries(),
		RefreshedAt: s.snap.RefreshedAt,
	}
	s.snap = snap
	s.cacheSnapshot(ctx, snap)
}
