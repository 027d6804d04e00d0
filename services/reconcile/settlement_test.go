package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"medledger/models"
)

var testActor = models.Actor{ID: "op-1", Name: "Priya Nair"}

func TestSettleWritesOneVerifiedEntry(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)

	entry, err := env.svc.Settle(context.Background(), "a1", testActor)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	if entry.Type != models.LedgerTypeDoctorCommission {
		t.Fatalf("entry type = %s", entry.Type)
	}
	if entry.Amount != 500 {
		t.Fatalf("entry amount = %v, want 500", entry.Amount)
	}
	if !entry.Meta.Verified {
		t.Fatal("entry must carry the verified marker")
	}
	if Key(entry.Meta.AppointmentRef) != "a1" {
		t.Fatalf("meta appointment = %v, want a1", entry.Meta.AppointmentRef)
	}
	if entry.Meta.VerifiedBy != testActor.ID || entry.Meta.VerifiedByName != testActor.Name {
		t.Fatalf("actor not recorded: %+v", entry.Meta)
	}
	if !entry.OccurredAt.Equal(testScheduledAt) {
		t.Fatalf("occurredAt = %v, want the appointment's scheduled time", entry.OccurredAt)
	}
	if env.finance.appended != 1 {
		t.Fatalf("expected exactly one ledger write, got %d", env.finance.appended)
	}

	// Re-projecting from fresh data now shows the appointment verified.
	mustRefresh(t, env)
	if items := env.svc.RevenueItems(); !items[0].Verified {
		t.Fatal("re-projection should reflect the settlement")
	}
}

func TestSettleIdempotent(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)

	if _, err := env.svc.Settle(context.Background(), "a1", testActor); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	mustRefresh(t, env)

	_, err := env.svc.Settle(context.Background(), "a1", testActor)
	var settled AlreadySettledError
	if !errors.As(err, &settled) {
		t.Fatalf("second settle should report AlreadySettledError, got %v", err)
	}
	if env.finance.appended != 1 {
		t.Fatalf("appointment paid %d times, want 1", env.finance.appended)
	}
}

func TestSettleDuplicateClickWithoutRefresh(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)

	if _, err := env.svc.Settle(context.Background(), "a1", testActor); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}

	// No refresh in between: the optimistic merge already marks the item verified.
	_, err := env.svc.Settle(context.Background(), "a1", testActor)
	var settled AlreadySettledError
	if !errors.As(err, &settled) {
		t.Fatalf("duplicate click should be rejected, got %v", err)
	}
	if env.finance.appended != 1 {
		t.Fatalf("ledger writes = %d, want 1", env.finance.appended)
	}
}

func TestSettleStaleSnapshotCheckedAgainstLedger(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)

	// Another writer settled this appointment after our snapshot was taken.
	env.finance.entries = append(env.finance.entries, models.LedgerEntry{
		ID:             "other-1",
		DoctorRef:      "d1",
		AppointmentRef: "a1",
		Type:           models.LedgerTypeDoctorCommission,
		Amount:         500,
		OccurredAt:     testScheduledAt,
		Meta: models.LedgerMeta{
			AppointmentRef: "a1",
			Verified:       true,
			VerifiedAt:     time.Now(),
		},
	})

	_, err := env.svc.Settle(context.Background(), "a1", testActor)
	var settled AlreadySettledError
	if !errors.As(err, &settled) {
		t.Fatalf("fresh ledger read should reject the stale settle, got %v", err)
	}
	if env.finance.appended != 0 {
		t.Fatal("no new entry may be written for an already-settled appointment")
	}
}

func TestSettleRequiresPrescription(t *testing.T) {
	env := newTestEnv(t)
	env.rx.list = nil
	mustRefresh(t, env)

	_, err := env.svc.Settle(context.Background(), "a1", testActor)
	var noRx PrescriptionRequiredError
	if !errors.As(err, &noRx) {
		t.Fatalf("expected PrescriptionRequiredError, got %v", err)
	}
	if env.finance.appended != 0 {
		t.Fatal("gating rejection must produce zero ledger writes")
	}
	if aggs := env.svc.DoctorAggregates(); aggs[0].PendingAmount != 500 {
		t.Fatalf("pending amount should stay 500, got %v", aggs[0].PendingAmount)
	}
	if len(env.notices.notices) != 0 {
		t.Fatal("no notification may be sent for a rejected settlement")
	}
}

func TestSettleUnknownAppointment(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)

	_, err := env.svc.Settle(context.Background(), "ghost", testActor)
	var notFound ItemNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ItemNotFoundError, got %v", err)
	}
}

func TestSettleLedgerWriteFailureLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)
	env.finance.appendErr = errors.New("ledger rejected the write")

	_, err := env.svc.Settle(context.Background(), "a1", testActor)
	var writeErr LedgerWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected LedgerWriteError, got %v", err)
	}

	if items := env.svc.RevenueItems(); items[0].Verified {
		t.Fatal("failed write must not mark the item verified")
	}
	if len(env.notices.notices) != 0 {
		t.Fatal("failed write must not trigger a notification")
	}
	if len(env.svc.History()) != 0 {
		t.Fatal("failed write must not enter history")
	}
}

func TestSettleLedgerReadFailureAbortsBeforeWrite(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)
	env.finance.listErr = errors.New("ledger unreachable")

	_, err := env.svc.Settle(context.Background(), "a1", testActor)
	var fetchErr SourceFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected SourceFetchError, got %v", err)
	}
	if env.finance.appended != 0 {
		t.Fatal("no write may happen when the authoritative re-check is unavailable")
	}
}

func TestSettleNotificationFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)
	env.notices.err = errors.New("queue full")

	entry, err := env.svc.Settle(context.Background(), "a1", testActor)
	if err != nil {
		t.Fatalf("settle must succeed despite a failed notice: %v", err)
	}
	if entry == nil || env.finance.appended != 1 {
		t.Fatal("ledger write is the durable outcome and must have happened")
	}
	if items := env.svc.RevenueItems(); !items[0].Verified {
		t.Fatal("optimistic merge should still apply")
	}
}

func TestSettleOptimisticMerge(t *testing.T) {
	env := newTestEnv(t)
	mustRefresh(t, env)

	entry, err := env.svc.Settle(context.Background(), "a1", testActor)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	// The operator sees the result immediately, before any refresh.
	items := env.svc.RevenueItems()
	if !items[0].Verified || items[0].FinanceID != entry.ID {
		t.Fatalf("item not patched: %+v", items[0])
	}

	aggs := env.svc.DoctorAggregates()
	if aggs[0].VerifiedAmount != 500 || aggs[0].PendingAmount != 0 {
		t.Fatalf("amount not moved pending->verified: %+v", aggs[0])
	}
	if aggs[0].VerifiedAmount+aggs[0].PendingAmount != aggs[0].TotalRevenue {
		t.Fatalf("aggregate inconsistent after merge: %+v", aggs[0])
	}

	history := env.svc.History()
	if len(history) != 1 || history[0].ID != entry.ID {
		t.Fatalf("history not updated: %+v", history)
	}

	if len(env.notices.notices) != 1 {
		t.Fatalf("expected one settlement notice, got %d", len(env.notices.notices))
	}
	notice := env.notices.notices[0]
	if notice.DoctorID != "d1" || notice.AppointmentID != "a1" || notice.Amount != 500 {
		t.Fatalf("unexpected notice: %+v", notice)
	}
}

func TestSettleUsesNowWhenScheduleMissing(t *testing.T) {
	env := newTestEnv(t)
	env.appts.list[0].ScheduledAt = time.Time{}
	mustRefresh(t, env)

	before := time.Now()
	entry, err := env.svc.Settle(context.Background(), "a1", testActor)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if entry.OccurredAt.Before(before) {
		t.Fatalf("occurredAt should default to now, got %v", entry.OccurredAt)
	}
}
