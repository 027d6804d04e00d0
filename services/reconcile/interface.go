package reconcile

import (
	"context"
	"sync"
	"time"

	appointmentRepo "medledger/database/repository/appointment"
	doctorRepo "medledger/database/repository/doctor"
	financeRepo "medledger/database/repository/finance"
	prescriptionRepo "medledger/database/repository/prescription"
	"medledger/models"

	"github.com/go-redis/redis/v8"
)

// NoticeQueue accepts settlement notices for asynchronous, best-effort delivery to the
// doctor. Enqueue failures never fail a settlement.
type NoticeQueue interface {
	EnqueueSettlementNotice(ctx context.Context, notice models.SettlementNotice) error
}

// ReconcileService exposes the derived revenue view and the two operations the
// surrounding application drives: a full authoritative refresh and the idempotent
// settlement of a single appointment's commission.
type ReconcileService interface {
	Refresh(ctx context.Context) (*Snapshot, error)
	Settle(ctx context.Context, appointmentID string, actor models.Actor) (*models.LedgerEntry, error)
	RevenueItems() []models.RevenueItem
	DoctorAggregates() []models.DoctorAggregate
	History() []models.LedgerEntry
}

// Snapshot is one immutable generation of the derived state. Refresh builds a fresh one
// from source data and swaps it in wholesale; a successful settlement swaps in a patched
// copy without waiting for the next refresh.
type Snapshot struct {
	Items       []models.RevenueItem     `json:"items"`
	Doctors     []models.DoctorAggregate `json:"doctors"`
	History     []models.LedgerEntry     `json:"history"`
	RefreshedAt time.Time                `json:"refreshedAt"`
}

// DefaultReconcileService is the production implementation.
type DefaultReconcileService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Doctors       doctorRepo.DoctorRepository
	Prescriptions prescriptionRepo.PrescriptionRepository
	Finance       financeRepo.FinanceRepository
	Notices       NoticeQueue
	Cache         *redis.Client

	mu   sync.RWMutex
	snap *Snapshot
	// history survives refreshes so the deduplicator can collapse an optimistic entry
	// with its refetched twin.
	history *History
	// settledLocally holds, per appointment key, the ledger entry written by a local
	// settlement since the last refresh, in case a concurrent in-flight fetch has not
	// seen the write yet.
	settledLocally map[string]models.LedgerEntry
}

// NewDefaultReconcileService wires a reconcile service over the four read collaborators,
// the ledger writer, and the notice queue. Cache may be nil; snapshots are then kept
// in-process only.
func NewDefaultReconcileService(
	appointments appointmentRepo.AppointmentRepository,
	doctors doctorRepo.DoctorRepository,
	prescriptions prescriptionRepo.PrescriptionRepository,
	finance financeRepo.FinanceRepository,
	notices NoticeQueue,
	cache *redis.Client,
) *DefaultReconcileService {
	return &DefaultReconcileService{
		Appointments:   appointments,
		Doctors:        doctors,
		Prescriptions:  prescriptions,
		Finance:        finance,
		Notices:        notices,
		Cache:          cache,
		snap:           &Snapshot{},
		history:        NewHistory(),
		settledLocally: make(map[string]models.LedgerEntry),
	}
}
