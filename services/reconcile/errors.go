package reconcile

import "fmt"

// AlreadySettledError is returned when a settlement is attempted for an appointment
// that already carries a verified ledger entry.
type AlreadySettledError struct {
	AppointmentID string
}

func (e AlreadySettledError) Error() string {
	return fmt.Sprintf("appointment %s is already settled", e.AppointmentID)
}

// PrescriptionRequiredError is returned when a settlement is attempted for an
// appointment with no prescription on record.
type PrescriptionRequiredError struct {
	AppointmentID string
}

func (e PrescriptionRequiredError) Error() string {
	return fmt.Sprintf("appointment %s has no prescription; settlement is blocked", e.AppointmentID)
}

// ItemNotFoundError is returned when a settlement references an appointment that is not
// in the current revenue view.
type ItemNotFoundError struct {
	AppointmentID string
}

func (e ItemNotFoundError) Error() string {
	return fmt.Sprintf("no revenue item for appointment %s", e.AppointmentID)
}

// SourceFetchError wraps a failed read of one of the source record sets. The projector
// degrades to empty data for that source rather than aborting; the settlement path
// surfaces it when the authoritative ledger re-read cannot be completed.
type SourceFetchError struct {
	Source string
	Err    error
}

func (e SourceFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
}

func (e SourceFetchError) Unwrap() error { return e.Err }

// LedgerWriteError wraps a rejected ledger append. No state is mutated when this is
// returned.
type LedgerWriteError struct {
	Err error
}

func (e LedgerWriteError) Error() string {
	return fmt.Sprintf("ledger write rejected: %v", e.Err)
}

func (e LedgerWriteError) Unwrap() error { return e.Err }
