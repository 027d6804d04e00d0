package models

import "time"

// LedgerTypeDoctorCommission marks commission payouts written by the settlement flow.
const LedgerTypeDoctorCommission = "DOCTOR_COMMISSION"

// LedgerMeta carries the settlement marker for a commission entry. Verified is the sole
// authoritative signal that an appointment's commission has been paid.
type LedgerMeta struct {
	AppointmentRef any       `bson:"appointmentId" json:"appointmentId"`
	Verified       bool      `bson:"verified" json:"verified"`
	VerifiedAt     time.Time `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	VerifiedBy     string    `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedByName string    `bson:"verifiedByName,omitempty" json:"verifiedByName,omitempty"`
}

// LedgerEntry is an immutable financial record. Entries are append-only; the settlement
// coordinator is the only writer for DOCTOR_COMMISSION entries, and no update or delete
// path exists here.
type LedgerEntry struct {
	ID             string     `bson:"id" json:"id"`
	DoctorRef      any        `bson:"doctorId" json:"doctorId"`
	PatientRef     any        `bson:"patientId" json:"patientId"`
	AppointmentRef any        `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Type           string     `bson:"type" json:"type"`
	Amount         float64    `bson:"amount" json:"amount"`
	OccurredAt     time.Time  `bson:"occurredAt" json:"occurredAt"`
	Meta           LedgerMeta `bson:"meta" json:"meta"`
}
