package models

import "time"

// RevenueItem is the derived per-appointment commission view. Exactly one item exists
// per billable appointment; it is never persisted, only recomputed or patched in place
// after a settlement.
type RevenueItem struct {
	AppointmentID   string    `json:"appointmentId"`
	DoctorID        string    `json:"doctorId"`
	DoctorName      string    `json:"doctorName"`
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Amount          float64   `json:"amount"`
	Verified        bool      `json:"verified"`
	VerifiedAt      time.Time `json:"verifiedAt,omitempty"`
	FinanceID       string    `json:"financeId,omitempty"`
	HasPrescription bool      `json:"hasPrescription"`
}

// DoctorAggregate is the rolling per-doctor total over revenue items. TotalRevenue is
// always VerifiedAmount + PendingAmount.
type DoctorAggregate struct {
	DoctorID          string  `json:"doctorId"`
	DoctorName        string  `json:"doctorName"`
	TotalAppointments int     `json:"totalAppointments"`
	TotalRevenue      float64 `json:"totalRevenue"`
	VerifiedAmount    float64 `json:"verifiedAmount"`
	PendingAmount     float64 `json:"pendingAmount"`
}
