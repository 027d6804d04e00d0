package models

import "time"

// Appointment statuses. Only completed and confirmed appointments are billable.
const (
	AppointmentCompleted = "COMPLETED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentScheduled = "SCHEDULED"
	AppointmentCancelled = "CANCELLED"
)

// Appointment is a read-only record owned by the appointment lifecycle service.
// DoctorRef and PatientRef may arrive as bare id strings or as embedded documents
// carrying an id plus display fields; they are never compared directly, only through
// the reconcile key normalizer.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	DoctorRef   any       `bson:"doctorId" json:"doctorId"`
	PatientRef  any       `bson:"patientId" json:"patientId"`
	PatientName string    `bson:"patientName" json:"patientName"`
	ScheduledAt time.Time `bson:"scheduledAt" json:"scheduledAt"`
	Status      string    `bson:"status" json:"status"`
}

// Billable reports whether the appointment status qualifies for a commission.
func (a Appointment) Billable() bool {
	return a.Status == AppointmentCompleted || a.Status == AppointmentConfirmed
}
