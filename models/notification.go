package models

// SettlementNotice is the payload queued for the doctor-facing push after a commission
// is settled. Delivery is best effort and never affects the settlement itself.
type SettlementNotice struct {
	DoctorID      string  `json:"doctorId"`
	AppointmentID string  `json:"appointmentId"`
	PatientName   string  `json:"patientName"`
	Amount        float64 `json:"amount"`
}
