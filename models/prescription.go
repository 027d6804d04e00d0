package models

// PrescriptionItem is a single prescribed medication line.
type PrescriptionItem struct {
	Medication string `bson:"medication" json:"medication"`
	Dosage     string `bson:"dosage" json:"dosage"`
	Frequency  string `bson:"frequency" json:"frequency"`
	Duration   string `bson:"duration" json:"duration"`
}

// Prescription is a read-only record from the prescription store. The existence of at
// least one prescription for an appointment is the gating condition for settling that
// appointment's commission. AppointmentRef, DoctorRef and PatientRef may be bare ids or
// embedded reference documents.
type Prescription struct {
	ID             string             `bson:"id" json:"id"`
	AppointmentRef any                `bson:"appointmentId" json:"appointmentId"`
	DoctorRef      any                `bson:"doctorId" json:"doctorId"`
	PatientRef     any                `bson:"patientId" json:"patientId"`
	Items          []PrescriptionItem `bson:"items" json:"items"`
}
