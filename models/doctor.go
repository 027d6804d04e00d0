package models

// DoctorRecord is a read-only entry from the doctor directory. ServiceCharge is the
// flat commission owed per billable appointment; zero means the doctor is not billable.
type DoctorRecord struct {
	ID            string  `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	ServiceCharge float64 `bson:"serviceCharge" json:"serviceCharge"`
	FCMToken      string  `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
}
