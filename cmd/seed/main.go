package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"medledger/config"
	"medledger/database"
	"medledger/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Seeds the appointments, doctors, prescriptions and ledger_entries collections with
// plausible data for local development. Doctor references are deliberately written in
// mixed encodings (bare id strings and embedded {id, name} documents) to exercise the
// reconcile key normalizer the way production data does.
func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doctorColl := db.Collection("doctors")
	apptColl := db.Collection("appointments")
	rxColl := db.Collection("prescriptions")
	ledgerColl := db.Collection("ledger_entries")

	for _, coll := range []string{"doctors", "appointments", "prescriptions", "ledger_entries"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	const doctorCount = 8
	const appointmentsPerDoctor = 12

	doctors := make([]models.DoctorRecord, 0, doctorCount)
	for i := 0; i < doctorCount; i++ {
		d := models.DoctorRecord{
			ID:            uuid.New().String(),
			Name:          "Dr. " + gofakeit.Name(),
			ServiceCharge: float64(gofakeit.Number(2, 12)) * 100,
		}
		// A couple of doctors with no service charge: present in the directory but not
		// billable.
		if i >= doctorCount-2 {
			d.ServiceCharge = 0
		}
		doctors = append(doctors, d)
		if _, err := doctorColl.InsertOne(ctx, d); err != nil {
			log.Fatalf("Failed to insert doctor: %v", err)
		}
	}

	statuses := []string{
		models.AppointmentCompleted,
		models.AppointmentCompleted,
		models.AppointmentConfirmed,
		models.AppointmentScheduled,
		models.AppointmentCancelled,
	}

	settled := 0
	for _, d := range doctors {
		for i := 0; i < appointmentsPerDoctor; i++ {
			appt := models.Appointment{
				ID:          uuid.New().String(),
				PatientRef:  uuid.New().String(),
				PatientName: gofakeit.Name(),
				ScheduledAt: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
				Status:      statuses[rand.Intn(len(statuses))],
			}
			// Mixed reference encodings.
			if i%2 == 0 {
				appt.DoctorRef = d.ID
			} else {
				appt.DoctorRef = bson.M{"id": d.ID, "name": d.Name}
			}
			if _, err := apptColl.InsertOne(ctx, appt); err != nil {
				log.Fatalf("Failed to insert appointment: %v", err)
			}

			// Most completed appointments get a prescription.
			if rand.Float64() < 0.8 {
				rx := models.Prescription{
					ID:             uuid.New().String(),
					AppointmentRef: appt.ID,
					DoctorRef:      bson.M{"id": d.ID, "name": d.Name},
					PatientRef:     appt.PatientRef,
					Items: []models.PrescriptionItem{
						{
							Medication: gofakeit.BeerName(),
							Dosage:     "500mg",
							Frequency:  "2x daily",
							Duration:   "7 days",
						},
					},
				}
				if _, err := rxColl.InsertOne(ctx, rx); err != nil {
					log.Fatalf("Failed to insert prescription: %v", err)
				}

				// Some already-settled commissions so the ledger isn't empty.
				if d.ServiceCharge > 0 && rand.Float64() < 0.3 {
					verifiedAt := appt.ScheduledAt.Add(48 * time.Hour)
					entry := models.LedgerEntry{
						ID:             uuid.New().String(),
						DoctorRef:      d.ID,
						PatientRef:     appt.PatientRef,
						AppointmentRef: appt.ID,
						Type:           models.LedgerTypeDoctorCommission,
						Amount:         d.ServiceCharge,
						OccurredAt:     appt.ScheduledAt,
						Meta: models.LedgerMeta{
							AppointmentRef: appt.ID,
							Verified:       true,
							VerifiedAt:     verifiedAt,
							VerifiedBy:     "seed-admin",
							VerifiedByName: "Seed Admin",
						},
					}
					if _, err := ledgerColl.InsertOne(ctx, entry); err != nil {
						log.Fatalf("Failed to insert ledger entry: %v", err)
					}
					settled++
				}
			}
		}
	}

	log.Printf("Seeded %d doctors, %d appointments, %d pre-settled commissions",
		doctorCount, doctorCount*appointmentsPerDoctor, settled)
}
