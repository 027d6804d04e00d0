package appointmentRepo

import (
	"context"

	"medledger/database"
	"medledger/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository reads the appointment source set. The appointment lifecycle
// lives elsewhere; this service never writes appointments.
type AppointmentRepository interface {
	List(ctx context.Context) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
