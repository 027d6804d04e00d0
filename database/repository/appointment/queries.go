package appointmentRepo

import (
	"context"

	"medledger/models"

	"go.mongodb.org/mongo-driver/bson"
)

// List returns all current appointments.
func (r *mongoAppointmentRepo) List(ctx context.Context) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}
