package prescriptionRepo

import (
	"context"

	"medledger/models"

	"go.mongodb.org/mongo-driver/bson"
)

// List returns all prescriptions.
func (r *mongoPrescriptionRepo) List(ctx context.Context) ([]models.Prescription, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prescriptions []models.Prescription
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}
