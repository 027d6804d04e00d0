package doctorRepo

import (
	"context"

	"medledger/models"

	"go.mongodb.org/mongo-driver/bson"
)

// List returns the full doctor directory.
func (r *mongoDoctorRepo) List(ctx context.Context) ([]models.DoctorRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.DoctorRecord
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetByID returns a single doctor record.
func (r *mongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.DoctorRecord, error) {
	var doctor models.DoctorRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}
