package prescriptionRepo

import (
	"context"

	"medledger/database"
	"medledger/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PrescriptionRepository reads the prescription store.
type PrescriptionRepository interface {
	List(ctx context.Context) ([]models.Prescription, error)
}

type mongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo returns a PrescriptionRepository backed by MongoDB.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	return &mongoPrescriptionRepo{
		coll: database.DB().Collection("prescriptions"),
	}
}
