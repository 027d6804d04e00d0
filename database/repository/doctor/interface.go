package doctorRepo

import (
	"context"

	"medledger/database"
	"medledger/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository reads the doctor directory.
type DoctorRepository interface {
	List(ctx context.Context) ([]models.DoctorRecord, error)
	GetByID(ctx context.Context, id string) (*models.DoctorRecord, error)
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo returns a DoctorRepository backed by MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	return &mongoDoctorRepo{
		coll: database.DB().Collection("doctors"),
	}
}
