package financeRepo

import (
	"context"

	"medledger/database"
	"medledger/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// FinanceRepository is the ledger service boundary. The ledger is append-only: entries
// can be listed and appended, never updated or deleted.
type FinanceRepository interface {
	ListCommissions(ctx context.Context) ([]models.LedgerEntry, error)
	Append(ctx context.Context, entry models.LedgerEntry) (*models.LedgerEntry, error)
}

type mongoFinanceRepo struct {
	coll *mongo.Collection
}

// NewMongoFinanceRepo returns a FinanceRepository backed by MongoDB.
func NewMongoFinanceRepo() FinanceRepository {
	return &mongoFinanceRepo{
		coll: database.DB().Collection("ledger_entries"),
	}
}
