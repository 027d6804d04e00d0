package financeRepo

import (
	"context"
	"time"

	"medledger/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ListCommissions returns all doctor-commission ledger entries.
func (r *mongoFinanceRepo) ListCommissions(ctx context.Context) ([]models.LedgerEntry, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"type": models.LedgerTypeDoctorCommission})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.LedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Append inserts a new ledger entry and returns the created record with its assigned id.
func (r *mongoFinanceRepo) Append(ctx context.Context, entry models.LedgerEntry) (*models.LedgerEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
