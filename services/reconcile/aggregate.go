package reconcile

import "medledger/models"

// Aggregate folds revenue items into per-doctor rolling totals. Doctors with zero
// qualifying appointments are omitted, not zero-filled. Output order follows the first
// appearance of each doctor in items, so with items sorted most-recent-first the most
// recently active doctors lead.
func Aggregate(items []models.RevenueItem) []models.DoctorAggregate {
	index := make(map[string]int, len(items))
	aggs := make([]models.DoctorAggregate, 0, len(items))

	for _, item := range items {
		i, ok := index[item.DoctorID]
		if !ok {
			i = len(aggs)
			index[item.DoctorID] = i
			aggs = append(aggs, models.DoctorAggregate{
				DoctorID:   item.DoctorID,
				DoctorName: item.DoctorName,
			})
		}

		aggs[i].TotalAppointments++
		aggs[i].TotalRevenue += item.Amount
		if item.Verified {
			aggs[i].VerifiedAmount += item.Amount
		} else {
			aggs[i].PendingAmount += item.Amount
		}
	}

	return aggs
}
