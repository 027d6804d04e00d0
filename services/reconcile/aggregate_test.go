package reconcile

import (
	"testing"

	"medledger/models"
)

func TestAggregatePerDoctorTotals(t *testing.T) {
	items := []models.RevenueItem{
		{AppointmentID: "a1", DoctorID: "d1", DoctorName: "Dr. A", Amount: 500, Verified: true},
		{AppointmentID: "a2", DoctorID: "d1", DoctorName: "Dr. A", Amount: 500},
		{AppointmentID: "a3", DoctorID: "d1", DoctorName: "Dr. A", Amount: 500},
		{AppointmentID: "a4", DoctorID: "d2", DoctorName: "Dr. B", Amount: 300},
	}

	aggs := Aggregate(items)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}

	byID := map[string]models.DoctorAggregate{}
	for _, a := range aggs {
		byID[a.DoctorID] = a
	}

	d1 := byID["d1"]
	if d1.TotalAppointments != 3 || d1.VerifiedAmount != 500 || d1.PendingAmount != 1000 || d1.TotalRevenue != 1500 {
		t.Fatalf("d1 aggregate wrong: %+v", d1)
	}
	d2 := byID["d2"]
	if d2.TotalAppointments != 1 || d2.VerifiedAmount != 0 || d2.PendingAmount != 300 {
		t.Fatalf("d2 aggregate wrong: %+v", d2)
	}
}

func TestAggregateConsistency(t *testing.T) {
	items := []models.RevenueItem{
		{AppointmentID: "a1", DoctorID: "d1", Amount: 500, Verified: true},
		{AppointmentID: "a2", DoctorID: "d1", Amount: 500},
		{AppointmentID: "a3", DoctorID: "d2", Amount: 250, Verified: true},
	}
	for _, a := range Aggregate(items) {
		if a.VerifiedAmount+a.PendingAmount != a.TotalRevenue {
			t.Fatalf("doctor %s: verified %v + pending %v != total %v",
				a.DoctorID, a.VerifiedAmount, a.PendingAmount, a.TotalRevenue)
		}
	}
}

func TestAggregateOmitsInactiveDoctors(t *testing.T) {
	// Doctors appear only through their items; no zero-filled rows.
	aggs := Aggregate(nil)
	if len(aggs) != 0 {
		t.Fatalf("no items should produce no aggregates, got %d", len(aggs))
	}
}
