package reconcile

import (
	"testing"
	"time"

	"medledger/models"
)

func settledEntry(id, appointmentID, doctorID string, verifiedAt time.Time) models.LedgerEntry {
	return models.LedgerEntry{
		ID:             id,
		DoctorRef:      doctorID,
		AppointmentRef: appointmentID,
		Type:           models.LedgerTypeDoctorCommission,
		Amount:         500,
		OccurredAt:     verifiedAt.Add(-48 * time.Hour),
		Meta: models.LedgerMeta{
			AppointmentRef: appointmentID,
			Verified:       true,
			VerifiedAt:     verifiedAt,
		},
	}
}

func TestHistoryInsertDedupByID(t *testing.T) {
	h := NewHistory()
	entry := settledEntry("f1", "a1", "d1", time.Now())

	if !h.Insert(entry) {
		t.Fatal("first insert should be accepted")
	}
	if h.Insert(entry) {
		t.Fatal("second insert of the same entry should be dropped")
	}
	if h.Len() != 1 {
		t.Fatalf("history length = %d, want 1", h.Len())
	}
}

// The optimistic copy carries a transient local id, the refetched copy the server id;
// they describe the same settlement and must collapse to the first-seen copy.
func TestHistoryInsertDedupByAppointmentDoctorPair(t *testing.T) {
	h := NewHistory()
	optimistic := settledEntry("local-tmp", "a1", "d1", time.Now())
	refetched := settledEntry("srv-9", "a1", "d1", time.Now())

	if !h.Insert(optimistic) {
		t.Fatal("optimistic insert should be accepted")
	}
	if h.Insert(refetched) {
		t.Fatal("refetched twin should be dropped")
	}

	entries := h.Entries()
	if len(entries) != 1 || entries[0].ID != "local-tmp" {
		t.Fatalf("expected the first-seen copy to survive, got %+v", entries)
	}
}

func TestHistoryDifferentDoctorsSameAppointmentKept(t *testing.T) {
	h := NewHistory()
	h.Insert(settledEntry("f1", "a1", "d1", time.Now()))
	if !h.Insert(settledEntry("f2", "a1", "d2", time.Now())) {
		t.Fatal("same appointment but different doctor is not a duplicate")
	}
}

func TestHistoryOrderedMostRecentFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	h := NewHistory()
	h.Insert(settledEntry("f1", "a1", "d1", base))
	h.Insert(settledEntry("f2", "a2", "d1", base.Add(2*time.Hour)))

	// No verification timestamp: ordering falls back to occurredAt.
	legacy := models.LedgerEntry{
		ID:             "f3",
		DoctorRef:      "d1",
		AppointmentRef: "a3",
		Type:           models.LedgerTypeDoctorCommission,
		OccurredAt:     base.Add(time.Hour),
		Meta:           models.LedgerMeta{AppointmentRef: "a3", Verified: true},
	}
	h.Insert(legacy)

	var got []string
	for _, e := range h.Entries() {
		got = append(got, e.ID)
	}
	want := []string{"f2", "f3", "f1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestHistoryInsertAll(t *testing.T) {
	h := NewHistory()
	now := time.Now()
	entries := []models.LedgerEntry{
		settledEntry("f1", "a1", "d1", now),
		settledEntry("f2", "a2", "d1", now),
		settledEntry("f1", "a1", "d1", now), // duplicate row in source data
	}
	if added := h.InsertAll(entries); added != 2 {
		t.Fatalf("InsertAll added %d, want 2", added)
	}
}
