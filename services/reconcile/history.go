package reconcile

import (
	"sort"
	"time"

	"medledger/models"
)

// History maintains the ordered list of settled ledger entries shown to the operator.
// Both the optimistic merge and the periodic authoritative refresh insert into it, and
// the two can deliver the same settlement twice: once with a transient local id and once
// with the server-assigned one. An insert is a duplicate if it shares a ledger id with an
// existing entry, or the same normalized (appointment, doctor) pair. The first-seen copy
// is kept.
type History struct {
	entries []models.LedgerEntry
	byID    map[string]bool
	byPair  map[pairKey]bool
}

type pairKey struct {
	appointment string
	doctor      string
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{
		byID:   make(map[string]bool),
		byPair: make(map[pairKey]bool),
	}
}

// Insert adds a settled entry unless it duplicates one already present. It reports
// whether the entry was added.
func (h *History) Insert(entry models.LedgerEntry) bool {
	if entry.ID != "" && h.byID[entry.ID] {
		return false
	}

	pair := pairKey{
		appointment: EntryAppointmentKey(entry),
		doctor:      Key(entry.DoctorRef),
	}
	hasPair := pair.appointment != "" && pair.doctor != ""
	if hasPair && h.byPair[pair] {
		return false
	}

	if entry.ID != "" {
		h.byID[entry.ID] = true
	}
	if hasPair {
		h.byPair[pair] = true
	}

	h.entries = append(h.entries, entry)
	sort.SliceStable(h.entries, func(i, j int) bool {
		return settledAt(h.entries[i]).After(settledAt(h.entries[j]))
	})
	return true
}

// InsertAll inserts each entry in order, returning how many were added.
func (h *History) InsertAll(entries []models.LedgerEntry) int {
	added := 0
	for _, e := range entries {
		if h.Insert(e) {
			added++
		}
	}
	return added
}

// Entries returns the settled list, most recent first.
func (h *History) Entries() []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns how many settled entries are held.
func (h *History) Len() int {
	return len(h.entries)
}

// settledAt orders history by the verification time, falling back to the ledger
// occurrence time for entries that predate the meta marker.
func settledAt(e models.LedgerEntry) time.Time {
	if !e.Meta.VerifiedAt.IsZero() {
		return e.Meta.VerifiedAt
	}
	return e.OccurredAt
}
