package reconcile

import (
	"sort"

	"medledger/models"
)

// Project joins the three source sets and the ledger into one RevenueItem per billable
// appointment. Appointments whose doctor is unknown, or whose doctor carries no service
// charge, are not billable and are silently excluded; upstream data is not referentially
// enforced, so best effort beats erroring out.
func Project(
	appointments []models.Appointment,
	doctors []models.DoctorRecord,
	prescriptions []models.Prescription,
	ledgerEntries []models.LedgerEntry,
) []models.RevenueItem {
	doctorsByKey := make(map[string]models.DoctorRecord, len(doctors))
	for _, d := range doctors {
		if k := Key(d.ID); k != "" {
			doctorsByKey[k] = d
		}
	}

	// Appointments with any prescription on record, regardless of which doctor wrote it.
	prescribed := make(map[string]bool, len(prescriptions))
	for _, p := range prescriptions {
		if k := Key(p.AppointmentRef); k != "" {
			prescribed[k] = true
		}
	}

	seen := make(map[string]bool, len(appointments))
	items := make([]models.RevenueItem, 0, len(appointments))

	for _, appt := range appointments {
		if !appt.Billable() {
			continue
		}
		apptKey := Key(appt.ID)
		if apptKey == "" || seen[apptKey] {
			continue
		}

		doctor, ok := doctorsByKey[Key(appt.DoctorRef)]
		if !ok || doctor.ServiceCharge <= 0 {
			continue
		}
		seen[apptKey] = true

		item := models.RevenueItem{
			AppointmentID:   appt.ID,
			DoctorID:        doctor.ID,
			DoctorName:      doctor.Name,
			PatientID:       Key(appt.PatientRef),
			PatientName:     appt.PatientName,
			ScheduledAt:     appt.ScheduledAt,
			Amount:          doctor.ServiceCharge,
			HasPrescription: prescribed[apptKey],
		}

		if entry := matchLedgerEntry(ledgerEntries, apptKey, doctor.ID); entry != nil {
			item.Verified = entry.Meta.Verified
			item.VerifiedAt = entry.Meta.VerifiedAt
			item.FinanceID = entry.ID
		}

		items = append(items, item)
	}

	// Most recent first; the caller depends on this ordering.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ScheduledAt.After(items[j].ScheduledAt)
	})
	return items
}

// matchLedgerEntry finds the commission entry for an appointment/doctor pair. The
// appointment reference may live on the entry itself or inside its meta, depending on
// which writer produced it.
func matchLedgerEntry(entries []models.LedgerEntry, apptKey, doctorID string) *models.LedgerEntry {
	for i := range entries {
		e := &entries[i]
		if e.Type != models.LedgerTypeDoctorCommission {
			continue
		}
		if EntryAppointmentKey(*e) != apptKey {
			continue
		}
		if !SameKey(e.DoctorRef, doctorID) {
			continue
		}
		return e
	}
	return nil
}

// EntryAppointmentKey resolves a ledger entry's appointment reference, preferring the
// entry's own field and falling back to its meta.
func EntryAppointmentKey(e models.LedgerEntry) string {
	if k := Key(e.AppointmentRef); k != "" {
		return k
	}
	return Key(e.Meta.AppointmentRef)
}
