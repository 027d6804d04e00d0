package handlers

import (
	"errors"
	"net/http"

	"medledger/middleware"
	"medledger/services/reconcile"
	"medledger/utils"

	"github.com/gin-gonic/gin"
)

// ReconcileHandler exposes the derived revenue view and the settlement operations.
type ReconcileHandler struct {
	Service reconcile.ReconcileService
}

func NewReconcileHandler(svc reconcile.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{Service: svc}
}

// GetRevenueItems returns the per-appointment commission view, most recent first.
func (h *ReconcileHandler) GetRevenueItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Service.RevenueItems()})
}

// GetDoctorAggregates returns the per-doctor rolling totals.
func (h *ReconcileHandler) GetDoctorAggregates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"doctors": h.Service.DoctorAggregates()})
}

// GetSettlementHistory returns the deduplicated settled list.
func (h *ReconcileHandler) GetSettlementHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.Service.History()})
}

// SettleAppointment verifies and pays out one appointment's commission. The actor comes
// from the auth middleware and is recorded on the ledger entry.
func (h *ReconcileHandler) SettleAppointment(c *gin.Context) {
	appointmentID := c.Param("appointmentId")
	if appointmentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing appointment id", "")
		return
	}

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "no authenticated operator", "")
		return
	}

	entry, err := h.Service.Settle(c.Request.Context(), appointmentID, actor)
	if err != nil {
		var (
			notFound    reconcile.ItemNotFoundError
			noRx        reconcile.PrescriptionRequiredError
			settled     reconcile.AlreadySettledError
			fetchFailed reconcile.SourceFetchError
			writeFailed reconcile.LedgerWriteError
		)
		switch {
		case errors.As(err, &notFound):
			utils.JSONError(c, http.StatusNotFound, "unknown appointment", err.Error())
		case errors.As(err, &noRx):
			utils.JSONError(c, http.StatusUnprocessableEntity, "prescription required", err.Error())
		case errors.As(err, &settled):
			utils.JSONError(c, http.StatusConflict, "already settled", err.Error())
		case errors.As(err, &fetchFailed):
			utils.JSONError(c, http.StatusBadGateway, "ledger unavailable", err.Error())
		case errors.As(err, &writeFailed):
			utils.JSONError(c, http.StatusBadGateway, "ledger write failed", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "settlement failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// RefreshRevenue forces a full authoritative re-projection.
func (h *ReconcileHandler) RefreshRevenue(c *gin.Context) {
	snap, err := h.Service.Refresh(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "refresh failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       len(snap.Items),
		"doctors":     len(snap.Doctors),
		"history":     len(snap.History),
		"refreshedAt": snap.RefreshedAt,
	})
}
