package httpapi

import "net/http"

type sweepResultDTO struct {
	ScannedCount int `json:"scannedCount"`
	ClosedCount  int `json:"closedCount"`
	FailedCount  int `json:"failedCount"`
	WorkerCount  int `json:"workerCount"`
}

// RunCloseLotsJob triggers one sweep of ended lots outside the periodic
// schedule, for operators catching up after downtime.
func (h *Handler) RunCloseLotsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCloseLotsJob")
	defer span.End()

	result, err := h.lotCloser.SweepOnce(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "close lots job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sweepResultDTO{
		ScannedCount: result.ScannedCount,
		ClosedCount:  result.ClosedCount,
		FailedCount:  result.FailedCount,
		WorkerCount:  result.WorkerCount,
	})
}
