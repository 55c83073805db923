package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgersync/internal/errors"
	syncpkg "ledgersync/internal/sync"
)

// SyncHandler handles the inbound sheet-edit webhook and manual sync runs.
type SyncHandler struct {
	inbound  *syncpkg.Inbound
	outbound *syncpkg.Outbound
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(inbound *syncpkg.Inbound, outbound *syncpkg.Outbound) *SyncHandler {
	return &SyncHandler{inbound: inbound, outbound: outbound}
}

// SheetEdit handles a single-cell edit event forwarded from the spreadsheet
// @Summary     Apply a sheet edit
// @Description Apply one spreadsheet cell edit to the linked database record; edits to unmapped columns are ignored
// @Tags        sync
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body sync.CellEdit true "Cell edit event"
// @Success     202 {object} map[string]string "Accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /events/sheet-edit [post]
func (h *SyncHandler) SheetEdit(c *gin.Context) {
	var edit syncpkg.CellEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.inbound.Apply(c.Request.Context(), edit); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "applied"})
}

// RunSync triggers one outbound sync pass
// @Summary     Run outbound sync
// @Description Write dirty computed columns back to the spreadsheet; rejected if a run is already in progress
// @Tags        sync
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} sync.Result
// @Failure     409 {object} ErrorResponse "Sync already in progress"
// @Failure     502 {object} ErrorResponse "Spreadsheet write failed"
// @Router      /sync/run [post]
func (h *SyncHandler) RunSync(c *gin.Context) {
	result, err := h.outbound.Run(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
