package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/pagination"
	"ledgersync/internal/services"
)

// AliasHandler handles merchant-alias requests.
type AliasHandler struct {
	aliasService services.AliasServicer
}

// NewAliasHandler creates a new AliasHandler.
func NewAliasHandler(aliasService services.AliasServicer) *AliasHandler {
	return &AliasHandler{aliasService: aliasService}
}

// CreateAliasRequest represents the request payload for creating a merchant alias.
type CreateAliasRequest struct {
	RawMerchant string  `json:"raw_merchant" binding:"required,max=200"`
	StdMerchant string  `json:"std_merchant" binding:"required,max=200"`
	Source      *string `json:"source"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// CreateAlias handles the creation of a new merchant alias
// @Summary     Create a merchant alias
// @Tags        aliases
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateAliasRequest true "Alias details"
// @Success     201 {object} models.MerchantAlias "Alias created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate alias"
// @Router      /aliases [post]
func (h *AliasHandler) CreateAlias(c *gin.Context) {
	var req CreateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	alias, err := h.aliasService.CreateAlias(req.RawMerchant, req.StdMerchant, req.Source, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alias": alias})
}

// ListAliases handles listing merchant aliases
// @Summary     List merchant aliases
// @Tags        aliases
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.MerchantAlias]
// @Router      /aliases [get]
func (h *AliasHandler) ListAliases(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.aliasService.ListAliases(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
