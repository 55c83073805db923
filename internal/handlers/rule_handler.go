package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
	"ledgersync/internal/services"
)

// RuleHandler handles merchant-rule requests.
type RuleHandler struct {
	ruleService services.RuleServicer
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService services.RuleServicer) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// CreateRuleRequest represents the request payload for creating a merchant rule.
// Counters are maintained server-side and cannot be supplied.
type CreateRuleRequest struct {
	Merchant          string         `json:"merchant" binding:"required,max=200"`
	EntityDefault     *models.Entity `json:"entity_default" binding:"omitempty,entity"`
	OriginQBAccount   *string        `json:"origin_qb_account"`
	OpenHaulQBAccount *string        `json:"openhaul_qb_account"`
	PersonalQBAccount *string        `json:"personal_qb_account"`
	Notes             *string        `json:"notes" binding:"omitempty,max=1000"`
	SheetsRowID       *int64         `json:"sheets_row_id" binding:"omitempty,min=2"`
}

// CreateRule handles the creation of a new merchant rule
// @Summary     Create a merchant rule
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateRuleRequest true "Rule details"
// @Success     201 {object} models.MerchantRule "Rule created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate merchant"
// @Router      /rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.RuleInput{
		Merchant:          req.Merchant,
		OriginQBAccount:   req.OriginQBAccount,
		OpenHaulQBAccount: req.OpenHaulQBAccount,
		PersonalQBAccount: req.PersonalQBAccount,
		Notes:             req.Notes,
		SheetsRowID:       req.SheetsRowID,
	}
	if req.EntityDefault != nil {
		input.EntityDefault = *req.EntityDefault
	}

	rule, err := h.ruleService.CreateRule(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// ListRulesQuery holds the query parameters for listing merchant rules.
type ListRulesQuery struct {
	pagination.PageRequest
	Merchant *string `form:"merchant"`
	Dirty    *bool   `form:"dirty"`
}

// ListRules handles listing merchant rules
// @Summary     List merchant rules
// @Tags        rules
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       merchant query string false "Merchant partial match"
// @Param       dirty query bool false "Only rules needing (or not needing) outbound sync"
// @Success     200 {object} pagination.PageResponse[models.MerchantRule]
// @Router      /rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	var query ListRulesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ruleService.ListRules(query.PageRequest, services.RuleFilter{
		Merchant: query.Merchant,
		Dirty:    query.Dirty,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRuleByID handles retrieving a single merchant rule
// @Summary     Get a merchant rule
// @Tags        rules
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Rule ID"
// @Success     200 {object} models.MerchantRule
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /rules/{id} [get]
func (h *RuleHandler) GetRuleByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.ruleService.GetRuleByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rule": rule})
}

// UpdateRuleRequest represents the request payload for patching a merchant rule.
type UpdateRuleRequest struct {
	EntityDefault     *models.Entity `json:"entity_default" binding:"omitempty,entity"`
	OriginQBAccount   *string        `json:"origin_qb_account"`
	OpenHaulQBAccount *string        `json:"openhaul_qb_account"`
	PersonalQBAccount *string        `json:"personal_qb_account"`
	Notes             *string        `json:"notes" binding:"omitempty,max=1000"`
	SheetsRowID       *int64         `json:"sheets_row_id" binding:"omitempty,min=2"`
}

// UpdateRule handles patching a merchant rule
// @Summary     Update a merchant rule
// @Description Patch team-owned rule fields; account mapping changes cascade to the merchant's transactions
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Rule ID"
// @Param       request body UpdateRuleRequest true "Fields to update"
// @Success     200 {object} models.MerchantRule
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /rules/{id} [patch]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.ruleService.UpdateRule(id, services.RulePatch{
		EntityDefault:     req.EntityDefault,
		OriginQBAccount:   req.OriginQBAccount,
		OpenHaulQBAccount: req.OpenHaulQBAccount,
		PersonalQBAccount: req.PersonalQBAccount,
		Notes:             req.Notes,
		SheetsRowID:       req.SheetsRowID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rule": rule})
}
