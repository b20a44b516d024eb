package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"veristack/internal/domain"
	"veristack/internal/service"
)

// RuleHandler manages validation rule definitions and the config cache.
type RuleHandler struct {
	rules service.RuleService
}

func NewRuleHandler(rules service.RuleService) *RuleHandler {
	return &RuleHandler{rules: rules}
}

// List returns every persisted rule definition.
// GET /api/v1/validation-rules
func (h *RuleHandler) List(c *gin.Context) {
	rules, err := h.rules.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, rules)
}

// Get fetches one rule definition.
// GET /api/v1/validation-rules/:id
func (h *RuleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rule, err := h.rules.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, rule)
}

type updateRuleRequest struct {
	Enabled  *bool           `json:"enabled"`
	Severity *string         `json:"severity"`
	Config   json.RawMessage `json:"config"`
}

// Update applies partial changes to a rule definition. Omitted fields keep
// their current values. Changes take effect on the next validation pass.
// PUT /api/v1/validation-rules/:id
func (h *RuleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rule, err := h.rules.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if req.Severity != nil {
		rule.Severity = domain.Severity(*req.Severity)
	}
	if req.Config != nil {
		rule.Config = req.Config
	}

	if err := h.rules.Update(c.Request.Context(), rule); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, rule)
}

// CacheStats reports whether the merged rule configuration is currently
// cached and how old it is.
// GET /api/v1/validation-rules/cache
func (h *RuleHandler) CacheStats(c *gin.Context) {
	RespondOK(c, h.rules.CacheStats())
}

// InvalidateCache drops the cached rule configuration so the next validation
// pass rebuilds it.
// POST /api/v1/validation-rules/cache/invalidate
func (h *RuleHandler) InvalidateCache(c *gin.Context) {
	h.rules.InvalidateCache()
	RespondOK(c, gin.H{"invalidated": true})
}
