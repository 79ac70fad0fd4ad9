package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/insightloop/rules-backend/internal/rules/domain"
	"github.com/insightloop/rules-backend/internal/rules/service"
)

type Handler struct {
	svc *service.RuleService
}

func NewHandler(svc *service.RuleService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	scope := domain.Scope{
		AreaID: strings.TrimSpace(c.Query("area_id")),
		TabID:  strings.TrimSpace(c.Query("tab_id")),
	}
	if scope.AreaID == "" || scope.TabID == "" {
		c.JSON(http.StatusBadRequest, statusResponse{Error: "area_id and tab_id are required"})
		return
	}
	includeTemplates := c.Query("include_templates") == "true"

	rules, err := h.svc.List(c.Request.Context(), scope, includeTemplates)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse{Success: true, Rules: rules})
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Error: "invalid body"})
		return
	}

	scope := domain.Scope{AreaID: strings.TrimSpace(req.AreaID), TabID: strings.TrimSpace(req.TabID)}
	if scope.AreaID == "" || scope.TabID == "" {
		c.JSON(http.StatusBadRequest, statusResponse{Error: "areaId and tabId are required"})
		return
	}

	rule, err := h.svc.Create(c.Request.Context(), scope, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.Rule)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ruleResponse{Success: true, Rule: rule})
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, statusResponse{Error: "invalid body"})
		return
	}

	rule, err := h.svc.Update(c.Request.Context(), strings.TrimSpace(req.ID), strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.Rule)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ruleResponse{Success: true, Rule: rule})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, statusResponse{Error: "id is required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true})
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyBody):
		c.JSON(http.StatusBadRequest, statusResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRuleNotFound):
		c.JSON(http.StatusNotFound, statusResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrTemplateImmutable):
		c.JSON(http.StatusNotFound, statusResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, statusResponse{Error: err.Error()})
	}
}
