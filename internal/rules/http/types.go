package http

import "github.com/insightloop/rules-backend/internal/rules/domain"

type listResponse struct {
	Success bool          `json:"success"`
	Rules   []domain.Rule `json:"rules"`
}

type ruleResponse struct {
	Success bool         `json:"success"`
	Rule    *domain.Rule `json:"rule"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type createRequest struct {
	AreaID      string `json:"areaId"`
	TabID       string `json:"tabId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rule        string `json:"rule"`
}

type updateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rule        string `json:"rule"`
}
