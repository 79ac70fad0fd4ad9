package domain

import (
	"strings"
	"time"
)

// Scope identifies the dashboard section a rule applies to.
// It is fixed at creation time and used to filter every catalog query.
type Scope struct {
	AreaID string `json:"areaId"`
	TabID  string `json:"tabId"`
}

func (s Scope) IsZero() bool {
	return s.AreaID == "" && s.TabID == ""
}

func (s Scope) String() string {
	return s.AreaID + ":" + s.TabID
}

// Rule is a custom calculation rule. Templates are globally shared,
// immutable seed rules with no scope; user rules are scope-bound and
// owned by whoever edits the section. The body is an opaque string:
// nothing in this service parses or executes it.
type Rule struct {
	ID          string    `json:"id"`
	AreaID      string    `json:"areaId,omitempty"`
	TabID       string    `json:"tabId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Body        string    `json:"rule"`
	IsTemplate  bool      `json:"isTemplate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Scope returns the rule's scope. Zero for templates.
func (r Rule) Scope() Scope {
	if r.IsTemplate {
		return Scope{}
	}
	return Scope{AreaID: r.AreaID, TabID: r.TabID}
}

// ValidateBody enforces the one content rule the service has: a rule
// body must contain something other than whitespace.
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyBody
	}
	return nil
}
