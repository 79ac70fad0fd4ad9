package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

// Phase is the controller's coarse position in the editing lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseSaving
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSaving:
		return "saving"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Operation identifies the write in flight during PhaseSaving.
type Operation int

const (
	OpNone Operation = iota
	OpCreate
	OpUpdate
	OpDelete
)

// State is the complete editor snapshot. The original UI tracked these
// as a dozen independent flags, which is how it ended up with
// half-updated combinations; here every transition replaces the struct
// through a named command.
type State struct {
	Phase          Phase
	Scope          domain.Scope
	Templates      []domain.Rule
	UserRules      []domain.Rule
	SelectedRuleID string
	Name           string
	Description    string
	Draft          string
	SavedText      string
	Pending        Operation
	ErrMessage     string
}

// Dirty reports whether the draft differs from the last persisted text.
func (s State) Dirty() bool {
	return s.Draft != s.SavedText
}

// CanSave reports whether Save would do anything: the draft must be
// dirty and contain more than whitespace.
func (s State) CanSave() bool {
	return s.Dirty() && strings.TrimSpace(s.Draft) != ""
}

// Controller drives the rule editor for one dashboard session. It is
// deliberately not self-synchronizing: one session means one goroutine,
// and the Loading/Saving phases gate overlapping work within it.
type Controller struct {
	store  Store
	loader *CatalogLoader
	state  State
}

func NewController(store Store) *Controller {
	return &Controller{
		store:  store,
		loader: NewCatalogLoader(store),
		state:  State{Phase: PhaseIdle},
	}
}

// State returns the current snapshot. Slices are shared; callers must
// treat them as read-only.
func (c *Controller) State() State {
	return c.state
}

// LoadScope switches the editor to a section, fetching its catalog and
// seeding the draft from the first scope-matched user rule. A failed
// load keeps the previous section's content (and any unsaved draft)
// alongside the error so nothing the user typed is lost.
func (c *Controller) LoadScope(ctx context.Context, scope domain.Scope) error {
	ticket, err := c.BeginLoad(scope)
	if err != nil {
		return err
	}

	cat, err := c.loader.Fetch(ctx, ticket)
	c.CompleteLoad(ticket, cat, err)
	return err
}

// BeginLoad stamps a new load and enters PhaseLoading. Allowed from any
// phase except Saving; a load begun while another is in flight
// supersedes it.
func (c *Controller) BeginLoad(scope domain.Scope) (LoadTicket, error) {
	if c.state.Phase == PhaseSaving {
		return LoadTicket{}, ErrBusy
	}

	prev := c.state
	c.state = State{
		Phase: PhaseLoading,
		Scope: scope,
		// Carry the previous editing fields through the load so a
		// failure can fall back to them.
		Templates:      prev.Templates,
		UserRules:      prev.UserRules,
		SelectedRuleID: prev.SelectedRuleID,
		Name:           prev.Name,
		Description:    prev.Description,
		Draft:          prev.Draft,
		SavedText:      prev.SavedText,
	}
	return c.loader.Begin(scope), nil
}

// CompleteLoad applies a finished load. Responses for superseded tickets
// are discarded wholesale, success or failure.
func (c *Controller) CompleteLoad(ticket LoadTicket, cat *Catalog, err error) {
	if c.loader.IsStale(ticket) {
		return
	}
	if c.state.Phase != PhaseLoading {
		return
	}

	if err != nil {
		c.state.Phase = PhaseError
		c.state.ErrMessage = err.Error()
		return
	}

	next := State{
		Phase:     PhaseReady,
		Scope:     ticket.Scope,
		Templates: cat.Templates,
		UserRules: cat.UserRules,
	}
	if cat.Active != nil {
		next.SelectedRuleID = cat.Active.ID
		next.Name = cat.Active.Name
		next.Description = cat.Active.Description
		next.Draft = cat.Active.Body
		next.SavedText = cat.Active.Body
	}
	c.state = next
}

// EditDraft replaces the draft text.
func (c *Controller) EditDraft(text string) error {
	if err := c.resumeEditing(); err != nil {
		return err
	}
	c.state.Draft = text
	return nil
}

// SetName and SetDescription update the metadata saved with the rule.
func (c *Controller) SetName(name string) error {
	if err := c.resumeEditing(); err != nil {
		return err
	}
	c.state.Name = name
	return nil
}

func (c *Controller) SetDescription(description string) error {
	if err := c.resumeEditing(); err != nil {
		return err
	}
	c.state.Description = description
	return nil
}

// ApplyTemplate seeds the draft from a template and clears the
// selection, so the next Save forks a new user rule instead of touching
// the template or the previously selected rule.
func (c *Controller) ApplyTemplate(t domain.Rule) error {
	if !t.IsTemplate {
		return fmt.Errorf("rule %q is not a template", t.Name)
	}
	if err := c.resumeEditing(); err != nil {
		return err
	}

	c.state.SelectedRuleID = ""
	c.state.Name = t.Name
	c.state.Description = t.Description
	c.state.Draft = t.Body
	c.state.SavedText = ""
	return nil
}

// LoadExistingRule selects one of the scope's user rules for editing.
func (c *Controller) LoadExistingRule(r domain.Rule) error {
	if r.IsTemplate {
		return fmt.Errorf("rule %q is a template; use ApplyTemplate", r.Name)
	}
	if err := c.resumeEditing(); err != nil {
		return err
	}

	c.state.SelectedRuleID = r.ID
	c.state.Name = r.Name
	c.state.Description = r.Description
	c.state.Draft = r.Body
	c.state.SavedText = r.Body
	return nil
}

// Save persists the draft: an update when a rule is selected, a create
// otherwise. No-ops (clean or blank drafts) are rejected before any
// network call. On failure the draft survives so the user can retry.
func (c *Controller) Save(ctx context.Context) error {
	if err := c.resumeEditing(); err != nil {
		return err
	}
	if !c.state.CanSave() {
		return ErrNothingToSave
	}

	op := OpCreate
	if c.state.SelectedRuleID != "" {
		op = OpUpdate
	}
	c.state.Phase = PhaseSaving
	c.state.Pending = op

	var (
		rule *domain.Rule
		err  error
	)
	if op == OpUpdate {
		rule, err = c.store.Update(ctx, c.state.SelectedRuleID, c.state.Name, c.state.Description, c.state.Draft)
	} else {
		rule, err = c.store.Create(ctx, c.state.Scope, c.state.Name, c.state.Description, c.state.Draft)
	}

	if err != nil {
		c.state.Phase = PhaseError
		c.state.Pending = OpNone
		c.state.ErrMessage = err.Error()
		return err
	}

	c.state.Phase = PhaseReady
	c.state.Pending = OpNone
	c.state.ErrMessage = ""
	c.state.SelectedRuleID = rule.ID
	c.state.Name = rule.Name
	c.state.Description = rule.Description
	c.state.SavedText = c.state.Draft
	c.refreshCatalog(ctx, rule, false)
	return nil
}

// ResetOrDelete clears the editor. With a selected rule it deletes the
// backing row first; without one it is a purely local clear. A NotFound
// from the store counts as success: the row is gone either way, and a
// second delete must land in the same cleared state as the first.
func (c *Controller) ResetOrDelete(ctx context.Context) error {
	if err := c.resumeEditing(); err != nil {
		return err
	}

	if c.state.SelectedRuleID == "" {
		c.clearEditingFields()
		return nil
	}

	deleted := c.state.SelectedRuleID
	c.state.Phase = PhaseSaving
	c.state.Pending = OpDelete

	err := c.store.Delete(ctx, deleted)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.state.Phase = PhaseError
		c.state.Pending = OpNone
		c.state.ErrMessage = err.Error()
		return err
	}

	c.state.Phase = PhaseReady
	c.state.Pending = OpNone
	c.state.ErrMessage = ""
	c.clearEditingFields()
	c.refreshCatalog(ctx, &domain.Rule{ID: deleted}, true)
	return nil
}

func (c *Controller) clearEditingFields() {
	c.state.SelectedRuleID = ""
	c.state.Name = ""
	c.state.Description = ""
	c.state.Draft = ""
	c.state.SavedText = ""
}

// resumeEditing admits editing commands from Ready, and from Error by
// clearing the message: after a failed save the editor stays usable with
// the draft intact, which is what lets the user retry inline.
func (c *Controller) resumeEditing() error {
	switch c.state.Phase {
	case PhaseReady:
		return nil
	case PhaseError:
		c.state.Phase = PhaseReady
		c.state.ErrMessage = ""
		return nil
	case PhaseSaving:
		return ErrBusy
	default:
		return ErrNotReady
	}
}

// refreshCatalog re-lists the scope after a successful write. When the
// refresh itself fails the local lists are patched instead: a save that
// reached the store must not be reported as a failure because a
// follow-up read didn't.
func (c *Controller) refreshCatalog(ctx context.Context, rule *domain.Rule, removed bool) {
	rules, err := c.store.List(ctx, c.state.Scope, true)
	if err == nil {
		cat := Partition(c.state.Scope, rules)
		c.state.Templates = cat.Templates
		c.state.UserRules = cat.UserRules
		return
	}

	if removed {
		kept := c.state.UserRules[:0:0]
		for _, r := range c.state.UserRules {
			if r.ID != rule.ID {
				kept = append(kept, r)
			}
		}
		c.state.UserRules = kept
		return
	}

	for i, r := range c.state.UserRules {
		if r.ID == rule.ID {
			c.state.UserRules[i] = *rule
			return
		}
	}
	c.state.UserRules = append(c.state.UserRules, *rule)
}
