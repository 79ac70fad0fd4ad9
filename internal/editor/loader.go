package editor

import (
	"context"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

// Catalog is a partitioned rule listing for one scope.
type Catalog struct {
	Scope     domain.Scope
	Templates []domain.Rule
	UserRules []domain.Rule
	// Active is the user rule the editor should select on load: the
	// first scope-matched user rule, or nil. An editor convenience, not
	// a server constraint.
	Active *domain.Rule
}

// LoadTicket stamps an in-flight catalog load. A ticket older than the
// loader's current generation identifies a stale response that must be
// discarded, not applied: without this a fast section switch can briefly
// show the previous section's rules.
type LoadTicket struct {
	Scope      domain.Scope
	Generation uint64
}

// CatalogLoader fetches and partitions rule catalogs. Not safe for
// concurrent use; it lives inside a single editor session.
type CatalogLoader struct {
	store Store
	gen   uint64
}

func NewCatalogLoader(store Store) *CatalogLoader {
	return &CatalogLoader{store: store}
}

// Begin stamps a new load for scope, superseding any still in flight.
func (l *CatalogLoader) Begin(scope domain.Scope) LoadTicket {
	l.gen++
	return LoadTicket{Scope: scope, Generation: l.gen}
}

// IsStale reports whether a ticket has been superseded by a later Begin.
func (l *CatalogLoader) IsStale(t LoadTicket) bool {
	return t.Generation != l.gen
}

// Fetch retrieves and partitions the catalog for a ticket's scope.
func (l *CatalogLoader) Fetch(ctx context.Context, t LoadTicket) (*Catalog, error) {
	rules, err := l.store.List(ctx, t.Scope, true)
	if err != nil {
		return nil, err
	}
	return Partition(t.Scope, rules), nil
}

// Partition splits a combined listing into templates and scope-matched
// user rules and picks the initial active rule.
func Partition(scope domain.Scope, rules []domain.Rule) *Catalog {
	cat := &Catalog{Scope: scope}
	for _, r := range rules {
		if r.IsTemplate {
			cat.Templates = append(cat.Templates, r)
			continue
		}
		if r.Scope() != scope {
			continue
		}
		cat.UserRules = append(cat.UserRules, r)
		if cat.Active == nil {
			rule := r
			cat.Active = &rule
		}
	}
	return cat
}
