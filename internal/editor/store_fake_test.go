package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

// fakeStore is an in-memory Store with error injection, standing in for
// the HTTP client in controller and loader tests.
type fakeStore struct {
	templates []domain.Rule
	userRules []domain.Rule
	nextID    int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	// onDelete runs inside Delete, before it returns. Used to probe the
	// controller's phase mid-operation.
	onDelete func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) addTemplate(name, description, body string) domain.Rule {
	f.nextID++
	t := domain.Rule{
		ID:          fmt.Sprintf("tmpl-%d", f.nextID),
		Name:        name,
		Description: description,
		Body:        body,
		IsTemplate:  true,
		UpdatedAt:   time.Now(),
	}
	f.templates = append(f.templates, t)
	return t
}

func (f *fakeStore) addUserRule(scope domain.Scope, name, body string) domain.Rule {
	f.nextID++
	r := domain.Rule{
		ID:        fmt.Sprintf("rule-%d", f.nextID),
		AreaID:    scope.AreaID,
		TabID:     scope.TabID,
		Name:      name,
		Body:      body,
		UpdatedAt: time.Now(),
	}
	f.userRules = append(f.userRules, r)
	return r
}

func (f *fakeStore) List(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []domain.Rule
	if includeTemplates {
		out = append(out, f.templates...)
	}
	for _, r := range f.userRules {
		if r.Scope() == scope {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, scope domain.Scope, name, description, body string) (*domain.Rule, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if err := domain.ValidateBody(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	f.nextID++
	r := domain.Rule{
		ID:          fmt.Sprintf("rule-%d", f.nextID),
		AreaID:      scope.AreaID,
		TabID:       scope.TabID,
		Name:        name,
		Description: description,
		Body:        body,
		UpdatedAt:   time.Now(),
	}
	f.userRules = append(f.userRules, r)
	return &r, nil
}

func (f *fakeStore) Update(ctx context.Context, id, name, description, body string) (*domain.Rule, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if err := domain.ValidateBody(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	for i := range f.userRules {
		if f.userRules[i].ID == id {
			f.userRules[i].Name = name
			f.userRules[i].Description = description
			f.userRules[i].Body = body
			f.userRules[i].UpdatedAt = time.Now()
			r := f.userRules[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.onDelete != nil {
		f.onDelete()
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}

	for i := range f.userRules {
		if f.userRules[i].ID == id {
			f.userRules = append(f.userRules[:i], f.userRules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %s", ErrNotFound, id)
}
