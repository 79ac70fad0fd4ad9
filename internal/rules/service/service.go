package service

import (
	"context"
	"log"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

// Store is the persistence capability the service needs. *repository.Repo
// implements it; tests substitute an in-memory fake.
type Store interface {
	ListCatalog(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, error)
	Create(ctx context.Context, scope domain.Scope, name, description, body string) (*domain.Rule, error)
	Update(ctx context.Context, id, name, description, body string) (*domain.Rule, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Rule, error)
}

// CatalogCache is the slice of the redis cache the service uses.
type CatalogCache interface {
	Get(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, bool, error)
	Set(ctx context.Context, scope domain.Scope, includeTemplates bool, rules []domain.Rule) error
	Invalidate(ctx context.Context, scope domain.Scope) error
}

// RuleService fronts the rule store with a scope-keyed cache. Cache
// failures degrade to the store: a broken redis must never fail a
// request that postgres can answer.
type RuleService struct {
	store Store
	cache CatalogCache
}

func New(store Store, cache CatalogCache) *RuleService {
	return &RuleService{store: store, cache: cache}
}

func (s *RuleService) List(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, error) {
	if s.cache != nil {
		rules, ok, err := s.cache.Get(ctx, scope, includeTemplates)
		if err != nil {
			log.Printf("[warn] operation=catalog_cache_get scope=%s error=%v", scope, err)
		} else if ok {
			return rules, nil
		}
	}

	rules, err := s.store.ListCatalog(ctx, scope, includeTemplates)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope, includeTemplates, rules); err != nil {
			log.Printf("[warn] operation=catalog_cache_set scope=%s error=%v", scope, err)
		}
	}
	return rules, nil
}

func (s *RuleService) Create(ctx context.Context, scope domain.Scope, name, description, body string) (*domain.Rule, error) {
	rule, err := s.store.Create(ctx, scope, name, description, body)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, rule.Scope())
	return rule, nil
}

func (s *RuleService) Update(ctx context.Context, id, name, description, body string) (*domain.Rule, error) {
	rule, err := s.store.Update(ctx, id, name, description, body)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, rule.Scope())
	return rule, nil
}

func (s *RuleService) Delete(ctx context.Context, id string) error {
	// Look the rule up first so the right scope can be invalidated.
	rule, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if rule.IsTemplate {
		return domain.ErrTemplateImmutable
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, rule.Scope())
	return nil
}

func (s *RuleService) invalidate(ctx context.Context, scope domain.Scope) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, scope); err != nil {
		log.Printf("[warn] operation=catalog_cache_invalidate scope=%s error=%v", scope, err)
	}
}
