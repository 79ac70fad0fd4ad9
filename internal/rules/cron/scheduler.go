package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/insightloop/rules-backend/internal/rules/cache"
)

// Scheduler periodically sweeps the catalog cache so template edits made
// out-of-band (direct DB maintenance) show up in listings without a
// service restart.
type Scheduler struct {
	cache *cache.CatalogCache
	spec  string
	c     *cron.Cron
}

func NewScheduler(catalogCache *cache.CatalogCache, spec string) *Scheduler {
	return &Scheduler{cache: catalogCache, spec: spec}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	_, err := s.c.AddFunc(s.spec, s.runSweep)
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Printf("Cron scheduler started (catalog cache sweep, spec %q)", s.spec)
	s.c.Start()
}

func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.cache.Sweep(ctx)
	if err != nil {
		log.Printf("[warn] operation=catalog_cache_sweep error=%v", err)
		return
	}
	log.Printf("[info] operation=catalog_cache_sweep deleted=%d", deleted)
}
