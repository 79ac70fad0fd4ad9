package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/insightloop/rules-backend/internal/api/http"
	"github.com/insightloop/rules-backend/internal/api/http/middleware"
	rulecache "github.com/insightloop/rules-backend/internal/rules/cache"
	ruleshttp "github.com/insightloop/rules-backend/internal/rules/http"
	"github.com/insightloop/rules-backend/internal/rules/repository"
	"github.com/insightloop/rules-backend/internal/rules/service"
)

type RouterDeps struct {
	ServiceName        string
	Version            string
	DB                 *pgxpool.Pool
	Redis              *redis.Client
	CatalogCache       *rulecache.CatalogCache
	WriteRatePerSecond float64
	WriteRateBurst     int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	repo := repository.NewRepo(dep.DB)

	var cache service.CatalogCache
	if dep.CatalogCache != nil {
		cache = dep.CatalogCache
	}
	svc := service.New(repo, cache)

	api := r.Group("/")
	api.Use(middleware.RequestID())

	writeLimit := middleware.WriteRateLimit(dep.WriteRatePerSecond, dep.WriteRateBurst)
	ruleshttp.Register(api, ruleshttp.NewHandler(svc), writeLimit)

	return r
}
