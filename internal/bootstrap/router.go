package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/socforge/drc-backend/internal/api/http"
	"github.com/socforge/drc-backend/internal/api/http/middleware"
	"github.com/socforge/drc-backend/internal/drc/detection/rules"
	drchttp "github.com/socforge/drc-backend/internal/drc/http"
	"github.com/socforge/drc-backend/internal/drc/repository"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DRCOptions     rules.Options
	DB             *pgxpool.Pool // optional
	Redis          *redis.Client // optional
}

// SetGinMode switches gin to release mode outside development.
func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// BuildRouter wires the gin engine: health endpoints, CORS, request IDs and
// the DRC API group. DB and redis are optional; the analyze endpoint works
// without either.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = dep.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	var cache *repository.ReportCache
	if dep.Redis != nil {
		cache = repository.NewReportCache(dep.Redis)
	}
	var history *repository.HistoryRepo
	if dep.DB != nil {
		history = repository.NewHistoryRepo(dep.DB)
	}

	drcHandler := drchttp.New(cache, history, dep.DRCOptions)
	drcHandler.Register(api.Group("/drc"))

	return r
}
