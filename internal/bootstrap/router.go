package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/scale-advisor/scale-advisor-backend/internal/api/http"
	"github.com/scale-advisor/scale-advisor-backend/internal/api/http/middleware"
	"github.com/scale-advisor/scale-advisor-backend/internal/advisor"
	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
	"github.com/scale-advisor/scale-advisor-backend/internal/canvas"
	"github.com/scale-advisor/scale-advisor-backend/internal/costs"
	"github.com/scale-advisor/scale-advisor-backend/internal/pricing"
	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
	"github.com/scale-advisor/scale-advisor-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	AuthClient     *fbauth.Client
	Log            *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(httpapi.Metrics(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-User-Email", "X-User-Name"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)
	httpapi.RegisterMetricsRoute(r)

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	advisorRepo := advisor.NewRepo(dep.DB)
	canvasRepo := canvas.NewRepo(dep.DB)

	ratesRepo := pricing.NewRatesRepo(dep.DB)
	rateCache := pricing.NewRateCache(dep.Redis, ratesRepo, dep.Log)
	costSvc := costs.NewService(rateCache, dep.Log)

	api := r.Group("/api/v1")
	api.Use(auth.WithUser(dep.AuthClient, userRepo, dep.Log))

	users.Register(api, userRepo)

	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, projectRepo, dep.Log)
	advisor.RegisterProjectSubroutes(projectsGroup, advisorRepo, projectRepo, dep.Log)
	costs.RegisterProjectSubroutes(projectsGroup, costSvc, projectRepo, dep.Log)
	canvas.RegisterProjectSubroutes(projectsGroup, canvasRepo, dep.Log)

	costs.Register(api, costSvc, dep.Log)
	canvas.Register(api, dep.Log)

	return r
}
