package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/hireboard/config"
	"github.com/yoockh/hireboard/internal/api/handlers"
	"github.com/yoockh/hireboard/internal/api/middleware"
	"github.com/yoockh/hireboard/internal/api/routes"
	"github.com/yoockh/hireboard/internal/cache"
	"github.com/yoockh/hireboard/internal/logger"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/services"
	"github.com/yoockh/hireboard/internal/storage"
)

const tokenTTL = 24 * time.Hour

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.Migrate(config.PostgresDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Info("PostgreSQL connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	var c cache.Cache
	if config.RedisClient != nil {
		c = cache.NewRedisCache(config.RedisClient)
		log.Info("Redis connected")
	} else {
		log.Warn("Redis not configured, analytics caching disabled")
	}

	var uploader storage.Uploader
	var signer storage.Signer
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		gcs, err := storage.NewGCSUploader(context.Background(), bucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		uploader = gcs
		signer = gcs
	} else {
		log.Warn("STORAGE_BUCKET not set, file uploads disabled")
	}

	db := config.PostgresDB
	users := pgrepo.NewUserRepo(db)
	profiles := pgrepo.NewProfileRepo(db)
	jobs := pgrepo.NewJobRepo(db)
	apps := pgrepo.NewApplicationRepo(db)
	analytics := pgrepo.NewAnalyticsRepo(db)

	authSvc := services.NewAuthService(users, os.Getenv("JWT_SECRET"), tokenTTL)
	profileSvc := services.NewProfileService(users, profiles, jobs, uploader)
	jobSvc := services.NewJobService(jobs, apps, profiles, c)
	appSvc := services.NewApplicationService(apps, jobs, profiles, signer, c)
	dashSvc := services.NewDashboardService(profiles, jobs, apps)
	analyticsSvc := services.NewAnalyticsService(analytics, c)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc),
		Profile:     handlers.NewProfileHandler(profileSvc),
		Upload:      handlers.NewUploadHandler(profileSvc),
		Job:         handlers.NewJobHandler(jobSvc),
		Application: handlers.NewApplicationHandler(appSvc),
		Dashboard:   handlers.NewDashboardHandler(dashSvc),
		Analytics:   handlers.NewAnalyticsHandler(analyticsSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
