package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/idolyst/mentorship-api/internal/config"
	dbpkg "github.com/idolyst/mentorship-api/internal/db"
	"github.com/idolyst/mentorship-api/internal/logging"
	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/notify"
	"github.com/idolyst/mentorship-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	redisClient, err := notify.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, redisClient, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
