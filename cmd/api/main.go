package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/veldroid/tattoopro-api/internal/config"
	dbpkg "github.com/veldroid/tattoopro-api/internal/db"
	"github.com/veldroid/tattoopro-api/internal/redislock"
	"github.com/veldroid/tattoopro-api/internal/routes"
)

func main() {

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// Without Redis the per-key locks degrade to no-ops and the database
	// row locks carry the whole overlap guard.
	locker := redislock.NewNoopLocker()
	if cfg.RedisAddr != "" {
		client, err := redislock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		locker = redislock.NewRedisLocker(client, cfg.LockTTL)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker)

	log.Info().Str("addr", cfg.Addr()).Msg("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
