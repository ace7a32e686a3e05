package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/dwh_backend/config"
	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/mmdatafocus/dwh_backend/utils"
	"github.com/mmdatafocus/dwh_backend/workflow"
)

func main() {
	env, err := config.LoadServiceEnv()
	if err != nil {
		log.Fatalf("invalid service environment: %v", err)
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start listening ASAP; until DB/Redis are ready, app endpoints return 503.
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil || config.GetRedisDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	r.Use(cors.New(corsConfig))

	r.POST("/refresh", func(c *gin.Context) {
		runRefresh(c, "")
	})
	r.POST("/refresh/:kind", func(c *gin.Context) {
		runRefresh(c, c.Param("kind"))
	})
	r.GET("/runs", func(c *gin.Context) {
		var runs []models.RefreshRun
		if err := config.GetDB().WithContext(c.Request.Context()).
			Order("id DESC").Limit(50).Find(&runs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, runs)
	})

	srv := &http.Server{
		Addr:    ":" + env.Port,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Connect dependencies after the listener is up.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()
	logger.Info("silver refresh service ready")

	<-sigCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func runRefresh(c *gin.Context, kindParam string) {
	kindParam = strings.TrimSpace(kindParam)
	var kind models.EntityKind
	if kindParam != "" {
		parsed, err := models.ParseEntityKind(kindParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kind = parsed
	}

	refresher := workflow.NewRefresher(config.GetDB(), config.GetLogger())
	err := workflow.WithRefreshLock(c.Request.Context(), func(ctx context.Context) error {
		if kind == "" {
			return refresher.RefreshAll(ctx)
		}
		return refresher.RefreshKind(ctx, kind)
	})
	switch {
	case errors.Is(err, utils.ErrorRefreshInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"run_id": refresher.RunID, "error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"run_id": refresher.RunID})
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
