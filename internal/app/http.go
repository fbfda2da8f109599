package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adanyl0v/go-team-tasks/internal/config"
	"github.com/adanyl0v/go-team-tasks/internal/delivery/http/v1"
	"github.com/adanyl0v/go-team-tasks/internal/metrics"
	"github.com/adanyl0v/go-team-tasks/internal/services"
)

const healthzPingTimeout = 2 * time.Second

func (a *App) MustListenAndServeHTTP() {
	if a.cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := a.cfg.HTTP

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(v1.RequestLogger(a.logger))
	router.Use(metrics.Middleware)
	a.registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		a.logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// kill (no params) sends SIGTERM, kill -2 sends SIGINT.
	// SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	a.logger.Info().Msg("shut down http server")
}

func (a *App) registerRoutes(router gin.IRouter) {
	jwtCfg := a.cfg.JWT
	pool := a.postgresPool

	v1Handler := v1.New(a.logger, v1.Services{
		Auth: services.NewAuthService(
			a.logger,
			pool,
			jwtCfg.Issuer,
			[]byte(jwtCfg.SigningKey),
			jwtCfg.AccessTokenTTL,
			jwtCfg.RefreshTokenTTL,
		),
		Sessions: services.NewSessionService(a.logger, pool),
		Users:    services.NewUserService(a.logger, pool),
		Teams:    services.NewTeamService(a.logger, pool),
		Projects: services.NewProjectService(a.logger, pool),
		Tasks:    services.NewTaskService(a.logger, pool),
	})

	router.GET("/healthz", a.handleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v1.RegisterRoutes(router, v1Handler)
}

func (a *App) handleHealthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, healthzPingTimeout)
	defer cancel()

	err := a.postgresPool.Ping(ctx)
	if err != nil {
		a.logger.Warn().
			Err(err).
			Msg("postgres ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
