package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/log"
	"diskinfo/pkg/models"
	"diskinfo/pkg/render"
	"diskinfo/pkg/stream"
	"diskinfo/pkg/timeline"
)

const (
	shutdownTimeout = 10
)

// Config wires a Server to its collaborators. Stats and Timeline are
// required; the rest switch their routes off when nil.
type Config struct {
	Version    string
	MountPoint string
	Stats      diskstat.Provider
	Timeline   *timeline.Provider
	Refresher  *timeline.Refresher
	Hub        *stream.Hub
	Gatherer   prometheus.Gatherer
}

type DiskServer struct {
	echo       *echo.Echo
	version    string
	mountPoint string
	stats      diskstat.Provider
	timeline   *timeline.Provider
	refresher  *timeline.Refresher
	hub        *stream.Hub
	gatherer   prometheus.Gatherer
	renderer   *render.Renderer

	routesOnce sync.Once
	hubCancel  context.CancelFunc
}

func NewDiskServer(cfg Config) *DiskServer {
	srv := &DiskServer{
		echo:       echo.New(),
		version:    cfg.Version,
		mountPoint: cfg.MountPoint,
		stats:      cfg.Stats,
		timeline:   cfg.Timeline,
		refresher:  cfg.Refresher,
		hub:        cfg.Hub,
		gatherer:   cfg.Gatherer,
		renderer:   render.NewRenderer(render.ColorNever, nil),
	}

	if srv.refresher != nil && srv.hub != nil {
		srv.refresher.Subscribe(func(e timeline.Entry) {
			srv.hub.BroadcastJSON(models.NewEntry(srv.mountPoint, e))
		})
	}

	return srv
}

// Handler returns the routed echo instance, for tests and embedding.
func (srv *DiskServer) Handler() http.Handler {
	srv.routesOnce.Do(srv.setupRoutes)
	return srv.echo
}

// Start serves on addr until SIGINT or SIGTERM, then shuts down gracefully.
func (srv *DiskServer) Start(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, addr)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (srv *DiskServer) Run(ctx context.Context, addr string) error {
	srv.routesOnce.Do(srv.setupRoutes)

	if srv.hub != nil {
		var hubCtx context.Context
		hubCtx, srv.hubCancel = context.WithCancel(context.Background())
		go srv.hub.Run(hubCtx)
	}
	if srv.refresher != nil {
		srv.refresher.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("mount_point", srv.mountPoint).
			Str("version", srv.version).
			Msg("Starting disk info server")

		if err := srv.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error().Err(err).Msg("Server startup failed")
		_ = srv.Shutdown()
		return err
	}

	return srv.Shutdown()
}

func (srv *DiskServer) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if srv.refresher != nil {
		srv.refresher.Stop()
	}

	if err := srv.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	if srv.hubCancel != nil {
		srv.hubCancel()
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (srv *DiskServer) setupRoutes() {
	srv.echo.HideBanner = true
	srv.echo.HidePort = true
	srv.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	srv.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${id} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	srv.echo.Use(middleware.Recover())

	srv.echo.GET("/healthz", srv.getHealth)
	srv.echo.GET("/swagger.yml", srv.serveSwaggerSpec)
	srv.echo.GET("/disk/info", srv.getDiskInfo)
	srv.echo.GET("/disk/placeholder", srv.getPlaceholder)
	srv.echo.GET("/disk/timeline", srv.getTimeline)
	srv.echo.GET("/disk/widget/:family", srv.getWidget)
	srv.echo.GET("/disk/severity", srv.getSeverity)

	if srv.hub != nil {
		srv.echo.GET("/disk/watch", echo.WrapHandler(srv.hub.Handler()))
	}
	if srv.gatherer != nil {
		srv.echo.GET("/metrics", srv.metricsHandler())
	}
}
