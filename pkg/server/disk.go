package server

import (
	"bytes"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/log"
	"diskinfo/pkg/models"
	"diskinfo/pkg/render"
)

// getHealth handles the GET /healthz endpoint.
func (srv *DiskServer) getHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, models.Health{Status: "ok", Version: srv.version})
}

// getDiskInfo handles the GET /disk/info endpoint with a fresh query.
func (srv *DiskServer) getDiskInfo(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, models.NewDiskInfo(srv.mountPoint, srv.stats.Query()))
}

// getPlaceholder handles the GET /disk/placeholder endpoint.
func (srv *DiskServer) getPlaceholder(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, models.NewEntry(srv.mountPoint, srv.timeline.Placeholder()))
}

// getTimeline handles the GET /disk/timeline endpoint.
func (srv *DiskServer) getTimeline(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, models.NewTimeline(srv.mountPoint, srv.timeline.Timeline()))
}

// getWidget handles the GET /disk/widget/:family endpoint.
func (srv *DiskServer) getWidget(ctx echo.Context) error {
	family, err := render.ParseFamily(ctx.Param("family"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	}

	var buf bytes.Buffer
	if err := srv.renderer.Widget(&buf, family, srv.timeline.Snapshot()); err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("Failed to render widget")
		return ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to render widget"})
	}

	return ctx.String(http.StatusOK, buf.String())
}

// getSeverity handles the GET /disk/severity?percent=N endpoint.
func (srv *DiskServer) getSeverity(ctx echo.Context) error {
	raw := ctx.QueryParam("percent")
	if raw == "" {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "percent parameter is required"})
	}

	percent, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(percent) || math.IsInf(percent, 0) {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "percent must be a finite number"})
	}

	return ctx.JSON(http.StatusOK, models.SeverityResponse{
		Percent:  percent,
		Severity: diskstat.Classify(percent),
	})
}
