package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsHandler serves the Prometheus exposition format for srv.gatherer.
func (srv *DiskServer) metricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(srv.gatherer, promhttp.HandlerOpts{}))
}
