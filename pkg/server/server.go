// Package server exposes check reports over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// New returns an echo instance with routes and middleware registered.
func New(h *Handler, logger logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/", h.HTMLReport)
	e.GET("/report.json", h.JSONReport)
	e.GET("/healthz", h.Health)

	return e
}

// Serve runs e on addr until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, e *echo.Echo, addr string, logger logrus.FieldLogger) error {
	done := make(chan error, 1)
	go func() {
		done <- e.Start(addr)
	}()

	logger.WithField("addr", addr).Info("http server started")

	select {
	case err := <-done:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-done
		logger.Info("http server stopped")
		return nil
	}
}

func requestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			logger.WithFields(logrus.Fields{
				"remote_ip": c.RealIP(),
				"method":    req.Method,
				"path":      req.URL.Path,
				"status":    c.Response().Status,
				"latency":   time.Since(start).String(),
				"bytes_out": c.Response().Size,
			}).Debug("http request")

			return nil
		}
	}
}
