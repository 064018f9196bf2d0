package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/output"
	"github.com/vertti/deploycheck/pkg/runner"
)

// Handler serves reports. Every request runs the checks again.
type Handler struct {
	runner     *runner.Runner
	deployment check.Deployment
	failOnWarn bool
	now        func() time.Time
}

// NewHandler creates a Handler. The runner must be fully registered.
func NewHandler(r *runner.Runner, d check.Deployment, failOnWarn bool) *Handler {
	return &Handler{
		runner:     r,
		deployment: d,
		failOnWarn: failOnWarn,
		now:        time.Now,
	}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	output.SummaryView
}

func (h *Handler) report() output.Report {
	results := h.runner.Run(h.deployment)
	return output.NewReport(h.deployment.Root, results, h.now())
}

// HTMLReport handles GET /.
func (h *Handler) HTMLReport(c echo.Context) error {
	var buf bytes.Buffer
	if err := output.HTML(&buf, h.report()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render report").SetInternal(err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// JSONReport handles GET /report.json.
func (h *Handler) JSONReport(c echo.Context) error {
	return c.JSON(http.StatusOK, h.report())
}

// Health handles GET /healthz: 200 when healthy, 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	s := h.report().Summary

	healthy := s.Healthy() && (!h.failOnWarn || s.Warn == 0)
	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", SummaryView: s})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy", SummaryView: s})
}
