package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/natal-chart/internal/domain/auth"
	"github.com/yanqian/natal-chart/internal/domain/chart"
	apperrors "github.com/yanqian/natal-chart/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chartSvc chart.Service
	authSvc  auth.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc chart.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc: chartSvc,
		authSvc:  authSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// Natal serves the public chart endpoint; the body is the bare chart.
func (h *Handler) Natal(c *gin.Context) {
	resp, ok := h.compute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp.ChartView)
}

// CreateChart computes, stores and returns a chart with its id.
func (h *Handler) CreateChart(c *gin.Context) {
	resp, ok := h.compute(c)
	if !ok {
		return
	}
	c.Header("Location", "/api/v1/charts/"+resp.ID)
	c.JSON(http.StatusCreated, resp)
}

// GetChart returns a stored chart.
func (h *Handler) GetChart(c *gin.Context) {
	resp, err := h.chartSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, chartError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alive answers the root liveness probe.
func (h *Handler) Alive(c *gin.Context) {
	c.String(http.StatusOK, "API alive")
}

// Health reports readiness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "auth": h.authSvc.Enabled()})
}

// MethodNotAllowed is installed as gin's NoMethod handler.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	abortWithError(c, NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "method "+c.Request.Method+" not allowed", nil))
}

// NotFound is installed as gin's NoRoute handler.
func (h *Handler) NotFound(c *gin.Context) {
	abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "route not found", nil))
}

func (h *Handler) compute(c *gin.Context) (chart.Response, bool) {
	var req chart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return chart.Response{}, false
	}
	if claims, ok := getClaims(c); ok {
		req.Owner = claims.Subject
	}

	resp, err := h.chartSvc.Compute(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, chartError(err))
		return chart.Response{}, false
	}
	return resp, true
}

func bindError(err error) *HTTPError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", err)
	}
	return NewHTTPError(http.StatusBadRequest, chart.CodeInvalidInput, "request body must be a JSON birth record: "+errMessage(err), err)
}

func chartError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case chart.CodeInvalidInput:
		status = http.StatusBadRequest
	case chart.CodeChartNotFound:
		status = http.StatusNotFound
	case "":
		code = chart.CodeChartError
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
