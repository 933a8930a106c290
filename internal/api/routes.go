package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rawblock/wallet-tracer/internal/analysis"
	"github.com/rawblock/wallet-tracer/internal/indexer"
	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Analyzer is the pipeline entry point the HTTP layer serves.
type Analyzer interface {
	AnalyzeWithProgress(ctx context.Context, address, startDate, endDate string, onPage indexer.PageFunc) (*models.FullAnalysisResponse, error)
}

// RouterConfig carries the HTTP-only settings.
type RouterConfig struct {
	AllowedOrigins  string
	RateLimitPerMin int
	RateLimitBurst  int
	DigestLimit     int
}

type APIHandler struct {
	analyzer       Analyzer
	digestLimit    int
	allowedOrigins string
}

func SetupRouter(analyzer Analyzer, cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	// CORS is configurable via ALLOWED_ORIGINS env var
	// Production: ALLOWED_ORIGINS=https://tracer.example.com
	// Development: leave empty for *
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	handler := &APIHandler{
		analyzer:       analyzer,
		digestLimit:    cfg.DigestLimit,
		allowedOrigins: cfg.AllowedOrigins,
	}

	api := r.Group("/api/v1")
	{
		api.GET("/health", handler.handleHealth)

		trace := api.Group("/trace")
		if cfg.RateLimitPerMin > 0 {
			trace.Use(NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst).Middleware())
		}
		trace.GET("/:address", handler.handleTrace)
		trace.GET("/:address/digest", handler.handleDigest)
		trace.GET("/:address/stream", handler.handleStream)
	}

	return r
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if originAllowed(allowedOrigins, origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// originAllowed reports whether origin is in the comma-separated allow list.
// An empty list or "*" allows everything.
func originAllowed(allowedOrigins, origin string) bool {
	if allowedOrigins == "" || allowedOrigins == "*" {
		return true
	}
	for _, allowed := range strings.Split(allowedOrigins, ",") {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}
	return false
}

// handleHealth returns service status for discovery
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "operational",
		"service": "wallet-tracer",
	})
}

// GET /api/v1/trace/:address?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *APIHandler) handleTrace(c *gin.Context) {
	resp, err := h.analyzer.AnalyzeWithProgress(c.Request.Context(), c.Param("address"), c.Query("start_date"), c.Query("end_date"), nil)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/v1/trace/:address/digest?start_date&end_date&limit=15
// Returns the response with its transaction list cut to a bounded prefix,
// sized for downstream report generation.
func (h *APIHandler) handleDigest(c *gin.Context) {
	limit := h.digestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	resp, err := h.analyzer.AnalyzeWithProgress(c.Request.Context(), c.Param("address"), c.Query("start_date"), c.Query("end_date"), nil)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.Digest(*resp, limit))
}

// writeAnalysisError maps pipeline errors to HTTP statuses.
func writeAnalysisError(c *gin.Context, err error) {
	status, body := analysisErrorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, body)
}

func analysisErrorResponse(err error) (int, gin.H) {
	var valErr *analysis.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, gin.H{"error": valErr.Error()}
	}

	var upErr *indexer.UpstreamError
	if errors.As(err, &upErr) {
		if upErr.NotFound() {
			return http.StatusNotFound, gin.H{"error": "Address is invalid or unknown to the indexer", "details": upErr.Error()}
		}
		return http.StatusBadGateway, gin.H{"error": "Blockchain indexer request failed", "details": upErr.Error()}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, gin.H{"error": "Analysis cancelled", "details": err.Error()}
	}
	return http.StatusInternalServerError, gin.H{"error": "Analysis failed", "details": err.Error()}
}
