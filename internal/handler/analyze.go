package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/service"
)

// AnalyzePaths are the routes the analyze endpoint is served on. The
// trailing-slash form is what the bundled frontend posts to.
var AnalyzePaths = []string{"/api/analyze/", "/api/analyze", "/api/v1/analyze"}

// Analyzer answers free-text queries
type Analyzer interface {
	Analyze(ctx context.Context, query string) *service.AnalysisResult
}

// AnalyzeHandler handles query analysis requests
type AnalyzeHandler struct {
	analyzer Analyzer
	log      *zap.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer Analyzer, log *zap.Logger) *AnalyzeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyzeHandler{
		analyzer: analyzer,
		log:      log,
	}
}

// Register mounts the handler on every analyze path
func (h *AnalyzeHandler) Register(router gin.IRoutes) {
	for _, p := range AnalyzePaths {
		router.POST(p, h.Analyze)
	}
}

// Analyze handles POST /api/analyze/
//
// A missing body or missing query field is analyzed as an empty query.
// Every analyzable request gets 200, including "no data" answers and
// summarizer failures.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.analyzer.Analyze(c.Request.Context(), req.Query)

	h.log.Debug("analyze request served",
		zap.String("request_id", RequestIDFrom(c)),
		zap.String("intent", string(result.Intent.Kind)),
	)

	c.Header("X-Intent", string(result.Intent.Kind))
	c.JSON(http.StatusOK, result.Envelope)
}
