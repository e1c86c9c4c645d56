package relay

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hemantsolanki/portfolio/internal/store"
)

// Answers the relay gives besides the model output.
const (
	FallbackOutput = "No AI response received."
	FailureMessage = "AI analysis failed"
)

// Recorder stores the outcome of each relay call.
type Recorder interface {
	RecordAnalysis(ctx context.Context, a store.Analysis) error
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is the success body.
type AnalyzeResponse struct {
	Output string `json:"output"`
}

// Handler serves POST /api/analyze. Every request is forwarded upstream
// once; there is no caching or retrying.
type Handler struct {
	gen     Generator
	rec     Recorder
	timeout time.Duration
	now     func() time.Time
}

// NewHandler creates the handler. rec may be nil; timeout <= 0 means the
// upstream call is only bounded by the client's request context.
func NewHandler(gen Generator, rec Recorder, timeout time.Duration) *Handler {
	return &Handler{gen: gen, rec: rec, timeout: timeout, now: time.Now}
}

// Analyze is the gin handler.
func (h *Handler) Analyze(c *gin.Context) {
	start := h.now()
	reqID := middleware.GetReqID(c.Request.Context())

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[%s] Gemini error: bad request body: %v", reqID, err)
		h.record(c, store.Analysis{Status: store.StatusError}, start)
		c.JSON(http.StatusInternalServerError, gin.H{"error": FailureMessage})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	output, err := h.gen.Generate(ctx, req.Text)
	if err != nil {
		log.Printf("[%s] Gemini error: %v", reqID, err)
		h.record(c, store.Analysis{InputChars: len([]rune(req.Text)), Status: store.StatusError}, start)
		c.JSON(http.StatusInternalServerError, gin.H{"error": FailureMessage})
		return
	}

	fallback := output == ""
	if fallback {
		output = FallbackOutput
	}
	h.record(c, store.Analysis{
		InputChars:  len([]rune(req.Text)),
		OutputChars: len([]rune(output)),
		Status:      store.StatusOK,
		Fallback:    fallback,
	}, start)
	c.JSON(http.StatusOK, AnalyzeResponse{Output: output})
}

func (h *Handler) record(c *gin.Context, a store.Analysis, start time.Time) {
	if h.rec == nil {
		return
	}
	a.CreatedAt = start
	a.DurationMS = h.now().Sub(start).Milliseconds()
	if err := h.rec.RecordAnalysis(context.WithoutCancel(c.Request.Context()), a); err != nil {
		log.Printf("Error recording analysis: %v", err)
	}
}
