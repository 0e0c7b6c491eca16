package handler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"advisor-dash/pkg/models"
)

// Analyzer is the one outbound call the workflow makes.
type Analyzer interface {
	Analyze(ctx context.Context, req models.QueryRequest) (*models.AnalysisResult, error)
}

type Handler struct {
	analyzer Analyzer
}

func New(analyzer Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

// Result always carries a displayable analysis. ErrorMsg is empty on success
// and a non-fatal diagnostic when the fallback path was taken.
type Result struct {
	Analysis *models.AnalysisResult
	ErrorMsg string
}

// Analyze runs the single analyze attempt and fully recovers any failure into
// the fallback result. Callers never see an error from this path.
func (h *Handler) Analyze(ctx context.Context, req models.QueryRequest) Result {
	analysis, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("analyze failed, serving fallback result")
		return Result{
			Analysis: models.Fallback(req.Query),
			ErrorMsg: fmt.Sprintf("live agents unreachable: %v", err),
		}
	}
	return Result{Analysis: analysis}
}
