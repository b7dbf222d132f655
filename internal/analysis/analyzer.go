package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvloznov/fraud-detection-api/internal/domain"
	"github.com/rs/zerolog"
)

// ErrBackendFailure wraps any failure of the outbound model call: network
// errors, timeouts, non-success statuses, malformed or empty envelopes.
// It is never downgraded to a default result.
var ErrBackendFailure = errors.New("analysis backend failure")

// ModelClient is the narrow collaborator contract the analyzer consumes:
// send one prompt, receive the model's text reply. Implementations live
// in internal/llm; tests substitute their own.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the full analysis pipeline for validated transaction
// records. It holds no mutable state; concurrent Analyze calls are
// independent.
type Analyzer struct {
	client ModelClient
	log    zerolog.Logger
}

// NewAnalyzer creates an analyzer backed by the given model client.
func NewAnalyzer(client ModelClient, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		log:    log,
	}
}

// Analyze builds the prompt for rec, sends it to the model and parses the
// reply into an AnalysisResult. The transaction identifier is always
// echoed from the input record, never taken from model output, so a
// hallucinated identifier cannot leak into the response. Model-call
// failures surface as ErrBackendFailure with the cause attached; there is
// no retry. A successfully returned but unstructured reply is not an
// error: it parses to defaulted fields.
func (a *Analyzer) Analyze(ctx context.Context, rec domain.TransactionRecord) (domain.AnalysisResult, error) {
	a.log.Info().
		Str("transaction_id", rec.TransactionID).
		Float64("amount", rec.Amount).
		Str("category", rec.Category).
		Msg("Analyzing transaction")

	prompt := BuildPrompt(rec)

	reply, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %w", ErrBackendFailure, err)
	}

	fields := Parse(reply)

	result := domain.AnalysisResult{
		TransactionID:   rec.TransactionID,
		RiskLevel:       fields.RiskLevel,
		Confidence:      fields.Confidence,
		Reasoning:       fields.Reasoning,
		RedFlags:        fields.RedFlags,
		Recommendations: fields.Recommendations,
	}

	a.log.Info().
		Str("transaction_id", result.TransactionID).
		Str("risk_level", result.RiskLevel).
		Str("confidence", result.Confidence).
		Msg("Transaction analyzed")

	return result, nil
}
