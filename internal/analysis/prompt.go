package analysis

import (
	"fmt"
	"strings"

	"github.com/dvloznov/fraud-detection-api/internal/domain"
)

// The parser keys off these exact labels, each starting a line in the
// model's reply. Changing the wording of the output-format contract below
// breaks extraction.
const (
	labelRiskLevel       = "RISK_LEVEL:"
	labelConfidence      = "CONFIDENCE:"
	labelReasoning       = "REASONING:"
	labelRedFlags        = "RED_FLAGS:"
	labelRecommendations = "RECOMMENDATIONS:"
)

// BuildPrompt renders the fixed analysis instruction for one transaction.
// Merchant, category and location pass through Sanitize first; the
// identifier, amount, timestamp and card digits are already constrained
// by validation and are embedded as-is. Deterministic for a given record.
func BuildPrompt(rec domain.TransactionRecord) string {
	merchant := Sanitize(rec.Merchant)
	category := Sanitize(rec.Category)
	location := Sanitize(rec.Location)

	cardSuffix := rec.CardLastFour
	if cardSuffix == "" {
		cardSuffix = "XXXX"
	}

	var b strings.Builder
	b.WriteString("You are a fraud detection expert analyzing a credit card transaction.\n\n")

	b.WriteString("Transaction Details:\n")
	fmt.Fprintf(&b, "- Amount: $%.2f\n", rec.Amount)
	fmt.Fprintf(&b, "- Merchant: %s\n", merchant)
	fmt.Fprintf(&b, "- Category: %s\n", category)
	fmt.Fprintf(&b, "- Location: %s\n", location)
	fmt.Fprintf(&b, "- Time: %s\n", rec.Timestamp)
	fmt.Fprintf(&b, "- Card: ****%s\n\n", cardSuffix)

	b.WriteString("Analyze this transaction for fraud indicators. Consider:\n")
	b.WriteString("1. Amount appropriateness for category\n")
	b.WriteString("2. Unusual location patterns (e.g., high-risk regions)\n")
	b.WriteString("3. Merchant reputation concerns\n")
	b.WriteString("4. Time-of-day patterns\n")
	b.WriteString("5. Round number amounts (common in fraud)\n\n")

	b.WriteString("Provide your analysis in this exact format:\n\n")
	b.WriteString(labelRiskLevel + " [low/medium/high]\n")
	b.WriteString(labelConfidence + " [low/medium/high]\n")
	b.WriteString(labelReasoning + " [2-3 sentences explaining your assessment]\n")
	b.WriteString(labelRedFlags + " [comma-separated list of concerns, or \"none\"]\n")
	b.WriteString(labelRecommendations + " [1-2 sentence action recommendation]\n\n")

	b.WriteString("Be specific and practical. Focus on concrete indicators.")

	return b.String()
}
