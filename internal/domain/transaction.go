package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TransactionRecord is one transaction submitted for fraud analysis.
// It is owned by the request that created it and is never mutated or
// persisted; every analysis starts from a freshly decoded record.
type TransactionRecord struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Merchant      string  `json:"merchant"`
	Category      string  `json:"category"`
	Location      string  `json:"location"`
	Timestamp     string  `json:"timestamp"`
	CardLastFour  string  `json:"card_last_four,omitempty"`
}

// AnalysisResult is the structured outcome recovered from the model's
// free-text reply. RiskLevel and Confidence carry "unknown" when the
// reply did not contain the corresponding field; an all-default result
// signals format drift, not an error.
type AnalysisResult struct {
	TransactionID   string   `json:"transaction_id"`
	RiskLevel       string   `json:"risk_level"`
	Confidence      string   `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	RedFlags        []string `json:"red_flags"`
	Recommendations string   `json:"recommendations"`
}

const (
	freeTextMinLen = 1
	freeTextMaxLen = 200
)

// Validate checks every field and returns all violations at once, so a
// caller can report them in a single response. A nil slice means the
// record is acceptable.
func (r TransactionRecord) Validate() []string {
	var violations []string

	if strings.TrimSpace(r.TransactionID) == "" {
		violations = append(violations, "transaction_id: must not be empty")
	}
	if r.Amount <= 0 {
		violations = append(violations, "amount: must be greater than 0")
	}
	if msg := checkFreeText("merchant", r.Merchant); msg != "" {
		violations = append(violations, msg)
	}
	if msg := checkFreeText("category", r.Category); msg != "" {
		violations = append(violations, msg)
	}
	if msg := checkFreeText("location", r.Location); msg != "" {
		violations = append(violations, msg)
	}
	if _, err := ParseTimestamp(r.Timestamp); err != nil {
		violations = append(violations, "timestamp: must be a valid ISO 8601 timestamp")
	}
	if r.CardLastFour != "" && !isFourDigits(r.CardLastFour) {
		violations = append(violations, "card_last_four: must be exactly 4 digits")
	}

	return violations
}

// ParseTimestamp accepts RFC 3339 with or without a trailing Z, plus the
// date-time form without a zone offset that upstream clients tend to send.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func checkFreeText(field, value string) string {
	// Bounds are in characters, not bytes; multi-byte merchant names in
	// the 1..200 range are valid.
	n := utf8.RuneCountInString(value)
	if n < freeTextMinLen || n > freeTextMaxLen {
		return field + ": length must be between 1 and 200 characters"
	}
	return ""
}

// isFourDigits is the one PCI-style guarantee the service makes: anything
// other than exactly four numeric characters is rejected, so a full card
// number can never reach the model.
func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
