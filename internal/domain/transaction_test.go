package domain

import (
	"strings"
	"testing"
)

func validRecord() TransactionRecord {
	return TransactionRecord{
		TransactionID: "txn_low_001",
		Amount:        47.32,
		Merchant:      "Starbucks",
		Category:      "food",
		Location:      "San Francisco, CA",
		Timestamp:     "2024-12-08T08:15:00Z",
		CardLastFour:  "5678",
	}
}

func TestValidate_AcceptsValidRecord(t *testing.T) {
	if violations := validRecord().Validate(); violations != nil {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestValidate_CardLastFour(t *testing.T) {
	tests := []struct {
		card    string
		wantErr bool
	}{
		{"5678", false},
		{"", false}, // optional
		{"0000", false},
		{"12345678", true}, // full PAN fragment
		{"56", true},
		{"56ab", true},
		{"abcd", true},
		{"5 67", true},
	}

	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			rec := validRecord()
			rec.CardLastFour = tt.card

			violations := rec.Validate()
			got := hasViolation(violations, "card_last_four")
			if got != tt.wantErr {
				t.Errorf("card %q: violation = %v, want %v (all: %v)", tt.card, got, tt.wantErr, violations)
			}
		})
	}
}

func TestValidate_Amount(t *testing.T) {
	tests := []struct {
		amount  float64
		wantErr bool
	}{
		{47.32, false},
		{0.01, false},
		{0, true},
		{-5, true},
	}

	for _, tt := range tests {
		rec := validRecord()
		rec.Amount = tt.amount

		violations := rec.Validate()
		if got := hasViolation(violations, "amount"); got != tt.wantErr {
			t.Errorf("amount %v: violation = %v, want %v", tt.amount, got, tt.wantErr)
		}
	}
}

func TestValidate_FreeTextLength(t *testing.T) {
	long := strings.Repeat("x", 201)
	max := strings.Repeat("x", 200)
	// 150 characters but well over 200 bytes; bounds count characters.
	wide := strings.Repeat("商", 150)
	wideLong := strings.Repeat("商", 201)

	tests := []struct {
		name    string
		mutate  func(*TransactionRecord)
		field   string
		wantErr bool
	}{
		{"empty merchant", func(r *TransactionRecord) { r.Merchant = "" }, "merchant", true},
		{"merchant too long", func(r *TransactionRecord) { r.Merchant = long }, "merchant", true},
		{"merchant at limit", func(r *TransactionRecord) { r.Merchant = max }, "merchant", false},
		{"multi-byte merchant in range", func(r *TransactionRecord) { r.Merchant = wide }, "merchant", false},
		{"multi-byte merchant too long", func(r *TransactionRecord) { r.Merchant = wideLong }, "merchant", true},
		{"empty category", func(r *TransactionRecord) { r.Category = "" }, "category", true},
		{"empty location", func(r *TransactionRecord) { r.Location = "" }, "location", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			violations := rec.Validate()
			if got := hasViolation(violations, tt.field); got != tt.wantErr {
				t.Errorf("violation = %v, want %v (all: %v)", got, tt.wantErr, violations)
			}
		})
	}
}

func TestValidate_Timestamp(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"2024-12-08T08:15:00Z", false},
		{"2024-12-08T08:15:00+01:00", false},
		{"2024-12-08T08:15:00", false}, // no zone, still a valid instant
		{"08/12/2024", true},
		{"not-a-time", true},
		{"", true},
	}

	for _, tt := range tests {
		rec := validRecord()
		rec.Timestamp = tt.value

		violations := rec.Validate()
		if got := hasViolation(violations, "timestamp"); got != tt.wantErr {
			t.Errorf("timestamp %q: violation = %v, want %v", tt.value, got, tt.wantErr)
		}
	}
}

func TestValidate_EnumeratesAllViolations(t *testing.T) {
	rec := TransactionRecord{
		TransactionID: "",
		Amount:        -1,
		Merchant:      "",
		Category:      "retail",
		Location:      "Test City",
		Timestamp:     "garbage",
		CardLastFour:  "12",
	}

	violations := rec.Validate()

	for _, field := range []string{"transaction_id", "amount", "merchant", "timestamp", "card_last_four"} {
		if !hasViolation(violations, field) {
			t.Errorf("missing violation for %s (got %v)", field, violations)
		}
	}
	if hasViolation(violations, "category") || hasViolation(violations, "location") {
		t.Errorf("unexpected violation for valid field (got %v)", violations)
	}
}

func hasViolation(violations []string, field string) bool {
	for _, v := range violations {
		if strings.HasPrefix(v, field+":") {
			return true
		}
	}
	return false
}
