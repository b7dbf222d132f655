package analysis

import (
	"reflect"
	"testing"
)

func TestParse_WellFormedReply(t *testing.T) {
	raw := "RISK_LEVEL: high\nCONFIDENCE: medium\nREASONING: large amount.\nRED_FLAGS: unusual location, odd hour\nRECOMMENDATIONS: flag for review"

	got := Parse(raw)

	if got.RiskLevel != "high" {
		t.Errorf("RiskLevel = %q, want %q", got.RiskLevel, "high")
	}
	if got.Confidence != "medium" {
		t.Errorf("Confidence = %q, want %q", got.Confidence, "medium")
	}
	if got.Reasoning != "large amount." {
		t.Errorf("Reasoning = %q, want %q", got.Reasoning, "large amount.")
	}
	wantFlags := []string{"unusual location", "odd hour"}
	if !reflect.DeepEqual(got.RedFlags, wantFlags) {
		t.Errorf("RedFlags = %v, want %v", got.RedFlags, wantFlags)
	}
	if got.Recommendations != "flag for review" {
		t.Errorf("Recommendations = %q, want %q", got.Recommendations, "flag for review")
	}
}

func TestParse_UnstructuredReplyYieldsDefaults(t *testing.T) {
	for _, raw := range []string{
		"",
		"The transaction looks fine to me, nothing to report.",
		"I'm sorry, I can't help with that.",
	} {
		got := Parse(raw)

		if got.RiskLevel != UnknownValue {
			t.Errorf("Parse(%q).RiskLevel = %q, want %q", raw, got.RiskLevel, UnknownValue)
		}
		if got.Confidence != UnknownValue {
			t.Errorf("Parse(%q).Confidence = %q, want %q", raw, got.Confidence, UnknownValue)
		}
		if got.Reasoning != "" {
			t.Errorf("Parse(%q).Reasoning = %q, want empty", raw, got.Reasoning)
		}
		if len(got.RedFlags) != 0 || got.RedFlags == nil {
			t.Errorf("Parse(%q).RedFlags = %v, want empty non-nil list", raw, got.RedFlags)
		}
		if got.Recommendations != "" {
			t.Errorf("Parse(%q).Recommendations = %q, want empty", raw, got.Recommendations)
		}
	}
}

func TestParse_RedFlags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "literal none",
			raw:  "RED_FLAGS: none",
			want: []string{},
		},
		{
			name: "none case-insensitive with whitespace",
			raw:  "RED_FLAGS:   NONE  ",
			want: []string{},
		},
		{
			name: "order preserved",
			raw:  "RED_FLAGS: c, a, b",
			want: []string{"c", "a", "b"},
		},
		{
			name: "empty segments dropped",
			raw:  "RED_FLAGS: one,, two, ,three",
			want: []string{"one", "two", "three"},
		},
		{
			name: "stops at recommendations",
			raw:  "RED_FLAGS: late night\nRECOMMENDATIONS: review",
			want: []string{"late night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if !reflect.DeepEqual(got.RedFlags, tt.want) {
				t.Errorf("RedFlags = %v, want %v", got.RedFlags, tt.want)
			}
		})
	}
}

func TestParse_CaseInsensitiveLabelsAndTokens(t *testing.T) {
	raw := "risk_level: HIGH\nconfidence: Low\nreasoning: suspicious.\nred_flags: none\nrecommendations: block"

	got := Parse(raw)

	if got.RiskLevel != "high" {
		t.Errorf("RiskLevel = %q, want lowercased %q", got.RiskLevel, "high")
	}
	if got.Confidence != "low" {
		t.Errorf("Confidence = %q, want lowercased %q", got.Confidence, "low")
	}
	if got.Reasoning != "suspicious." {
		t.Errorf("Reasoning = %q, want %q", got.Reasoning, "suspicious.")
	}
}

func TestParse_PreambleBeforeLabels(t *testing.T) {
	raw := "Sure, here is my assessment of the transaction.\n\nRISK_LEVEL: low\nCONFIDENCE: high\nREASONING: nothing unusual.\nRED_FLAGS: none\nRECOMMENDATIONS: approve"

	got := Parse(raw)

	if got.RiskLevel != "low" || got.Confidence != "high" {
		t.Errorf("preamble broke extraction: got risk=%q confidence=%q", got.RiskLevel, got.Confidence)
	}
	if got.Recommendations != "approve" {
		t.Errorf("Recommendations = %q, want %q", got.Recommendations, "approve")
	}
}

func TestParse_MultilineReasoning(t *testing.T) {
	raw := "RISK_LEVEL: medium\nCONFIDENCE: medium\nREASONING: The amount is high for the category.\nIt also happened at an odd hour.\nRED_FLAGS: odd hour\nRECOMMENDATIONS: verify with cardholder"

	got := Parse(raw)

	want := "The amount is high for the category.\nIt also happened at an odd hour."
	if got.Reasoning != want {
		t.Errorf("Reasoning = %q, want %q", got.Reasoning, want)
	}
}

func TestParse_MissingFieldsDoNotBlockOthers(t *testing.T) {
	raw := "CONFIDENCE: high\nRECOMMENDATIONS: escalate"

	got := Parse(raw)

	if got.RiskLevel != UnknownValue {
		t.Errorf("RiskLevel = %q, want %q", got.RiskLevel, UnknownValue)
	}
	if got.Confidence != "high" {
		t.Errorf("Confidence = %q, want %q", got.Confidence, "high")
	}
	if got.Recommendations != "escalate" {
		t.Errorf("Recommendations = %q, want %q", got.Recommendations, "escalate")
	}
	if len(got.RedFlags) != 0 {
		t.Errorf("RedFlags = %v, want empty", got.RedFlags)
	}
}

// Out-of-order labels degrade gracefully: a section always ends at the
// textually next recognized label, whatever that label is.
func TestParse_OutOfOrderLabels(t *testing.T) {
	raw := "RED_FLAGS: wire transfer, new merchant\nREASONING: pattern matches known fraud.\nRECOMMENDATIONS: block card\nRISK_LEVEL: high\nCONFIDENCE: medium"

	got := Parse(raw)

	wantFlags := []string{"wire transfer", "new merchant"}
	if !reflect.DeepEqual(got.RedFlags, wantFlags) {
		t.Errorf("RedFlags = %v, want %v", got.RedFlags, wantFlags)
	}
	if got.Reasoning != "pattern matches known fraud." {
		t.Errorf("Reasoning = %q, want %q", got.Reasoning, "pattern matches known fraud.")
	}
	if got.Recommendations != "block card" {
		t.Errorf("Recommendations = %q, want %q", got.Recommendations, "block card")
	}
	if got.RiskLevel != "high" || got.Confidence != "medium" {
		t.Errorf("token fields: risk=%q confidence=%q", got.RiskLevel, got.Confidence)
	}
}

func TestParse_RepeatedLabelFirstOccurrenceWins(t *testing.T) {
	raw := "RISK_LEVEL: high\nCONFIDENCE: low\nRISK_LEVEL: low"

	got := Parse(raw)

	if got.RiskLevel != "high" {
		t.Errorf("RiskLevel = %q, want first occurrence %q", got.RiskLevel, "high")
	}
}

func TestParse_OffEnumTokenKeptVerbatim(t *testing.T) {
	// Values outside {low, medium, high} are surfaced as-is; the caller
	// decides what an anomalous token means.
	raw := "RISK_LEVEL: Critical\nCONFIDENCE: moderate"

	got := Parse(raw)

	if got.RiskLevel != "critical" {
		t.Errorf("RiskLevel = %q, want %q", got.RiskLevel, "critical")
	}
	if got.Confidence != "moderate" {
		t.Errorf("Confidence = %q, want %q", got.Confidence, "moderate")
	}
}
