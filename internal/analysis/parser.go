package analysis

import (
	"regexp"
	"strings"
)

// Fields is the raw parsed form of a model reply, before the orchestrator
// attaches the transaction identifier.
type Fields struct {
	RiskLevel       string
	Confidence      string
	Reasoning       string
	RedFlags        []string
	Recommendations string
}

// UnknownValue marks a token field the model reply did not contain. It is
// distinct from anything the model is asked to produce.
const UnknownValue = "unknown"

var (
	riskLevelRe  = regexp.MustCompile(`(?i)RISK_LEVEL:\s*(\w+)`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:\s*(\w+)`)

	// One locator per recognized label, used both to anchor a section and
	// to find the right boundary of the section before it.
	labelLocators = map[string]*regexp.Regexp{
		labelRiskLevel:       regexp.MustCompile(`(?i)RISK_LEVEL:`),
		labelConfidence:      regexp.MustCompile(`(?i)CONFIDENCE:`),
		labelReasoning:       regexp.MustCompile(`(?i)REASONING:`),
		labelRedFlags:        regexp.MustCompile(`(?i)RED_FLAGS:`),
		labelRecommendations: regexp.MustCompile(`(?i)RECOMMENDATIONS:`),
	}
)

// Parse extracts the five analysis fields from a raw model reply. Each
// field is recovered independently, so one missing or malformed field
// never blocks the others, and Parse itself never fails: a reply with no
// recognizable structure yields an all-default result, which callers
// treat as a format-drift signal rather than an error.
func Parse(raw string) Fields {
	fields := Fields{
		RiskLevel:  UnknownValue,
		Confidence: UnknownValue,
		RedFlags:   []string{},
	}

	if m := riskLevelRe.FindStringSubmatch(raw); m != nil {
		fields.RiskLevel = strings.ToLower(m[1])
	}
	if m := confidenceRe.FindStringSubmatch(raw); m != nil {
		fields.Confidence = strings.ToLower(m[1])
	}

	if section, ok := parseSection(raw, labelReasoning); ok {
		fields.Reasoning = section
	}
	if section, ok := parseSection(raw, labelRedFlags); ok {
		fields.RedFlags = splitRedFlags(section)
	}
	if section, ok := parseSection(raw, labelRecommendations); ok {
		fields.Recommendations = section
	}

	return fields
}

// parseSection returns the trimmed text between the first occurrence of
// label and the textually-next recognized label, or end of input. The
// boundary is textual, not semantic: if the model emits labels out of the
// canonical order, a section simply ends at whichever label appears next
// in the text.
func parseSection(raw, label string) (string, bool) {
	loc := labelLocators[label].FindStringIndex(raw)
	if loc == nil {
		return "", false
	}

	start := loc[1]
	end := len(raw)
	for other, locator := range labelLocators {
		if other == label {
			continue
		}
		if m := locator.FindStringIndex(raw[start:]); m != nil && start+m[0] < end {
			end = start + m[0]
		}
	}

	return strings.TrimSpace(raw[start:end]), true
}

// splitRedFlags turns the RED_FLAGS section into an ordered list. The
// literal word "none" means the model found nothing to flag.
func splitRedFlags(section string) []string {
	if strings.EqualFold(strings.TrimSpace(section), "none") {
		return []string{}
	}

	flags := []string{}
	for _, part := range strings.Split(section, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			flags = append(flags, trimmed)
		}
	}
	return flags
}
