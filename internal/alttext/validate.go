package alttext

import "unicode/utf8"

// Alt text length thresholds, in characters.
const (
	minAltLength = 10
	maxAltLength = 125

	// scoreDivisor scales length into a quality score: 50 characters or
	// more earns the full 1.0.
	scoreDivisor = 50
)

// QualityReport is the payload returned by validate_alt_text_quality.
type QualityReport struct {
	AltText      string   `json:"alt_text"`
	Length       int      `json:"length"`
	QualityScore float64  `json:"quality_score"`
	Issues       []string `json:"issues"`
	Suggestions  []string `json:"suggestions"`
}

// ValidateAltTextQuality scores altText deterministically: quality is
// min(1.0, length/50) for non-empty text and 0.0 otherwise, with issues
// flagged for missing, too-brief (<10), and overlong (>125) text.
func ValidateAltTextQuality(altText string) *QualityReport {
	length := utf8.RuneCountInString(altText)

	report := &QualityReport{
		AltText:     altText,
		Length:      length,
		Issues:      []string{},
		Suggestions: []string{},
	}

	if altText != "" {
		report.QualityScore = float64(length) / scoreDivisor
		if report.QualityScore > 1.0 {
			report.QualityScore = 1.0
		}
	}

	switch {
	case altText == "":
		report.Issues = append(report.Issues, "Missing alt text")
		report.Suggestions = append(report.Suggestions, "Add descriptive alt text")
	case length < minAltLength:
		report.Issues = append(report.Issues, "Alt text too brief")
		report.Suggestions = append(report.Suggestions, "Provide more descriptive detail")
	case length > maxAltLength:
		report.Issues = append(report.Issues, "Alt text may be too long")
		report.Suggestions = append(report.Suggestions, "Consider condensing to essential information")
	}

	return report
}
