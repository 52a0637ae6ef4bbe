// Package scan runs the PII detector battery over extracted page text.
package scan

import (
	"regexp"
	"unicode/utf8"
)

// Detection is a single match found on a page. Index is the character
// offset of the match within that page's extracted text.
type Detection struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Value string `json:"value"`
	Page  int    `json:"page"`
	Index int    `json:"index"`
}

// Summary is a per-type count histogram over a document's detections.
type Summary map[string]int

// Detector pairs a PII category with its pattern.
type Detector struct {
	Type  string
	Label string
	re    *regexp.Regexp
}

// The battery is fixed and non-exclusive: every detector runs over every
// page, and the same substring may match more than one category. That
// overlap is kept on purpose as a signal of elevated risk.
var detectors = []Detector{
	{"ssn", "Social Security number", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"ssn9", "Social Security number (no dashes)", regexp.MustCompile(`\b\d{9}\b`)},
	{"phone", "Phone number", regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`)},
	{"email", "Email address", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"dob", "Date of birth phrase", regexp.MustCompile(`(?i)\b(?:date\s+of\s+birth|d\.o\.b\.?|dob|born\s+on)\b[\s:]*(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4})?`)},
	{"date", "Date", regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)},
	{"credit-card", "Credit card number", regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`)},
	{"amex", "American Express card number", regexp.MustCompile(`\b3[47]\d{2}[-\s]?\d{6}[-\s]?\d{5}\b`)},
}

// Detectors returns the fixed battery in execution order.
func Detectors() []Detector {
	return detectors
}

// ScanPage runs every detector over one page's text. page is 1-based.
func ScanPage(text string, page int) []Detection {
	var found []Detection
	for _, d := range detectors {
		for _, loc := range d.re.FindAllStringIndex(text, -1) {
			found = append(found, Detection{
				Type:  d.Type,
				Label: d.Label,
				Value: text[loc[0]:loc[1]],
				Page:  page,
				Index: utf8.RuneCountInString(text[:loc[0]]),
			})
		}
	}
	return found
}

// ScanPages scans each page in order and aggregates the count histogram.
// Pages without a text layer are empty strings and contribute nothing.
func ScanPages(pages []string) ([]Detection, Summary) {
	var all []Detection
	summary := make(Summary)
	for i, text := range pages {
		if text == "" {
			continue
		}
		for _, det := range ScanPage(text, i+1) {
			all = append(all, det)
			summary[det.Type]++
		}
	}
	return all, summary
}
