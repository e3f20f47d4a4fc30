// Package validate classifies a document against the shared field-rule
// table in strict presence-plus-format mode. Where the extractor tolerates
// a messy value and falls back, this package reports it: a sloppy date
// still indexes, but does not pass the gate.
package validate

import (
	"fmt"
	"time"

	"artcat/internal/extract"
)

// Engine checks one document at a time. All checks run; every violation is
// collected rather than short-circuiting on the first.
type Engine struct {
	rules []extract.Rule
}

// New creates an engine over the shared rule table.
func New() *Engine {
	return &Engine{rules: extract.Rules()}
}

// Check returns one human-readable violation per failed check, in rule-table
// order. An empty result means the document is well-formed.
func (e *Engine) Check(text string) []string {
	fields := extract.Extract(text)

	var violations []string

	for _, r := range e.rules {
		if r.Field == extract.FieldTitle {
			violations = append(violations, e.checkLink(fields, r)...)

			continue
		}

		raw, ok := fields[r.Field]
		if !ok {
			violations = append(violations, "missing "+r.Label)

			continue
		}

		switch r.Field {
		case extract.FieldPubDate, extract.FieldAddedOn:
			if !validDate(raw, r) {
				violations = append(violations, fmt.Sprintf("invalid date format %q in %s: expected %s", raw, r.Label, r.Hint))
			}
		case extract.FieldTags:
			if !r.Format.MatchString(raw) {
				violations = append(violations, fmt.Sprintf("invalid tags format %q: expected %s", raw, r.Hint))
			}
		}
	}

	return violations
}

// checkLink covers the title/url rule: the heading must exist and the link
// target must carry an http scheme.
func (e *Engine) checkLink(fields extract.Fields, r extract.Rule) []string {
	if !fields.Has(extract.FieldTitle) || !fields.Has(extract.FieldURL) {
		return []string{"missing " + r.Label}
	}

	if url := fields[extract.FieldURL]; !extract.URLFormat.MatchString(url) {
		return []string{fmt.Sprintf("invalid URL %q: expected an http(s) link", url)}
	}

	return nil
}

// validDate requires the exact YYYY-MM-DD shape and a real calendar date.
func validDate(raw string, r extract.Rule) bool {
	if !r.Format.MatchString(raw) {
		return false
	}

	_, err := time.Parse("2006-01-02", raw)

	return err == nil
}
