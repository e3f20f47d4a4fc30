// Package extract applies a fixed table of field-matching rules to raw
// article text. The same rule table drives two interpreters: the tolerant
// extractor in this package and the strict checker in internal/validate.
package extract

import (
	"regexp"
	"strings"
)

// Field identifies one extractable metadata field.
type Field string

// Known fields, in rule-table order.
const (
	FieldTitle       Field = "title"
	FieldURL         Field = "url"
	FieldAuthor      Field = "author"
	FieldPubDate     Field = "pubDate"
	FieldAddedBy     Field = "addedBy"
	FieldAddedOn     Field = "addedOn"
	FieldTags        Field = "tags"
	FieldSummary     Field = "summary"
	FieldKeyInsights Field = "keyInsights"
)

// Rule pairs a field with its tolerant matcher and, where the field has a
// canonical shape, a strict format pattern used only during validation.
type Rule struct {
	Field   Field
	Label   string         // human-readable name for validation messages
	Pattern *regexp.Regexp // capture group 1 is the raw value
	Format  *regexp.Regexp // optional strict format for the raw value
	Hint    string         // expected shape, quoted in format violations
}

var (
	// headingLinkPattern matches a heading line carrying a [label](target)
	// link. Group 1 is the label, group 2 the target.
	headingLinkPattern = regexp.MustCompile(`(?m)^#{1,6}[^\n]*?\[([^\]\n]+)\]\(([^)\n]+)\)`)

	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	tagsLinePattern = regexp.MustCompile(`^#\S+([ \t]+#\S+)*$`)

	// Block rules: everything between the opening label/heading and the next
	// heading, the following section's label, or end of document.
	summaryPattern     = regexp.MustCompile(`(?ms)^(?:#{1,6}[ \t]*Summary[^\n]*|\*\*Summary:?\*\*[ \t]*)\n(.*?)(?:^#{1,6}[ \t]|\*\*Key Insights|\z)`)
	keyInsightsPattern = regexp.MustCompile(`(?ms)^(?:#{1,6}[ \t]*Key Insights[^\n]*|\*\*Key Insights:?\*\*[ \t]*)\n(.*?)(?:^#{1,6}[ \t]|\*\*Tags:|\z)`)

	// URLFormat is the scheme check applied to the extracted link target
	// during validation.
	URLFormat = regexp.MustCompile(`^https?://`)
)

// labeled builds the matcher for a `**Label:** value` line.
func labeled(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\*\*` + regexp.QuoteMeta(label) + `:\*\*[ \t]*(.*)$`)
}

// rules is the shared field-rule table. Rules are independent of each other;
// order only decides the order validation messages come out in.
var rules = []Rule{
	{Field: FieldTitle, Label: "article link heading", Pattern: headingLinkPattern},
	{Field: FieldAuthor, Label: "author line", Pattern: labeled("Author")},
	{Field: FieldPubDate, Label: "date line", Pattern: labeled("Date"), Format: datePattern, Hint: "YYYY-MM-DD"},
	{Field: FieldAddedBy, Label: "added-by line", Pattern: labeled("Added by")},
	{Field: FieldAddedOn, Label: "added-on line", Pattern: labeled("Added on"), Format: datePattern, Hint: "YYYY-MM-DD"},
	{Field: FieldTags, Label: "tags line", Pattern: labeled("Tags"), Format: tagsLinePattern, Hint: "space-separated #tags"},
	{Field: FieldSummary, Label: "summary section", Pattern: summaryPattern},
	{Field: FieldKeyInsights, Label: "key insights section", Pattern: keyInsightsPattern},
}

// Rules returns the shared rule table.
func Rules() []Rule {
	return rules
}

// Fields is the partial mapping produced by one extraction pass. A rule that
// did not match contributes no entry; values are never empty strings.
type Fields map[Field]string

// Has reports whether a field was extracted.
func (f Fields) Has(field Field) bool {
	_, ok := f[field]

	return ok
}

// Extract runs every rule against the document text and collects the raw
// values of the rules that matched.
func Extract(text string) Fields {
	fields := make(Fields)

	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		if r.Field == FieldTitle {
			// The link rule yields two fields from one match.
			if title := strings.TrimSpace(m[1]); title != "" {
				fields[FieldTitle] = title
			}

			if url := strings.TrimSpace(m[2]); url != "" {
				fields[FieldURL] = url
			}

			continue
		}

		if val := strings.TrimSpace(m[1]); val != "" {
			fields[r.Field] = val
		}
	}

	return fields
}

// ParseTags splits a raw tags value on '#' into trimmed tokens, dropping
// empty ones. Freeform text without '#' yields no tags; the stricter line
// grammar in Rule.Format is enforced separately by validation.
func ParseTags(raw string) []string {
	tags := []string{}

	// Everything before the first '#' is not a tag token.
	segs := strings.Split(raw, "#")
	for _, tok := range segs[1:] {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tags = append(tags, tok)
		}
	}

	return tags
}
