// Package patch rewrites marked sections of the index document. The rewrite
// is a pure function over the full document text; callers perform the actual
// write in one atomic step so a missing marker never leaves a partial
// document behind.
package patch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMarkerNotFound means the index document lost one of its section
// markers. This is index corruption, not an authoring mistake, and aborts
// the regeneration run.
var ErrMarkerNotFound = errors.New("section marker not found")

// Section pairs a marker label with its freshly rendered block. The block
// must begin with the marker line; that is what makes re-application a
// no-op.
type Section struct {
	Marker string
	Block  string
}

// Apply replaces every section in order and returns the rewritten document.
// On any error the original document must be left untouched by the caller.
func Apply(doc string, sections []Section) (string, error) {
	out := doc

	for _, s := range sections {
		var err error

		out, err = ReplaceSection(out, s.Marker, s.Block)
		if err != nil {
			return "", err
		}
	}

	return out, nil
}

// ReplaceSection swaps the section starting at the marker line for the
// rendered block. The section extends to the line before the next top-level
// (`#` or `##`) heading, or to end of document; deeper headings inside the
// block do not terminate it. A blank line is kept between the block and the
// following heading.
func ReplaceSection(doc, marker, block string) (string, error) {
	lines := strings.Split(doc, "\n")

	start := -1

	for i, line := range lines {
		if strings.TrimSpace(line) == marker {
			start = i

			break
		}
	}

	if start == -1 {
		return "", fmt.Errorf("%w: %q", ErrMarkerNotFound, marker)
	}

	end := len(lines)

	for j := start + 1; j < len(lines); j++ {
		if isTopHeading(lines[j]) {
			end = j

			break
		}
	}

	replacement := strings.Split(strings.TrimRight(block, "\n"), "\n")
	replacement = append(replacement, "")

	rewritten := make([]string, 0, len(lines)-(end-start)+len(replacement))
	rewritten = append(rewritten, lines[:start]...)
	rewritten = append(rewritten, replacement...)
	rewritten = append(rewritten, lines[end:]...)

	return strings.Join(rewritten, "\n"), nil
}

func isTopHeading(line string) bool {
	return strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ")
}
