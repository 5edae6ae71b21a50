// Package compare aligns predicted and ground-truth tables and scores
// the predicted cluster labels against the truth labels.
package compare

import (
	"regexp"
	"strings"
)

// clusterPrefix matches decorative label prefixes like "Cluster 3:" or
// "Profile 0 -" that some exports prepend to the profile name.
var clusterPrefix = regexp.MustCompile(`^(cluster|profile)\s*\d+\s*[:\-]?\s*`)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeLabel canonicalizes a cluster label for comparison:
// lowercase, trimmed, decorative numbering prefix stripped, and interior
// whitespace collapsed. Normalizing an already normalized label returns
// it unchanged.
func NormalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	// Strip to a fixed point so stacked prefixes cannot survive one pass.
	for {
		stripped := clusterPrefix.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
