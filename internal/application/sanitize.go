package application

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup from user-supplied free text.
var textPolicy = bluemonday.StrictPolicy()

const maxSanitizePasses = 5

// sanitizeText returns plain text with no markup, including markup hidden
// behind one or more layers of entity encoding.
func sanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		clean := html.UnescapeString(textPolicy.Sanitize(html.UnescapeString(s)))
		if clean == s {
			return strings.TrimSpace(clean)
		}
		s = clean
	}
	// Still changing: keep the policy's escaped output.
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeText(*s)
	return &clean
}
