package render

import (
	"regexp"
	"strings"
)

var (
	metaTag       = regexp.MustCompile(`(?i)<meta\s[^>]*>`)
	policyEquiv   = regexp.MustCompile(`(?i)\shttp-equiv\s*=\s*"content-security-policy"`)
	contentValue  = regexp.MustCompile(`(?i)\scontent\s*=\s*"[^"]*"`)
	quoteEntities = strings.NewReplacer("&#x27;", "'", "&#39;", "'")
)

// Sanitize restores the single quotes serialization escapes inside the
// content attribute of a Content-Security-Policy meta tag, where CSP
// keywords such as 'self' need them literal. Nothing else is touched.
func Sanitize(html string) string {
	return metaTag.ReplaceAllStringFunc(html, func(tag string) string {
		if !policyEquiv.MatchString(tag) {
			return tag
		}
		return contentValue.ReplaceAllStringFunc(tag, quoteEntities.Replace)
	})
}
