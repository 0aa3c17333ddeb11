package utils

import (
	"regexp"
	"strings"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`(?i)mobile|iphone|ipod|android|blackberry|opera mini|windows\sce|palm|smartphone|iemobile`)
)

// DeviceType classifies a User-Agent as Desktop, Mobile or Tablet. Tablets
// are checked first because their agents also match the mobile pattern.
func DeviceType(userAgent string) string {
	if tabletPattern.MatchString(userAgent) {
		return "Tablet"
	}
	if mobilePattern.MatchString(userAgent) {
		return "Mobile"
	}
	return "Desktop"
}

// BrowserName picks the browser family out of a User-Agent string. Edge and
// Opera ship "Chrome" in their agents, so they are matched first.
func BrowserName(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Edg"):
		return "Edge"
	case strings.Contains(userAgent, "OPR"), strings.Contains(userAgent, "Opera"):
		return "Opera"
	case strings.Contains(userAgent, "Chrome"):
		return "Chrome"
	case strings.Contains(userAgent, "Firefox"):
		return "Firefox"
	case strings.Contains(userAgent, "Safari"):
		return "Safari"
	default:
		return "Unknown"
	}
}
