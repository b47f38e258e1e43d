package domain

import "strings"

// DomainMapping is one rewrite rule of the mapping table.
//
// The table is an ordered sequence: position is precedence, and the first
// enabled rule whose InternalPrefix matches wins.
type DomainMapping struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned at creation and never reused.
	ID string `json:"id"`

	// ─────────────────────────────
	// Rewrite rule
	// ─────────────────────────────

	// InternalPrefix is matched against the start of an internal URL.
	// Example: http://files.local
	InternalPrefix string `json:"internalDomain"`

	// ExternalPrefix replaces InternalPrefix in the converted URL.
	// Example: https://pub.example.com
	ExternalPrefix string `json:"externalDomain"`

	// Enabled rules take part in conversion; disabled ones are kept but skipped.
	Enabled bool `json:"enabled"`
}

// NormalizePrefixes trims both prefixes and reports ErrEmptyPrefix when either
// is empty afterwards.
func NormalizePrefixes(internal, external string) (string, string, error) {
	internal = strings.TrimSpace(internal)
	external = strings.TrimSpace(external)
	if internal == "" || external == "" {
		return "", "", ErrEmptyPrefix
	}
	return internal, external, nil
}

// Convert rewrites internalURL with the first enabled mapping whose
// InternalPrefix is a case-sensitive prefix of it. The second return value
// reports whether a mapping matched; when none does the URL is returned as is.
//
// No "best" (longest) match is attempted: stored order is the only tie-break.
func Convert(mappings []DomainMapping, internalURL string) (string, bool) {
	for _, m := range mappings {
		if !m.Enabled || m.InternalPrefix == "" {
			continue
		}
		if strings.HasPrefix(internalURL, m.InternalPrefix) {
			return m.ExternalPrefix + internalURL[len(m.InternalPrefix):], true
		}
	}
	return internalURL, false
}

// HasAvailable reports whether at least one mapping is enabled.
func HasAvailable(mappings []DomainMapping) bool {
	for _, m := range mappings {
		if m.Enabled {
			return true
		}
	}
	return false
}

// HasMatching reports whether some enabled mapping's InternalPrefix is a prefix
// of origin. Hosts use it to decide whether to activate on the current page.
func HasMatching(mappings []DomainMapping, origin string) bool {
	_, ok := Convert(mappings, origin)
	return ok
}

// DownloadURL builds the file-browser download link for an item href.
// Example: ("http://files.local", "/a/b.txt") -> "http://files.local/d/a/b.txt"
func DownloadURL(origin, href string) string {
	origin = strings.TrimRight(origin, "/")
	if href == "" {
		return origin
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return origin + "/d" + href
}
