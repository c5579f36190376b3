// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches runs of whitespace (for replacement with underscores).
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Matches characters outside the stat id alphabet.
	nonStatCharRe = regexp.MustCompile(`[^a-z0-9_]`)
	// Matches multiple consecutive underscores.
	multiUnderscoreRe = regexp.MustCompile(`_+`)
)

// StatSlug derives a stat id from a display label. The slug is the stat's
// identity; admins may override it, but when they don't, this is the default.
//
// Rules:
//  1. Trim whitespace and lowercase
//  2. Replace whitespace runs with underscores
//  3. Drop anything outside [a-z0-9_]
//  4. Collapse consecutive underscores
//  5. Trim leading/trailing underscores
//
// Examples:
//
//	"Active Personnel" → "active_personnel"
//	"  Cyber   Warfare " → "cyber_warfare"
//	"Unit Cost ($)"    → "unit_cost"
func StatSlug(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = whitespaceRe.ReplaceAllString(s, "_")
	s = nonStatCharRe.ReplaceAllString(s, "")
	s = multiUnderscoreRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
