package model

import "golang.org/x/text/unicode/norm"

// NormalizeName returns s in Unicode NFC form.
// Usernames and category names are compared and stored normalized, so
// composed and decomposed spellings of the same name collide.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}
