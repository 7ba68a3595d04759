package matcher

import (
	"regexp"
	"strings"
)

// Booking identifiers show up in ledger exports in three forms, checked in
// priority order: an explicit "FH-" code, a "#"-prefixed number, or a bare
// digit run long enough to be a booking ID rather than an amount or date.
var (
	fhCodePattern  = regexp.MustCompile(`FH-(\d+)`)
	hashIDPattern  = regexp.MustCompile(`#(\d+)`)
	bareIDPattern  = regexp.MustCompile(`\d{8,}`)
	nonAlphanumRE  = regexp.MustCompile(`[^a-z0-9]+`)
	nonNumericOnly = regexp.MustCompile(`\D`)
)

// ExtractBookingID searches free text (memo, description, line text) for a
// booking identifier and returns its numeric form. The second return value
// distinguishes "nothing found" from a legitimately empty match; absence is
// a normal outcome, not an error.
func ExtractBookingID(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	if m := fhCodePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	if m := hashIDPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	if m := bareIDPattern.FindString(text); m != "" {
		return m, true
	}

	return "", false
}

// NormalizeID reduces a loosely formatted identifier ("#290981542",
// "FH-290981542", " 290981542 ") to its canonical numeric-only form.
// Two identifiers match iff their normalized forms are equal strings.
func NormalizeID(id string) string {
	return nonNumericOnly.ReplaceAllString(strings.TrimSpace(id), "")
}
