package matcher

import "strings"

// CatalogItem is one entry of the accounting-system item catalog. The core
// never owns or mutates the catalog; it only matches against it.
type CatalogItem struct {
	ID   string
	Name string
}

// Canonical fee categories. Raw fee names from the booking platform are
// free text ("BC Park Fee (WBF)", "Fuel/Field Surcharge", ...) and fold
// into this fixed vocabulary for aggregation.
const (
	FeeStewardship  = "stewardship fee"
	FeeFuelSurcharg = "fuel surcharge"
	FeeBCPark       = "bc park fee"
)

// NormalizeName lowers a name and strips everything that is not a letter or
// digit, so "BC Park Fee (WBF)" and "bc park fee wbf" compare equal.
func NormalizeName(name string) string {
	return nonAlphanumRE.ReplaceAllString(strings.ToLower(name), "")
}

// CanonicalFeeName folds a raw fee name into one of the fixed categories by
// case-insensitive substring test, in priority order. Names outside the
// vocabulary degrade to their own normalized slug so distinct fees stay
// distinct. Total function, no error case.
func CanonicalFeeName(raw string) string {
	lower := strings.ToLower(raw)

	switch {
	case strings.Contains(lower, "stewardship"):
		return FeeStewardship
	case strings.Contains(lower, "fuel") || strings.Contains(lower, "field surcharge"):
		return FeeFuelSurcharg
	case strings.Contains(lower, "bc park"):
		return FeeBCPark
	default:
		return NormalizeName(raw)
	}
}

// MatchCatalogItem returns the first catalog item whose normalized name
// contains, or is contained by, the normalized input name. Returns nil when
// nothing qualifies; callers substitute their fallback item instead of
// dropping the line. The catalog list's order is the tie-break, so callers
// must pass it in a stable, documented order.
func MatchCatalogItem(name string, catalog []CatalogItem) *CatalogItem {
	target := NormalizeName(name)
	if target == "" {
		return nil
	}

	for i := range catalog {
		candidate := NormalizeName(catalog[i].Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(target, candidate) || strings.Contains(candidate, target) {
			return &catalog[i]
		}
	}

	return nil
}
