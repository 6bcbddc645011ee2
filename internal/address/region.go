// Package address reduces free-text Korean addresses to their top-level
// administrative region.
package address

import "strings"

// Suffixes of top-level administrative divisions, checked in priority order.
// endsWith is non-exclusive: "특별자치도" also ends with "도", so any match
// wins and the token is returned unchanged either way.
var provinceSuffixes = []string{"특별시", "광역시", "도", "특별자치도", "특별자치시"}

// citySuffixes covers self-governing cities and counties that appear without
// a parent province.
var citySuffixes = []string{"시", "군"}

// Region extracts the top-level administrative region from a full address,
// e.g. "서울특별시 강남구 테헤란로 123" -> "서울특별시". Blank input yields
// an empty string. Unrecognized patterns fall back to the first token.
func Region(fullAddress string) string {
	trimmed := strings.TrimSpace(fullAddress)
	if trimmed == "" {
		return ""
	}

	first := strings.Fields(trimmed)[0]

	for _, suffix := range provinceSuffixes {
		if strings.HasSuffix(first, suffix) {
			return first
		}
	}
	for _, suffix := range citySuffixes {
		if strings.HasSuffix(first, suffix) {
			return first
		}
	}
	return first
}
