package catalog

import "strings"

// AbsoluteURL rewrites a vendor-relative reference against the vendor's base
// origin. Already-absolute references pass through untouched.
func AbsoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}
