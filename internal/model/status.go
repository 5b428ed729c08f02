package model

import "strings"

// DisplayVariant is the badge category a status renders as.
type DisplayVariant string

const (
	VariantInfo    DisplayVariant = "info"
	VariantSuccess DisplayVariant = "success"
	VariantDanger  DisplayVariant = "danger"
	VariantWarning DisplayVariant = "warning"
	VariantDefault DisplayVariant = "default"
)

// StatusVariant maps a status string to its display category. Matching
// is case-insensitive and unknown statuses fall back to the default
// category.
func StatusVariant(status string) DisplayVariant {
	switch strings.ToLower(status) {
	case "scheduled":
		return VariantInfo
	case "confirmed", "completed", "active":
		return VariantSuccess
	case "cancelled":
		return VariantDanger
	case "no-show", "pending":
		return VariantWarning
	case "inactive":
		return VariantDefault
	default:
		return VariantDefault
	}
}
