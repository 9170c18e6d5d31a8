package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// EntregaSortFields contains allowed sort fields for deliveries
var EntregaSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"numero_entrega": true,
	"fecha_entrega":  true,
	"sede_id":        true,
	"estado":         true,
	"monto":          true,
	"monto_efectivo": true,
}
