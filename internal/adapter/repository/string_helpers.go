package repository

import (
	"strings"

	"github.com/eslsoft/lingodeck/internal/entity"
)

// normalizeStatuses lowercases, validates and de-duplicates status filters.
func normalizeStatuses(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(in))
	result := make([]string, 0, len(in))
	for _, item := range in {
		status, err := entity.ParseStatus(item)
		if err != nil {
			return nil, err
		}
		if _, exists := seen[string(status)]; exists {
			continue
		}
		seen[string(status)] = struct{}{}
		result = append(result, string(status))
	}
	return result, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
