package k8s

import "slices"

// UniqueLabelValues collects the distinct, non-empty values of the label key across items
// and returns them sorted ascending. Items without the label contribute nothing.
func UniqueLabelValues[T any](items []T, key string, labelsOf func(T) map[string]string) []string {
	seen := make(map[string]struct{}, len(items))
	values := make([]string, 0, len(items))

	for _, item := range items {
		value, ok := labelsOf(item)[key]
		if !ok || value == "" {
			continue
		}

		if _, dup := seen[value]; dup {
			continue
		}

		seen[value] = struct{}{}
		values = append(values, value)
	}

	slices.Sort(values)

	return values
}
