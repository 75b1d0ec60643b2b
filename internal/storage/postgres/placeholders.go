package postgres

import (
	"strconv"
	"strings"
)

// inPlaceholders строит список "$n,$n+1,..." для IN-выражения и аргументы к нему.
func inPlaceholders(start int, values []string) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(values))
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
		args = append(args, v)
	}
	return b.String(), args
}

// uniqueStrings убирает повторы, сохраняя порядок первого появления.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
