package registry

import (
	"sort"
	"strconv"
	"strings"
)

// ParseSelection resolves an operator selection expression against an
// n-entry listing displayed with 1-based numbering. "all" selects every
// entry; otherwise the expression is a comma-separated mix of single
// indices ("3") and inclusive ranges ("2-5"). Unparsable or out-of-range
// tokens are silently skipped. The result is 0-based, sorted, deduplicated.
func ParseSelection(expr string, n int) []int {
	expr = strings.TrimSpace(expr)
	if expr == "" || n <= 0 {
		return nil
	}

	if strings.EqualFold(expr, "all") {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	picked := make(map[int]bool)
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if a, b, ok := strings.Cut(token, "-"); ok {
			lo, err1 := strconv.Atoi(strings.TrimSpace(a))
			hi, err2 := strconv.Atoi(strings.TrimSpace(b))
			if err1 != nil || err2 != nil || lo > hi {
				continue
			}
			for i := lo; i <= hi; i++ {
				if i >= 1 && i <= n {
					picked[i-1] = true
				}
			}
			continue
		}

		i, err := strconv.Atoi(token)
		if err != nil || i < 1 || i > n {
			continue
		}
		picked[i-1] = true
	}

	if len(picked) == 0 {
		return nil
	}

	out := make([]int, 0, len(picked))
	for i := range picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
