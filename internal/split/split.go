// Package split partitions ordered record sequences into size-bounded
// groups. Both strategies are pure: groups depend only on the input ordering
// and the configured budgets, never on wall time or parallelism.
package split

// Measure is the cost of one record in both budget dimensions.
type Measure struct {
	Bytes  int
	Tokens int
}

// Budget caps a single output group. A zero limit disables that dimension.
type Budget struct {
	MaxBytes  int
	MaxTokens int
}

// Greedy walks items 0..n-1 in order, accumulating them into the current
// group; when adding an item would push either running total over its
// budget, the current group is closed and a new one started with that item.
//
// Returns the groups as index slices, plus the indices of items whose own
// measure already exceeds a budget. Such an item still occupies a group of
// its own (data loss is worse than a budget overrun), but callers should
// surface it in the run summary.
//
// Invariants: every index appears in exactly one group; no group is empty;
// groups preserve input order.
func Greedy(n int, budget Budget, measure func(int) Measure) (groups [][]int, oversize []int) {
	var cur []int
	var curBytes, curTokens int

	for i := 0; i < n; i++ {
		m := measure(i)
		if len(cur) > 0 && (over(curBytes+m.Bytes, budget.MaxBytes) || over(curTokens+m.Tokens, budget.MaxTokens)) {
			groups = append(groups, cur)
			cur = nil
			curBytes, curTokens = 0, 0
		}
		if over(m.Bytes, budget.MaxBytes) || over(m.Tokens, budget.MaxTokens) {
			oversize = append(oversize, i)
		}
		cur = append(cur, i)
		curBytes += m.Bytes
		curTokens += m.Tokens
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups, oversize
}

func over(v, max int) bool {
	return max > 0 && v > max
}
