package targeting

import (
	"sort"

	"github.com/feature-mesh/targeting/expr"
)

// evalExplicit evaluates each StrList expression in order, silently
// discarding failures, and returns the concatenated successful results
// sorted lexicographically. Stability is not required since the output
// assembler collapses duplicates downstream.
func evalExplicit(ctx *expr.Context, exprs []expr.StrListExpr) []string {
	var out []string
	for _, e := range exprs {
		vals, err := e.Eval(ctx)
		if err != nil {
			continue
		}
		out = append(out, vals...)
	}
	sort.Strings(out)
	return out
}
