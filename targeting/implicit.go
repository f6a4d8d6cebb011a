package targeting

import "github.com/feature-mesh/targeting/expr"

// evalImplicit evaluates each feature's rule in config order, emitting
// the feature name on Ok(true) and skipping it on Ok(false) or any
// error — a rule whose inputs are missing is treated as not-matching
// rather than a hard failure.
func evalImplicit(ctx *expr.Context, features []Feature) []string {
	var out []string
	for _, f := range features {
		matched, err := f.Rule.Eval(ctx)
		if err != nil || !matched {
			continue
		}
		out = append(out, f.Name)
	}
	return out
}
