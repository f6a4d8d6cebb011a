package targeting

import (
	"github.com/feature-mesh/targeting/expr"
	"github.com/feature-mesh/targeting/request"
)

// Target is the engine's single pure entry point: given a request and
// a configuration, it returns the deterministic, deduplicated,
// space-separated feature token list. It never returns an error — the
// worst case is the empty string.
func Target(req request.Request, cfg *Config) string {
	regexes := cfg.regexes
	if regexes == nil {
		regexes = expr.NewRegexCache()
	}
	ctx := expr.NewContext(req, regexes)
	explicitTokens := evalExplicit(ctx, cfg.Explicit)
	implicitTokens := evalImplicit(ctx, cfg.Implicit)
	return Assemble(explicitTokens, implicitTokens)
}
