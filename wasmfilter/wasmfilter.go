// Package wasmfilter is a minimal host-shell adapter shaped like the
// two calls a proxy-wasm RootContext/HttpContext implementation would
// make against this module, without depending on any WASM runtime or
// ABI library: on_configure and on_http_request_headers. No proxy-wasm
// Go SDK is wired in here — see DESIGN.md for why.
package wasmfilter

import (
	"fmt"
	"sync"

	"github.com/feature-mesh/targeting/request"
	"github.com/feature-mesh/targeting/targeting"
)

// Filter holds the active Config for one WASM plugin instance. The
// zero value is ready to use and has no active Config; New returns one.
type Filter struct {
	mu  sync.RWMutex
	cfg *targeting.Config
}

// New returns a Filter with no active configuration.
func New() *Filter {
	return &Filter{}
}

// Configure parses and schema-validates raw as a Config and installs
// it atomically, mirroring on_configure. An invalid payload leaves any
// previously active Config in place.
func (f *Filter) Configure(raw []byte) error {
	if errs, err := targeting.ValidateConfigSchema(raw); err != nil {
		return fmt.Errorf("wasmfilter: validating config: %w", err)
	} else if len(errs) > 0 {
		return fmt.Errorf("wasmfilter: config failed schema validation: %s: %s", errs[0].Field, errs[0].Message)
	}
	cfg, err := targeting.ParseConfig(raw)
	if err != nil {
		return fmt.Errorf("wasmfilter: parsing config: %w", err)
	}
	f.mu.Lock()
	f.cfg = cfg
	f.mu.Unlock()
	return nil
}

// HandleRequestHeaders evaluates the active Config against attrs and
// returns the header name and token-list value to attach to the
// request, mirroring on_http_request_headers. If Configure was never
// called successfully, it returns ("", "").
func (f *Filter) HandleRequestHeaders(attrs map[string]string) (headerName, value string) {
	f.mu.RLock()
	cfg := f.cfg
	f.mu.RUnlock()
	if cfg == nil {
		return "", ""
	}
	req := request.New(attrs)
	return cfg.HeaderName, targeting.Target(req, cfg)
}
