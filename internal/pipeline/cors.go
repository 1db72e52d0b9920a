package pipeline

import (
	"context"
	"sort"
	"strings"
)

// CorsMode selects the cross-origin policy.
type CorsMode int

const (
	// CorsDisabled adds no CORS headers.
	CorsDisabled CorsMode = iota
	// CorsAllowAny sets Access-Control-Allow-Origin: * on every response.
	CorsAllowAny
	// CorsWhitelist echoes the requesting origin only when it is a member
	// of the configured set.
	CorsWhitelist
)

// CorsPolicy is built once from the cors_allow_origins setting. Parsing
// never fails: empty means disabled, "*" means any, anything else is a
// comma-separated whitelist (trimmed, deduplicated).
type CorsPolicy struct {
	Mode    CorsMode
	origins map[string]struct{}
}

// ParseCorsPolicy interprets the cors_allow_origins configuration value.
func ParseCorsPolicy(allowOrigins string) CorsPolicy {
	allowOrigins = strings.TrimSpace(allowOrigins)

	switch allowOrigins {
	case "":
		return CorsPolicy{Mode: CorsDisabled}
	case "*":
		return CorsPolicy{Mode: CorsAllowAny}
	}

	origins := make(map[string]struct{})
	for _, o := range strings.Split(allowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = struct{}{}
		}
	}
	return CorsPolicy{Mode: CorsWhitelist, origins: origins}
}

// Allows reports whether the given origin is acceptable under the policy.
func (p CorsPolicy) Allows(origin string) bool {
	switch p.Mode {
	case CorsAllowAny:
		return true
	case CorsWhitelist:
		_, ok := p.origins[origin]
		return ok
	default:
		return false
	}
}

// String describes the policy for startup diagnostics.
func (p CorsPolicy) String() string {
	switch p.Mode {
	case CorsDisabled:
		return "disabled"
	case CorsAllowAny:
		return "*"
	default:
		origins := make([]string, 0, len(p.origins))
		for o := range p.origins {
			origins = append(origins, o)
		}
		sort.Strings(origins)
		return strings.Join(origins, ",")
	}
}

// corsStage attaches Access-Control-Allow-Origin per the policy. A
// whitelist miss omits the header entirely; the request still succeeds
// for same-origin use.
type corsStage struct {
	policy CorsPolicy
}

func (s *corsStage) Name() string { return "cors" }

func (s *corsStage) Process(_ context.Context, ex *Exchange) error {
	switch s.policy.Mode {
	case CorsAllowAny:
		ex.Header.Set("Access-Control-Allow-Origin", "*")
	case CorsWhitelist:
		origin := ex.ReqHeader.Get("Origin")
		if s.policy.Allows(origin) {
			ex.Header.Set("Access-Control-Allow-Origin", origin)
			ex.Header.Add("Vary", "Origin")
		}
	}
	return nil
}
