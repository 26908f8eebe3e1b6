package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dunglas/httpsfv"
)

// AgentHeader is the request header storefront clients use to identify
// themselves. Format: name="web-storefront";version="2.1" (RFC 8941 Dictionary).
const AgentHeader = "Storefront-Agent"

// Agent identifies the storefront client that issued a request.
type Agent struct {
	Name    string
	Version string
}

type agentContextKey struct{}

// AgentFrom returns the client identity parsed from the Storefront-Agent
// header, if the request carried one.
func AgentFrom(ctx context.Context) (Agent, bool) {
	a, ok := ctx.Value(agentContextKey{}).(Agent)
	return a, ok
}

// ParseAgentHeader extracts the client name and optional version from a
// Storefront-Agent header value.
//
// Examples:
//   - name="web-storefront"                → {Name: "web-storefront"}
//   - name="cli";version="0.3"             → {Name: "cli", Version: "0.3"}
//
// Returns error if the header is empty, malformed, or missing the name key.
func ParseAgentHeader(header string) (Agent, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Agent{}, errors.New("empty Storefront-Agent header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return Agent{}, fmt.Errorf("invalid Storefront-Agent header: %w", err)
	}

	member, ok := dict.Get("name")
	if !ok {
		return Agent{}, errors.New("name key not found in Storefront-Agent header")
	}

	item, ok := member.(httpsfv.Item)
	if !ok {
		return Agent{}, errors.New("name value must be an item")
	}

	name, ok := item.Value.(string)
	if !ok {
		return Agent{}, errors.New("name value must be a string")
	}

	agent := Agent{Name: name}

	if member, ok := dict.Get("version"); ok {
		if item, ok := member.(httpsfv.Item); ok {
			if v, ok := item.Value.(string); ok {
				agent.Version = v
			}
		}
	}

	return agent, nil
}

// AgentIdentity returns middleware that parses the Storefront-Agent header
// and stores the client identity in the request context. Requests without
// the header, or with a malformed one, pass through unchanged.
func AgentIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get(AgentHeader); header != "" {
				if agent, err := ParseAgentHeader(header); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), agentContextKey{}, agent))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
