package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/novamart/orderhub-backend/api/middleware"
	"github.com/novamart/orderhub-backend/api/responses"
	"github.com/novamart/orderhub-backend/pkg/config"
	"github.com/novamart/orderhub-backend/pkg/envelope"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

// Route maps a path prefix to an upstream service. Requests under an
// auth-required prefix must carry a valid access token before they are
// forwarded; the Authorization header is passed through untouched so the
// upstream can read the same claims.
type Route struct {
	Prefix      string `json:"prefix"`
	Upstream    string `json:"upstream"`
	RequireAuth bool   `json:"requireAuth"`
}

// LoadRoutes reads the route table from a JSON file.
func LoadRoutes(path string) ([]Route, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading route table: %w", err)
	}

	var routes []Route
	if err := json.Unmarshal(raw, &routes); err != nil {
		return nil, fmt.Errorf("parsing route table: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("route table %s is empty", path)
	}

	seen := map[string]bool{}
	for i, route := range routes {
		if !strings.HasPrefix(route.Prefix, "/") {
			return nil, fmt.Errorf("route %d: prefix %q must start with /", i, route.Prefix)
		}
		if seen[route.Prefix] {
			return nil, fmt.Errorf("route %d: duplicate prefix %q", i, route.Prefix)
		}
		seen[route.Prefix] = true

		target, err := url.Parse(route.Upstream)
		if err != nil {
			return nil, fmt.Errorf("route %d: invalid upstream %q: %w", i, route.Upstream, err)
		}
		if target.Scheme != "http" && target.Scheme != "https" {
			return nil, fmt.Errorf("route %d: upstream %q must be http or https", i, route.Upstream)
		}
		if target.Host == "" {
			return nil, fmt.Errorf("route %d: upstream %q has no host", i, route.Upstream)
		}
	}
	return routes, nil
}

// NewHandler builds the proxying route tree. Longer prefixes are mounted
// first so the most specific route wins.
func NewHandler(jwtCfg config.JWTConfig, routes []Route, logg *logger.Logger) (http.Handler, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("at least one route required")
	}

	ordered := make([]Route, len(routes))
	copy(ordered, routes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteOk(w, map[string]string{"status": "live"})
	})

	for _, route := range ordered {
		proxy, err := newProxy(route, logg)
		if err != nil {
			return nil, err
		}
		if route.RequireAuth {
			r.With(middleware.Auth(jwtCfg, logg)).Mount(route.Prefix, proxy)
			continue
		}
		r.Mount(route.Prefix, proxy)
	}

	return r, nil
}

func newProxy(route Route, logg *logger.Logger) (http.Handler, error) {
	target, err := url.Parse(route.Upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream %q: %w", route.Upstream, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"prefix":   route.Prefix,
				"upstream": route.Upstream,
			})
			logg.Error(ctx, "gateway.upstream", err)
		}
		responses.WriteEnvelope(w, envelope.Fail(500, "upstream unavailable"))
	}
	return proxy, nil
}
