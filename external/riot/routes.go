package riot

import (
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Regional routing values served by match-v5.
const (
	RouteAmericas = "americas"
	RouteAsia     = "asia"
	RouteEurope   = "europe"
	RouteSEA      = "sea"
)

var defaultRoutes = map[string]string{
	"na1":  RouteAmericas,
	"br1":  RouteAmericas,
	"la1":  RouteAmericas,
	"la2":  RouteAmericas,
	"oc1":  RouteSEA,
	"euw1": RouteEurope,
	"eun1": RouteEurope,
	"tr1":  RouteEurope,
	"ru":   RouteEurope,
	"kr":   RouteAsia,
	"jp1":  RouteAsia,
}

// DefaultRoutes returns the platform to regional routing table.
func DefaultRoutes() map[string]string {
	out := make(map[string]string, len(defaultRoutes))
	for platform, route := range defaultRoutes {
		out[platform] = route
	}
	return out
}

type routesFile struct {
	Routes map[string]string `yaml:"routes"`
}

// LoadRoutes reads a YAML override of the routing table and merges it over
// the defaults:
//
//	routes:
//	  oc1: sea
//	  ph2: sea
func LoadRoutes(path string) (map[string]string, error) {
	routes := DefaultRoutes()
	path = strings.TrimSpace(path)
	if path == "" {
		return routes, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read routes file %s", path)
	}

	var file routesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, crerr.Wrapf(err, "parse routes file %s", path)
	}
	for platform, route := range file.Routes {
		platform = normalizePlatform(platform)
		route = strings.ToLower(strings.TrimSpace(route))
		switch route {
		case RouteAmericas, RouteAsia, RouteEurope, RouteSEA:
		default:
			return nil, crerr.Newf("routes file %s: platform %q has unsupported route %q", path, platform, route)
		}
		if platform == "" {
			return nil, crerr.Newf("routes file %s: empty platform", path)
		}
		routes[platform] = route
	}
	return routes, nil
}

// PlatformFromMatchID extracts the platform prefix of ids like "EUW1_123".
func PlatformFromMatchID(matchID string) string {
	prefix, _, ok := strings.Cut(strings.TrimSpace(matchID), "_")
	if !ok {
		return ""
	}
	return normalizePlatform(prefix)
}

func normalizePlatform(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
