package i18n

import "strings"

// matchPathFor computes the client-side match pattern of a page at candidate,
// generated under language prefix ("" for the canonical page). fallback is
// kept when no rule applies.
//
// A candidate under a dynamic route family gets a wildcard rooted at the
// family. A not-found page overrides that with a catch-all so unknown routes
// in its language land on it.
func (o Options) matchPathFor(candidate, prefix, fallback string) string {
	matchPath := fallback
	if name, ok := o.dynamicPage(candidate, prefix); ok {
		matchPath = prefix + "/" + name + "/*"
	}
	if isNotFoundPath(candidate) {
		if prefix == "" {
			matchPath = "/*"
		} else {
			matchPath = "/" + prefix + "/*"
		}
	}
	return matchPath
}

// dynamicPage returns the first dynamic route name candidate belongs to.
func (o Options) dynamicPage(candidate, prefix string) (string, bool) {
	for _, name := range o.DynamicPages {
		if strings.HasPrefix(candidate, prefix+"/"+name) {
			return name, true
		}
	}
	return "", false
}

func isNotFoundPath(path string) bool {
	return strings.HasSuffix(path, "/404") || strings.HasSuffix(path, "/404/")
}
