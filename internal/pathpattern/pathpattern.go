// Package pathpattern compiles route templates such as "/:lang?/blog/:slug"
// or "/docs/*" and matches them against page paths.
//
// Supported syntax:
//   - static segments ("/blog")
//   - named parameters (":slug"), optionally marked optional (":lang?")
//   - a trailing wildcard ("*"), captured under the name "*"
//
// Matching is case-insensitive, anchored on the whole path and tolerant of a
// single trailing slash.
package pathpattern

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// WildcardParam is the parameter name a trailing "*" is captured under.
const WildcardParam = "*"

var (
	// ErrEmptyPattern is returned when compiling an empty template.
	ErrEmptyPattern = errors.New("empty path pattern")
	// ErrInvalidPattern wraps every other syntax problem.
	ErrInvalidPattern = errors.New("invalid path pattern")
)

var paramNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Params holds the values captured by a successful match. Optional
// parameters and wildcards that matched nothing are absent.
type Params map[string]string

// Get returns the value captured for name, or "" when absent.
func (p Params) Get(name string) string { return p[name] }

// Pattern is a compiled path template. It is safe for concurrent use.
type Pattern struct {
	source string
	re     *regexp.Regexp
	names  []string
}

// Compile parses a path template.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, pattern)
	}

	segments := strings.Split(pattern[1:], "/")
	var b strings.Builder
	b.WriteString("(?i)^")
	names := make([]string, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))

	addName := func(name string) error {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, pattern, name)
		}
		seen[name] = struct{}{}
		names = append(names, name)
		return nil
	}

	for i, seg := range segments {
		last := i == len(segments)-1
		switch {
		case seg == "":
			if !last {
				return nil, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPattern, pattern)
			}
			// trailing slash; covered by the optional slash below
		case seg == WildcardParam:
			if !last {
				return nil, fmt.Errorf("%w: %q wildcard must be the last segment", ErrInvalidPattern, pattern)
			}
			if err := addName(WildcardParam); err != nil {
				return nil, err
			}
			b.WriteString(`(?:/(.*?))?`)
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			optional := strings.HasSuffix(name, "?")
			name = strings.TrimSuffix(name, "?")
			if !paramNameRe.MatchString(name) {
				return nil, fmt.Errorf("%w: %q has invalid parameter name %q", ErrInvalidPattern, pattern, name)
			}
			if err := addName(name); err != nil {
				return nil, err
			}
			if optional {
				b.WriteString(`(?:/([^/]+?))?`)
			} else {
				b.WriteString(`/([^/]+?)`)
			}
		default:
			if strings.ContainsAny(seg, ":*?") {
				return nil, fmt.Errorf("%w: %q has unsupported segment %q", ErrInvalidPattern, pattern, seg)
			}
			b.WriteString("/")
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}
	b.WriteString(`/?$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return &Pattern{source: pattern, re: re, names: names}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level fixtures.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source template.
func (p *Pattern) String() string { return p.source }

// Names returns the parameter names in declaration order.
func (p *Pattern) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Match reports whether path conforms to the pattern and returns the
// captured parameters.
func (p *Pattern) Match(path string) (Params, bool) {
	idx := p.re.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}
	params := make(Params, len(p.names))
	for i, name := range p.names {
		start, end := idx[2*(i+1)], idx[2*(i+1)+1]
		if start < 0 || start == end {
			continue
		}
		raw := path[start:end]
		if v, err := url.PathUnescape(raw); err == nil {
			raw = v
		}
		params[name] = raw
	}
	return params, true
}

// Matches is a convenience wrapper around Match.
func (p *Pattern) Matches(path string) bool {
	return p.re.MatchString(path)
}
