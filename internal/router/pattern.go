package router

import (
	"fmt"
	"strings"
)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentParam
)

type segment struct {
	kind  segmentKind
	value string // literal text or parameter name
}

// Params holds the path parameters bound by a match
type Params map[string]string

// Get returns the named parameter, or "" when absent
func (p Params) Get(name string) string {
	if p == nil {
		return ""
	}
	return p[name]
}

// Pattern is a compiled path pattern such as "/todos" or "/todos/{id}".
//
// Literal-only patterns also match the same path with one trailing slash.
// A parameter in the final position binds the last segment of the path, so
// "/todos/{id}" matches "/todos/a/b" with id "b". A parameter never binds an
// empty segment: "/todos/" and "/todos/a/" do not match "/todos/{id}".
type Pattern struct {
	raw      string
	segments []segment
}

// Compile parses a pattern. Parameters are written as {name}.
func Compile(pattern string) (*Pattern, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("pattern %q must start with /", pattern)
	}

	p := &Pattern{raw: pattern}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(pattern, "/"), "/")
	if trimmed == "" {
		return p, nil
	}

	seen := map[string]bool{}
	for _, part := range strings.Split(trimmed, "/") {
		switch {
		case part == "":
			return nil, fmt.Errorf("pattern %q contains an empty segment", pattern)
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, fmt.Errorf("pattern %q contains an unnamed parameter", pattern)
			}
			if seen[name] {
				return nil, fmt.Errorf("pattern %q repeats parameter %q", pattern, name)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{kind: segmentParam, value: name})
		case strings.ContainsAny(part, "{}"):
			return nil, fmt.Errorf("pattern %q has a malformed segment %q", pattern, part)
		default:
			p.segments = append(p.segments, segment{kind: segmentLiteral, value: part})
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Route tables are built
// once at startup, so a bad pattern is a programming error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether path matches and returns the bound parameters
func (p *Pattern) Match(path string) (Params, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")

	if p.endsWithParam() {
		return p.matchWithTail(parts)
	}

	// Tolerate a single trailing slash on literal-only patterns.
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := Params{}
	for i, seg := range p.segments {
		if !seg.bind(parts[i], params) {
			return nil, false
		}
	}
	return params, true
}

func (p *Pattern) endsWithParam() bool {
	n := len(p.segments)
	return n > 0 && p.segments[n-1].kind == segmentParam
}

func (p *Pattern) matchWithTail(parts []string) (Params, bool) {
	head := p.segments[:len(p.segments)-1]
	if len(parts) < len(p.segments) {
		return nil, false
	}

	params := Params{}
	for i, seg := range head {
		if !seg.bind(parts[i], params) {
			return nil, false
		}
	}

	last := parts[len(parts)-1]
	if last == "" {
		return nil, false
	}
	params[p.segments[len(p.segments)-1].value] = last
	return params, true
}

func (s segment) bind(part string, params Params) bool {
	if s.kind == segmentLiteral {
		return part == s.value
	}
	if part == "" {
		return false
	}
	params[s.value] = part
	return true
}
