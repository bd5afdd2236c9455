package rbac

import (
	"fmt"
	"strings"
)

const (
	pathSeparator  = "/"
	wildcardPrefix = ":"
)

type segment struct {
	literal  string
	wildcard string
}

// pattern is a compiled path pattern. Literal segments compare case-sensitively,
// wildcard segments accept any non-empty segment. There is no prefix matching.
type pattern struct {
	raw      string
	segments []segment
}

func compilePattern(raw string) (pattern, error) {
	if !strings.HasPrefix(raw, pathSeparator) {
		return pattern{}, fmt.Errorf(errPatternNotAbsoluteFmt, raw)
	}

	parts := splitPath(raw)
	p := pattern{raw: raw, segments: make([]segment, 0, len(parts))}
	seen := make(map[string]bool)

	for _, part := range parts {
		if part == "" {
			return pattern{}, fmt.Errorf(errPatternEmptySegmentFmt, raw)
		}
		if !strings.HasPrefix(part, wildcardPrefix) {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}

		name := strings.TrimPrefix(part, wildcardPrefix)
		if name == "" {
			return pattern{}, fmt.Errorf(errPatternEmptyWildcardFmt, raw)
		}
		if seen[name] {
			return pattern{}, fmt.Errorf(errPatternDuplicateWildcardFmt, raw, name)
		}
		seen[name] = true
		p.segments = append(p.segments, segment{wildcard: name})
	}

	return p, nil
}

func (p pattern) matches(parts []string) bool {
	if len(parts) != len(p.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg.wildcard != "" {
			if parts[i] == "" {
				return false
			}
			continue
		}
		if parts[i] != seg.literal {
			return false
		}
	}
	return true
}

// index returns the position of the named wildcard, or -1
func (p pattern) index(name string) int {
	for i, seg := range p.segments {
		if seg.wildcard == name {
			return i
		}
	}
	return -1
}

func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(path, pathSeparator), pathSeparator)
}
