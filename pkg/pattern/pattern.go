package pattern

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// Separator is the path segment separator.
const Separator = '/'

// Fragment is the fragment marker character.
const Fragment = '#'

// Pattern is a compiled, reversible route pattern. It is immutable;
// all derived state is computed once by Compile.
type Pattern struct {
	raw string

	// re matches the whole pattern, anchored at both ends.
	re *coregex.Regex

	// base matches only the portion before the fragment marker.
	// Equal to re when the pattern has no fragment.
	base *coregex.Regex

	// groupIdx maps each top-level capture group, in declaration
	// order, to its submatch index in re.
	groupIdx []int

	hasFragment bool
}

// Compile parses a raw pattern string into a Pattern.
//
// It fails with an error matching ErrMalformed when the pattern has an
// unmatched parenthesis outside an escape sequence, two top-level
// capture groups with no literal character between them (such a
// pattern cannot be reversed unambiguously), more than one unescaped
// top-level fragment marker, or a fragment marker inside a group.
func Compile(raw string) (*Pattern, error) {
	p := &Pattern{raw: raw}

	var src strings.Builder
	var baseSrc string

	depth := 0
	escaped := false
	capCount := 0      // capturing groups in the generated expression
	lastGroupEnd := -1 // index just past the previous top-level ")"

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		if escaped {
			escaped = false
			if depth == 0 {
				// Escaped literal outside a group.
				src.WriteString(coregex.QuoteMeta(string(ch)))
			} else {
				// Group content is a sub-expression; keep the
				// escape sequence intact.
				src.WriteByte('\\')
				src.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '\\':
			escaped = true

		case '(':
			if depth == 0 {
				if lastGroupEnd == i {
					return nil, syntaxErr(raw, i, "adjacent top-level capture groups")
				}
				capCount++
				p.groupIdx = append(p.groupIdx, capCount)
			} else if i+1 >= len(raw) || raw[i+1] != '?' {
				// Nested capturing group inside a sub-expression
				// shifts subsequent submatch indexes.
				capCount++
			}
			depth++
			src.WriteByte('(')

		case ')':
			if depth == 0 {
				return nil, syntaxErr(raw, i, "unmatched closing parenthesis")
			}
			depth--
			if depth == 0 {
				lastGroupEnd = i + 1
			}
			src.WriteByte(')')

		case Fragment:
			if depth > 0 {
				return nil, syntaxErr(raw, i, "fragment marker inside capture group")
			}
			if p.hasFragment {
				return nil, syntaxErr(raw, i, "more than one fragment marker")
			}
			p.hasFragment = true
			baseSrc = src.String()
			src.WriteString(`[/#]`)

		default:
			if depth == 0 {
				src.WriteString(coregex.QuoteMeta(string(ch)))
			} else {
				src.WriteByte(ch)
			}
		}
	}

	if escaped {
		return nil, syntaxErr(raw, len(raw)-1, "dangling escape")
	}
	if depth > 0 {
		return nil, syntaxErr(raw, len(raw)-1, "unmatched opening parenthesis")
	}

	var err error
	p.re, err = coregex.Compile("^" + src.String() + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
	}

	if p.hasFragment {
		p.base, err = coregex.Compile("^" + baseSrc + "$")
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
		}
	} else {
		p.base = p.re
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for
// patterns known valid at program start.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the raw pattern string.
func (p *Pattern) String() string {
	return p.raw
}

// Equal reports whether two patterns have the same raw string.
func (p *Pattern) Equal(o *Pattern) bool {
	return o != nil && p.raw == o.raw
}

// NumGroups returns the number of top-level capture groups.
func (p *Pattern) NumGroups() int {
	return len(p.groupIdx)
}

// HasFragment reports whether the pattern contains a fragment marker.
func (p *Pattern) HasFragment() bool {
	return p.hasFragment
}

// Matches reports whether path matches the whole pattern.
func (p *Pattern) Matches(path string) bool {
	return p.re.MatchString(path)
}

// MatchesNonFragment reports whether path matches the portion of the
// pattern before the fragment marker. Callers that never see the
// fragment (a server handling a full page load) use this instead of
// Matches. For a pattern without a fragment it is identical to Matches.
func (p *Pattern) MatchesNonFragment(path string) bool {
	return p.base.MatchString(path)
}

// Parse extracts the top-level capture groups of a matching path, in
// declaration order. The result is empty but non-nil for a matching
// path on a zero-group pattern. Fails with an error matching
// ErrNoMatch when the path does not match.
func (p *Pattern) Parse(path string) ([]string, error) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, fmt.Errorf("%w: %q does not match %q", ErrNoMatch, path, p.raw)
	}
	args := make([]string, 0, len(p.groupIdx))
	for _, idx := range p.groupIdx {
		args = append(args, m[idx])
	}
	return args, nil
}
