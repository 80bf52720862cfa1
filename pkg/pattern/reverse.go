package pattern

import (
	"fmt"
	"strings"
)

// Reverse rebuilds a canonical path from an ordered argument list, the
// inverse of Parse. Literal characters outside groups are emitted
// verbatim, the fragment marker becomes "#" when useFragment is true
// and "/" otherwise, and each top-level capture group is replaced by
// the next argument.
//
// Fails with an error matching ErrArgumentCount when args has fewer
// elements than the pattern has capture groups. Excess arguments are
// ignored.
func (p *Pattern) Reverse(args []string, useFragment bool) (string, error) {
	if len(args) < len(p.groupIdx) {
		return "", fmt.Errorf("%w: pattern %q needs %d args, got %d",
			ErrArgumentCount, p.raw, len(p.groupIdx), len(args))
	}

	var b strings.Builder
	depth := 0
	escaped := false
	next := 0

	for i := 0; i < len(p.raw); i++ {
		ch := p.raw[i]

		if escaped {
			escaped = false
			if depth == 0 {
				b.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '\\':
			escaped = true

		case '(':
			depth++

		case ')':
			depth--
			if depth == 0 {
				b.WriteString(args[next])
				next++
			}

		case Fragment:
			// Inside a group this is unreachable: Compile rejects it.
			if useFragment {
				b.WriteByte(Fragment)
			} else {
				b.WriteByte(Separator)
			}

		default:
			if depth == 0 {
				b.WriteByte(ch)
			}
		}
	}

	return b.String(), nil
}
