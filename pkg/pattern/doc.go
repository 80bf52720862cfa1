// Package pattern implements the reversible route pattern compiler.
//
// A pattern is a restricted regular expression over paths. Literal
// characters match themselves (regex metacharacters are escaped during
// compilation), parenthesized sub-expressions are capture groups, and a
// single unescaped "#" marks the boundary between a static prefix and a
// dynamic suffix. At match time "#" accepts either the path separator
// or the literal fragment character, so "/app#profile/(\d+)" matches
// both "/app/profile/55" and "/app#profile/55".
//
// Compiled patterns are anchored: a path either matches as one match
// spanning the whole string or does not match at all. Every pattern is
// bidirectional — Parse extracts the captured groups of a matching
// path, and Reverse rebuilds a canonical path from an argument list:
//
//	p, _ := pattern.Compile(`/articles/(\d+)`)
//	args, _ := p.Parse("/articles/123") // ["123"]
//	path, _ := p.Reverse(args, false)   // "/articles/123"
//
// Patterns that cannot be reversed unambiguously are rejected at
// compile time; see Compile for the exact conditions.
package pattern
