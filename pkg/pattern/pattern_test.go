package pattern

import (
	"errors"
	"testing"
)

func TestCompileValid(t *testing.T) {
	tests := []struct {
		raw         string
		groups      int
		hasFragment bool
	}{
		{"/", 0, false},
		{"/articles", 0, false},
		{`/articles/(\d+)`, 1, false},
		{`/articles/(\d+)/comments/(\d+)`, 2, false},
		{`/app#profile/(\d+)`, 1, true},
		{`/files/([^/]+)/view`, 1, false},
		{`/search/(\w+)-(\w+)`, 2, false},
		{`/literal\(parens\)`, 0, false},
		{`/escaped\#hash`, 0, false},
		{`/odd+chars.here`, 0, false},
		{`/(a(b)c)/x`, 1, false},
		{`/((?:ab|cd)+)/x`, 1, false},
	}

	for _, tt := range tests {
		p, err := Compile(tt.raw)
		if err != nil {
			t.Errorf("Compile(%q) failed: %v", tt.raw, err)
			continue
		}
		if p.NumGroups() != tt.groups {
			t.Errorf("Compile(%q).NumGroups() = %d, want %d", tt.raw, p.NumGroups(), tt.groups)
		}
		if p.HasFragment() != tt.hasFragment {
			t.Errorf("Compile(%q).HasFragment() = %v, want %v", tt.raw, p.HasFragment(), tt.hasFragment)
		}
	}
}

func TestCompileMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unmatched open", `/articles/(\d+`},
		{"unmatched close", `/articles/\d+)`},
		{"adjacent groups", `/x/(\d+)(\w+)`},
		{"double fragment", `/a#b#c`},
		{"fragment in group", `/a/(b#c)`},
		{"dangling escape", `/articles\`},
		{"bad group expression", `/x/([)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.raw)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tt.raw)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Compile(%q) error = %v, want ErrMalformed", tt.raw, err)
			}
		})
	}
}

func TestCompileGroupsSeparatedByLiteral(t *testing.T) {
	// A single literal between groups is enough to disambiguate.
	if _, err := Compile(`/x/(\d+)-(\w+)`); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	// An escaped literal also counts.
	if _, err := Compile(`/x/(\d+)\-(\w+)`); err != nil {
		t.Fatalf("Compile with escaped separator failed: %v", err)
	}
}

func TestMatchesAnchored(t *testing.T) {
	p := MustCompile(`/articles/(\d+)`)

	tests := []struct {
		path string
		want bool
	}{
		{"/articles/123", true},
		{"/articles/1", true},
		{"/articles/", false},
		{"/articles/abc", false},
		{"/articles/123/extra", false},
		{"x/articles/123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := p.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMetacharactersAreLiteral(t *testing.T) {
	p := MustCompile(`/odd+chars.here`)

	if !p.Matches("/odd+chars.here") {
		t.Error("literal path should match")
	}
	if p.Matches("/oddddchars.here") {
		t.Error("'+' outside a group must not repeat")
	}
	if p.Matches("/odd+charsXhere") {
		t.Error("'.' outside a group must not be a wildcard")
	}
}

func TestParse(t *testing.T) {
	p := MustCompile(`/articles/(\d+)`)

	args, err := p.Parse("/articles/123")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(args) != 1 || args[0] != "123" {
		t.Errorf("Parse = %v, want [123]", args)
	}

	_, err = p.Parse("/articles/abc")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Parse error = %v, want ErrNoMatch", err)
	}
}

func TestParseZeroGroups(t *testing.T) {
	p := MustCompile("/about")

	args, err := p.Parse("/about")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if args == nil {
		t.Error("Parse on success must not return nil")
	}
	if len(args) != 0 {
		t.Errorf("Parse = %v, want empty", args)
	}
}

func TestParseNestedGroups(t *testing.T) {
	// Only top-level groups become parameters; nested parens belong
	// to the group's own sub-expression.
	p := MustCompile(`/v/((a|b)\d+)/tail`)

	args, err := p.Parse("/v/a42/tail")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(args) != 1 || args[0] != "a42" {
		t.Errorf("Parse = %v, want [a42]", args)
	}
}

func TestFragmentMatching(t *testing.T) {
	p := MustCompile(`/app#profile/(\d+)`)

	for _, path := range []string{"/app/profile/55", "/app#profile/55"} {
		if !p.Matches(path) {
			t.Errorf("Matches(%q) = false, want true", path)
		}
		args, err := p.Parse(path)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", path, err)
		}
		if len(args) != 1 || args[0] != "55" {
			t.Errorf("Parse(%q) = %v, want [55]", path, args)
		}
	}

	if p.Matches("/app-profile/55") {
		t.Error("fragment marker must only match '/' or '#'")
	}
}

func TestMatchesNonFragment(t *testing.T) {
	p := MustCompile(`/app#profile/(\d+)`)

	if !p.MatchesNonFragment("/app") {
		t.Error("base portion should match without the fragment suffix")
	}
	if p.MatchesNonFragment("/app/profile/55") {
		t.Error("base matcher must not accept the full path")
	}

	// Without a fragment, identical to Matches.
	q := MustCompile(`/articles/(\d+)`)
	if !q.MatchesNonFragment("/articles/9") {
		t.Error("MatchesNonFragment should equal Matches for fragment-free patterns")
	}
	if q.MatchesNonFragment("/articles") {
		t.Error("MatchesNonFragment should equal Matches for fragment-free patterns")
	}
}

func TestEscapedFragmentIsLiteral(t *testing.T) {
	p := MustCompile(`/escaped\#hash`)

	if p.HasFragment() {
		t.Error("escaped '#' must not count as fragment marker")
	}
	if !p.Matches("/escaped#hash") {
		t.Error("escaped '#' should match a literal '#'")
	}
	if p.Matches("/escaped/hash") {
		t.Error("escaped '#' must not match '/'")
	}
}

func TestEqual(t *testing.T) {
	a := MustCompile(`/articles/(\d+)`)
	b := MustCompile(`/articles/(\d+)`)
	c := MustCompile(`/articles/(\w+)`)

	if !a.Equal(b) {
		t.Error("patterns with equal raw strings must be equal")
	}
	if a.Equal(c) {
		t.Error("patterns with different raw strings must not be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) must be false")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile on a malformed pattern should panic")
		}
	}()
	MustCompile(`/broken/(`)
}
