package pattern

import "testing"

func BenchmarkMatches(b *testing.B) {
	p := MustCompile(`/articles/(\d+)/comments/(\d+)`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Matches("/articles/123/comments/456")
	}
}

func BenchmarkParse(b *testing.B) {
	p := MustCompile(`/app#profile/(\d+)`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse("/app#profile/55"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReverse(b *testing.B) {
	p := MustCompile(`/articles/(\d+)/comments/(\d+)`)
	args := []string{"123", "456"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Reverse(args, false); err != nil {
			b.Fatal(err)
		}
	}
}
