package fileurl

import "testing"

func TestPublicURLResolver_Resolve(t *testing.T) {
	resolver := NewPublicURLResolver("http://localhost:8082/files/")

	cases := []struct {
		name string
		path string
		want string
	}{
		{"relative path", "properties/1/front.jpg", "http://localhost:8082/files/properties/1/front.jpg"},
		{"leading slash", "/properties/1/front.jpg", "http://localhost:8082/files/properties/1/front.jpg"},
		{"absolute http", "http://other.example.com/a.jpg", "http://other.example.com/a.jpg"},
		{"absolute https", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"empty path", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolver.Resolve(tc.path); got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
