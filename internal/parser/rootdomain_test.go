package parser

import "testing"

func TestIsRootDomain(t *testing.T) {
	cases := []struct {
		domain string
		want   bool
	}{
		{"example.com", true},
		{"EXAMPLE.COM", true},
		{"example.co.uk", true},
		{"sub.example.com", false},
		{"deep.sub.example.co.uk", false},
		{"com", false},
		{"", false},
		{"examp le.com", false},
		{"example.com.", true},
	}

	for _, c := range cases {
		if got := IsRootDomain(c.domain); got != c.want {
			t.Errorf("IsRootDomain(%q) = %v, expected %v", c.domain, got, c.want)
		}
	}
}

func TestRootDomainOf(t *testing.T) {
	cases := []struct {
		domain string
		want   string
	}{
		{"pub.example.com", "example.com"},
		{"example.com", "example.com"},
		{"News.BBC.co.uk", "bbc.co.uk"},
		{"com", "com"},
	}

	for _, c := range cases {
		if got := RootDomainOf(c.domain); got != c.want {
			t.Errorf("RootDomainOf(%q) = %q, expected %q", c.domain, got, c.want)
		}
	}
}
