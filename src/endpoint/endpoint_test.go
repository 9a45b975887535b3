package endpoint_test

import (
	"testing"

	"hycu-check/src/endpoint"
)

func TestParse_HostOnly(t *testing.T) {
	got, err := endpoint.Parse("hycu.example.com", 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Host != "hycu.example.com" || got.Port != endpoint.DefaultPort {
		t.Fatalf("got %+v, want host hycu.example.com port %d", got, endpoint.DefaultPort)
	}
	if u := got.BaseURL().String(); u != "https://hycu.example.com:8443/rest/v1.0" {
		t.Fatalf("BaseURL = %q", u)
	}
}

func TestParse_HostPort(t *testing.T) {
	got, err := endpoint.Parse("10.0.0.5:9443", 8443)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Host != "10.0.0.5" || got.Port != 9443 {
		t.Fatalf("got %+v", got)
	}
}

func TestParse_ExplicitPortArgument(t *testing.T) {
	got, err := endpoint.Parse("hycu", 10443)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.String() != "hycu:10443" {
		t.Fatalf("String = %q", got.String())
	}
}

func TestParse_HTTPSScheme(t *testing.T) {
	got, err := endpoint.Parse("https://hycu.example.com/", 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Host != "hycu.example.com" {
		t.Fatalf("Host = %q", got.Host)
	}
}

func TestParse_IPv6(t *testing.T) {
	got, err := endpoint.Parse("[fd00::5]:8443", 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.BaseURL().Host != "[fd00::5]:8443" {
		t.Fatalf("BaseURL host = %q", got.BaseURL().Host)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "http://hycu", "hycu/rest", "hycu:0", "hycu:notaport", ":8443"} {
		if _, err := endpoint.Parse(in, 0); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
