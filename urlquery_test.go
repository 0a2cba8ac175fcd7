package waygate

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildURLNoParams(t *testing.T) {
	if got := BuildURL("/pages/home", nil); got != "/pages/home" {
		t.Errorf("nil params should return path unchanged, got %q", got)
	}
	if got := BuildURL("/pages/home", Params{}); got != "/pages/home" {
		t.Errorf("empty params should return path unchanged, got %q", got)
	}
}

func TestBuildURLAppendsQuery(t *testing.T) {
	got := BuildURL("/pages/detail", Params{"id": Int(123)})
	if got != "/pages/detail?id=123" {
		t.Errorf("unexpected url %q", got)
	}
}

func TestBuildURLExistingQueryUsesAmpersand(t *testing.T) {
	got := BuildURL("/pages/detail?tab=2", Params{"id": Int(7)})
	if got != "/pages/detail?tab=2&id=7" {
		t.Errorf("unexpected url %q", got)
	}
}

func TestBuildURLSortsKeys(t *testing.T) {
	got := BuildURL("/p", Params{"b": String("2"), "a": String("1"), "c": String("3")})
	if got != "/p?a=1&b=2&c=3" {
		t.Errorf("keys should be emitted sorted, got %q", got)
	}
}

func TestBuildURLValueKinds(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", String("hello world"), "hello+world"},
		{"int", Int(-42), "-42"},
		{"float", Float(1.5), "1.5"},
		{"bool", Bool(true), "true"},
		{"json object", JSON(map[string]int{"n": 1}), url.QueryEscape(`{"n":1}`)},
		{"json array", JSON([]string{"a", "b"}), url.QueryEscape(`["a","b"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURL("/p", Params{"v": tt.value})
			want := "/p?v=" + tt.want
			if got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestBuildURLRoundTrip(t *testing.T) {
	params := Params{
		"name":  String("café & cream"),
		"count": Int(99),
		"ok":    Bool(false),
		"blob":  JSON(map[string]any{"k": "v"}),
	}
	built := BuildURL("/pages/detail", params)

	q := built[strings.IndexByte(built, '?')+1:]
	parsed, err := url.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}

	want := map[string]string{
		"name":  "café & cream",
		"count": "99",
		"ok":    "false",
		"blob":  `{"k":"v"}`,
	}
	for k, v := range want {
		if got := parsed.Get(k); got != v {
			t.Errorf("param %q round-tripped to %q, want %q", k, got, v)
		}
	}
}
