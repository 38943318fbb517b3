package utils

import (
	"math"
	"net/http/httptest"
	"testing"
)

func TestParsePage(t *testing.T) {
	entries := []struct {
		query  string
		expect int
	}{
		{"", 0},
		{"?page=", 0},
		{"?page=3", 3},
		{"?page=abc", 0},
		{"?page=-2", 0},
		{"?page=1.5", 0},
		{"?page=%201%20", 1},
		{"?page=737869762948382065", 737869762948382065},
		{"?page=99999999999999999999", math.MaxInt},
		{"?page=-99999999999999999999", 0},
	}
	for _, e := range entries {
		r := httptest.NewRequest("GET", "/reports"+e.query, nil)
		if got := ParsePage(r); got != e.expect {
			t.Errorf("ParsePage(%q) = %d, want %d", e.query, got, e.expect)
		}
	}
}

func TestBearerToken(t *testing.T) {
	entries := []struct {
		header string
		token  string
		ok     bool
	}{
		{"", "", false},
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"abc", "", false},
	}
	for _, e := range entries {
		r := httptest.NewRequest("GET", "/", nil)
		if e.header != "" {
			r.Header.Set("Authorization", e.header)
		}
		token, ok := BearerToken(r)
		if token != e.token || ok != e.ok {
			t.Errorf("BearerToken(%q) = %q, %t, want %q, %t", e.header, token, ok, e.token, e.ok)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	type req struct {
		Reason string `validate:"required"`
	}
	if err := Validate().Struct(req{}); err == nil {
		t.Errorf("empty reason should fail validation")
	}
	if err := Validate().Struct(req{Reason: "spam"}); err != nil {
		t.Errorf("reason should pass validation: %s", err)
	}
}
