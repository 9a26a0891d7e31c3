package domain_test

import (
	"errors"
	"testing"

	"github.com/ekima-network/ekima/internal/domain"
)

func TestParseRequirement_Valid(t *testing.T) {
	cases := []struct {
		in    string
		field string
		op    domain.Operator
		value float64
	}{
		{"level >= 5", "level", domain.OpGTE, 5},
		{"streak>=7", "streak", domain.OpGTE, 7},
		{"chapter_time <= 600", "chapter_time", domain.OpLTE, 600},
		{"quiz_score == 100", "quiz_score", domain.OpEQ, 100},
		{"total_xp > 999.5", "total_xp", domain.OpGT, 999.5},
		{"attempts < 3", "attempts", domain.OpLT, 3},
	}

	for _, c := range cases {
		req, err := domain.ParseRequirement(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if req.Field != c.field || req.Op != c.op || req.Value != c.value {
			t.Errorf("parse %q: got %+v", c.in, req)
		}
	}
}

func TestParseRequirement_Malformed(t *testing.T) {
	cases := []string{
		"",
		"level",
		"level 5",
		"level => 5",
		">= 5",
		"level >= five",
		"level >=",
	}

	for _, c := range cases {
		if _, err := domain.ParseRequirement(c); !errors.Is(err, domain.ErrMalformedRequirement) {
			t.Errorf("parse %q: expected ErrMalformedRequirement, got %v", c, err)
		}
	}
}

func TestRequirement_Holds(t *testing.T) {
	gte := domain.Requirement{Field: "level", Op: domain.OpGTE, Value: 5}
	if !gte.Holds(5) || !gte.Holds(6) || gte.Holds(4) {
		t.Error(">= boundary wrong")
	}

	lte := domain.Requirement{Field: "chapter_time", Op: domain.OpLTE, Value: 600}
	if !lte.Holds(600) || !lte.Holds(0) || lte.Holds(601) {
		t.Error("<= boundary wrong")
	}

	eq := domain.Requirement{Field: "quiz_score", Op: domain.OpEQ, Value: 100}
	if !eq.Holds(100) || eq.Holds(99.9) {
		t.Error("== boundary wrong")
	}
}

func TestResolve_ContextShadowsSnapshot(t *testing.T) {
	snap := domain.StatSnapshot{"quiz_score": 80, "level": 3}
	ctx := domain.EvalContext{"quiz_score": 100}

	if v := domain.Resolve("quiz_score", snap, ctx); v != 100 {
		t.Errorf("expected context value 100, got %g", v)
	}
	if v := domain.Resolve("level", snap, ctx); v != 3 {
		t.Errorf("expected snapshot value 3, got %g", v)
	}
	if v := domain.Resolve("unknown", snap, ctx); v != 0 {
		t.Errorf("expected 0 for unresolved field, got %g", v)
	}
}
