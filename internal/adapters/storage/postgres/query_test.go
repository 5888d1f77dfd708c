package postgres

import (
	"testing"

	"animal-adoption/internal/domain/animals"
)

func TestBuildWhere_Empty(t *testing.T) {
	where, args, err := buildWhere(animals.Predicate{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != "" || len(args) != 0 {
		t.Fatalf("expected no clause, got %q %v", where, args)
	}
}

func TestBuildWhere_FiltersAndSearch(t *testing.T) {
	age := 2
	p := animals.NewPredicate(animals.Filter{
		Search: "Re_x",
		Breed:  "Boxer",
		Age:    &age,
		Gender: "MALE",
	})

	where, args, err := buildWhere(p, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := " WHERE breed = $1 AND age = $2 AND gender = $3 AND (name ILIKE $4 OR breed ILIKE $5)"
	if where != want {
		t.Fatalf("where:\n got %q\nwant %q", where, want)
	}

	wantArgs := []any{"boxer", 2, "male", `%Re\_x%`, `%Re\_x%`}
	if len(args) != len(wantArgs) {
		t.Fatalf("expected %d args, got %v", len(wantArgs), args)
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, wantArgs[i], args[i])
		}
	}
}

func TestBuildWhere_StartsAtArgN(t *testing.T) {
	p := animals.NewPredicate(animals.Filter{Size: "small"})

	where, _, err := buildWhere(p, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != " WHERE size = $3" {
		t.Fatalf("unexpected clause %q", where)
	}
}

func TestBuildWhere_RejectsUnknown(t *testing.T) {
	cases := []animals.Predicate{
		{All: []animals.Condition{{Field: "owner", Op: animals.OpEq, Value: "x"}}},
		{All: []animals.Condition{{Field: animals.FieldName, Op: "regex", Value: "x"}}},
		{Any: []animals.Condition{{Field: animals.FieldAge, Op: animals.OpContainsFold, Value: 3}}},
	}
	for _, p := range cases {
		if _, _, err := buildWhere(p, 1); err == nil {
			t.Fatalf("expected error for %#v", p)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"rex":      "rex",
		"100%":     `100\%`,
		"a_b":      `a\_b`,
		`back\sl`:  `back\\sl`,
		`%_\`:      `\%\_\\`,
		"Golden R": "Golden R",
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q): expected %q, got %q", in, want, got)
		}
	}
}
