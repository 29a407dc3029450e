package runtime

import "testing"

func TestValue_Truthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"zero", Number(0), false},
		{"nonzero", Number(-1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("a"), true},
		{"false", Boolean(false), false},
		{"true", Boolean(true), true},
		{"array always truthy", ArrayVal(&Array{}), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%s: Truthy() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestValue_Equals(t *testing.T) {
	if !Number(1).Equals(Number(1)) {
		t.Errorf("1 == 1 should be true")
	}
	if Number(1).Equals(String("1")) {
		t.Errorf("Number(1) should not equal String(\"1\") across tags")
	}
	if !String("a").Equals(String("a")) {
		t.Errorf("equal strings should compare equal")
	}

	a1 := ArrayVal(&Array{Elements: []Value{Number(1)}})
	a2 := ArrayVal(&Array{Elements: []Value{Number(1)}})
	if a1.Equals(a2) {
		t.Errorf("arrays should compare by identity, not structurally")
	}
	if !a1.Equals(a1) {
		t.Errorf("an array should equal itself")
	}
}

func TestValue_Display(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null, "null"},
		{Number(3), "3"},
		{Number(3.5), "3.5"},
		{Boolean(true), "true"},
		{Boolean(false), "false"},
		{String("hi"), "hi"},
		{ArrayVal(&Array{Elements: []Value{Number(1), String("x")}}), "[1, x]"},
	}
	for _, c := range cases {
		if got := c.v.Display(); got != c.want {
			t.Errorf("Display() = %q, want %q", got, c.want)
		}
	}
}
