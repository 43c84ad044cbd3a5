package operator

import "testing"

func TestRegisterAndGetAllOperators(t *testing.T) {
	t.Cleanup(func() { delete(registry, "test_type"); delete(registry, "test_mixin") })

	Register("test_type", "equal_to", Text, true)
	Register("test_type", "non_empty", NoInput, false, "Custom Label")
	Register("test_mixin", "is_true", NoInput, false)

	ops := GetAllOperators("test_type", "test_mixin")
	if len(ops) != 3 {
		t.Fatalf("len(ops) = %d, want 3", len(ops))
	}

	byName := map[string]Meta{}
	for _, m := range ops {
		byName[m.Name] = m
	}

	eq, ok := byName["equal_to"]
	if !ok || eq.Label != "Equal To" || eq.InputShape != Text || !eq.Coerce {
		t.Errorf("equal_to meta = %+v", eq)
	}
	ne, ok := byName["non_empty"]
	if !ok || ne.Label != "Custom Label" {
		t.Errorf("non_empty meta = %+v", ne)
	}
	if _, ok := byName["is_true"]; !ok {
		t.Errorf("expected mixin operator is_true in catalog")
	}
}

func TestInputShapeString(t *testing.T) {
	cases := map[InputShape]string{
		Text:           "TEXT",
		Numeric:        "NUMERIC",
		NoInput:        "NO_INPUT",
		Select:         "SELECT",
		SelectMultiple: "SELECT_MULTIPLE",
		Dataframe:      "DATAFRAME",
	}
	for shape, want := range cases {
		if got := shape.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(shape), got, want)
		}
	}
}
