package ui

import (
	"errors"
	"testing"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

func TestStyleOverrideOrder(t *testing.T) {
	s := NewStyleSheet()
	s.Set("a", Rules{"x": IntValue(1), "only-a": StringValue("a")})
	s.Set("b", Rules{"x": IntValue(2)})

	q := s.Query("a", "b")
	if got := Take(q, "x", 0); got != 2 {
		t.Errorf(`["a", "b"] x = %d, want 2`, got)
	}
	if got := Take(q, "only-a", ""); got != "a" {
		t.Errorf("field-by-field merge lost only-a, got %q", got)
	}
	if got := Take(s.Query("b", "a"), "x", 0); got != 1 {
		t.Errorf(`["b", "a"] x = %d, want 1`, got)
	}
	if got := Take(s.Query("missing", "b"), "x", 0); got != 2 {
		t.Errorf("unknown class changed result: %d", got)
	}
}

func TestTake(t *testing.T) {
	s := NewStyleSheet()
	s.Set("c", Rules{
		"n":      IntValue(3),
		"f":      FloatValue(1.5),
		"size":   Vec2Value(10, 20),
		"neg":    Vec2Value(-1, 2),
		"pad":    IntValue(4),
		"color":  StringValue("red"),
		"tint":   ColorValue(colors.Red),
		"flag":   BoolValue(true),
		"insets": InsetsValue(geom.Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}),
	})
	q := s.Query("c")

	if got := Take(q, "n", 0.0); got != 3 {
		t.Errorf("int widened to float = %v", got)
	}
	if got := Take(q, "f", 0.0); got != 1.5 {
		t.Errorf("float = %v", got)
	}
	if got := Take(q, "size", geom.Size{}); got != geom.Sz(10, 20) {
		t.Errorf("size = %v", got)
	}
	if got := Take(q, "neg", geom.Sz(1, 1)); got != geom.Sz(1, 1) {
		t.Errorf("negative vec2 as size = %v, want default", got)
	}
	if got := Take(q, "pad", geom.Insets{}); got != geom.Uniform(4) {
		t.Errorf("int as insets = %v", got)
	}
	if got := Take(q, "color", colors.Blue); got != colors.Blue {
		t.Errorf("malformed color = %v, want default", got)
	}
	if got := Take(q, "tint", colors.Blue); got != colors.Red {
		t.Errorf("tint = %v", got)
	}
	if !Take(q, "flag", false) {
		t.Error("flag = false")
	}
	if got := Take(q, "insets", geom.Insets{}); got.Bottom != 4 {
		t.Errorf("insets = %v", got)
	}
	if got := Take(q, "absent", 7); got != 7 {
		t.Errorf("absent = %d", got)
	}

	if q.Len() != 0 {
		t.Errorf("Take must remove fields, %d left", q.Len())
	}
	bad := q.Malformed()
	if len(bad) != 2 {
		t.Fatalf("malformed = %v, want neg and color", bad)
	}
	var mse *MalformedStyleError
	if !errors.As(error(bad[1]), &mse) || mse.Key != "color" || mse.Got != KindString {
		t.Errorf("malformed[1] = %v", bad[1])
	}
}

func TestIsTextureKey(t *testing.T) {
	for key, want := range map[string]bool{
		"texture":            true,
		"background-texture": true,
		"texture-color":      false,
		"textures":           false,
		"":                   false,
	} {
		if got := IsTextureKey(key); got != want {
			t.Errorf("IsTextureKey(%q) = %v", key, got)
		}
	}
}

func TestStyleSheetMerge(t *testing.T) {
	base := DefaultStyles()
	user := NewStyleSheet()
	user.Set("button", Rules{"size": Vec2Value(64, 16)})
	base.Merge(user)

	r, ok := base.Get("button")
	if !ok {
		t.Fatal("button class missing")
	}
	if _, ok := r["normal-color"]; !ok {
		t.Error("merge replaced the whole class")
	}
	if got := Take(base.Query("button"), "size", geom.Size{}); got != geom.Sz(64, 16) {
		t.Errorf("size = %v", got)
	}
}
