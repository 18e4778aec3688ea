package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindColor
	KindVec2
	KindInsets
	KindTexture
)

var kindNames = [...]string{"string", "int", "float", "bool", "color", "vec2", "insets", "texture"}

func (k ValueKind) String() string {
	if k < KindString || k > KindTexture {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a typed style field value.
type Value struct {
	kind   ValueKind
	str    string
	num    int
	float  float64
	flag   bool
	color  colors.Color
	vec    geom.Point
	insets geom.Insets
	tex    Texture
}

func StringValue(s string) Value       { return Value{kind: KindString, str: s} }
func IntValue(n int) Value             { return Value{kind: KindInt, num: n} }
func FloatValue(f float64) Value       { return Value{kind: KindFloat, float: f} }
func BoolValue(b bool) Value           { return Value{kind: KindBool, flag: b} }
func ColorValue(c colors.Color) Value  { return Value{kind: KindColor, color: c} }
func Vec2Value(x, y int) Value         { return Value{kind: KindVec2, vec: geom.Pt(x, y)} }
func InsetsValue(in geom.Insets) Value { return Value{kind: KindInsets, insets: in} }
func TextureValue(t Texture) Value     { return Value{kind: KindTexture, tex: t} }
func (v Value) Kind() ValueKind        { return v.kind }

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindInt:
		return fmt.Sprint(v.num)
	case KindFloat:
		return fmt.Sprint(v.float)
	case KindBool:
		return fmt.Sprint(v.flag)
	case KindColor:
		return fmt.Sprint(v.color)
	case KindVec2:
		return fmt.Sprintf("(%d, %d)", v.vec.X, v.vec.Y)
	case KindInsets:
		return fmt.Sprint(v.insets)
	default:
		return fmt.Sprintf("texture(%d)", v.tex)
	}
}

// Rules is the field set of one style class.
type Rules map[string]Value

// StyleSheet maps class names to rules.
type StyleSheet struct {
	classes map[string]Rules
}

func NewStyleSheet() *StyleSheet {
	return &StyleSheet{classes: make(map[string]Rules)}
}

// Set merges rules into class, overriding fields already present.
func (s *StyleSheet) Set(class string, rules Rules) {
	dst, ok := s.classes[class]
	if !ok {
		dst = make(Rules, len(rules))
		s.classes[class] = dst
	}
	for k, v := range rules {
		dst[k] = v
	}
}

// Merge copies every class of other into s field by field.
func (s *StyleSheet) Merge(other *StyleSheet) {
	if other == nil {
		return
	}
	for class, rules := range other.classes {
		s.Set(class, rules)
	}
}

func (s *StyleSheet) Get(class string) (Rules, bool) {
	r, ok := s.classes[class]
	return r, ok
}

// Classes returns the class names in sorted order.
func (s *StyleSheet) Classes() []string {
	out := make([]string, 0, len(s.classes))
	for c := range s.classes {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Query merges the rules of classes in order. Later classes override earlier
// ones field by field. Unknown classes contribute nothing.
func (s *StyleSheet) Query(classes ...string) *StyleQuery {
	q := &StyleQuery{fields: make(map[string]Value)}
	for _, c := range classes {
		for k, v := range s.classes[c] {
			q.fields[k] = v
		}
	}
	return q
}

// StyleQuery is a merged field map. Widgets consume fields from it with Take.
type StyleQuery struct {
	fields    map[string]Value
	malformed []*MalformedStyleError
}

func (q *StyleQuery) Len() int { return len(q.fields) }

func (q *StyleQuery) Lookup(key string) (Value, bool) {
	v, ok := q.fields[key]
	return v, ok
}

// Malformed returns the fields that had the wrong shape when taken.
func (q *StyleQuery) Malformed() []*MalformedStyleError { return q.malformed }

// StyleType lists the Go types a style field can be taken as.
type StyleType interface {
	string | int | float64 | bool | colors.Color | geom.Point | geom.Size | geom.Insets | Texture
}

// Take removes key from q and converts it to T. A missing field yields def.
// A field of the wrong shape also yields def and is recorded in q.Malformed.
func Take[T StyleType](q *StyleQuery, key string, def T) T {
	v, ok := q.fields[key]
	if !ok {
		return def
	}
	delete(q.fields, key)
	out, want, ok := convert[T](v)
	if !ok {
		q.malformed = append(q.malformed, &MalformedStyleError{Key: key, Want: want, Got: v.kind})
		return def
	}
	return out
}

func convert[T StyleType](v Value) (out T, want string, ok bool) {
	switch p := any(&out).(type) {
	case *string:
		*p, want, ok = v.str, "string", v.kind == KindString
	case *int:
		*p, want, ok = v.num, "int", v.kind == KindInt
	case *float64:
		want = "float"
		switch v.kind {
		case KindFloat:
			*p, ok = v.float, true
		case KindInt:
			*p, ok = float64(v.num), true
		}
	case *bool:
		*p, want, ok = v.flag, "bool", v.kind == KindBool
	case *colors.Color:
		*p, want, ok = v.color, "color", v.kind == KindColor
	case *geom.Point:
		*p, want, ok = v.vec, "vec2", v.kind == KindVec2
	case *geom.Size:
		want = "size"
		if v.kind == KindVec2 && v.vec.X >= 0 && v.vec.Y >= 0 {
			*p, ok = geom.Size{W: v.vec.X, H: v.vec.Y}, true
		}
	case *geom.Insets:
		want = "insets"
		switch v.kind {
		case KindInsets:
			*p, ok = v.insets, true
		case KindInt:
			*p, ok = geom.Uniform(v.num), true
		}
	case *Texture:
		*p, want, ok = v.tex, "texture", v.kind == KindTexture
	}
	if !ok {
		var zero T
		out = zero
	}
	return out, want, ok
}

// IsTextureKey reports whether a field designates a texture: its last
// dash-separated segment is "texture".
func IsTextureKey(key string) bool {
	if i := strings.LastIndexByte(key, '-'); i >= 0 {
		key = key[i+1:]
	}
	return key == "texture"
}

// DefaultStyles holds the built-in defaults, one class per widget type.
// Widget queries start with the type class so user classes override them.
func DefaultStyles() *StyleSheet {
	s := NewStyleSheet()
	s.Set("panel", Rules{
		"background-color": ColorValue(colors.Luma(0.12, 0.9)),
		"padding":          InsetsValue(geom.Uniform(8)),
		"pointer-opaque":   BoolValue(true),
	})
	s.Set("button", Rules{
		"size":           Vec2Value(128, 32),
		"normal-color":   ColorValue(colors.Luma(0.25, 1)),
		"hovered-color":  ColorValue(colors.Luma(0.35, 1)),
		"pressed-color":  ColorValue(colors.Luma(0.18, 1)),
		"disabled-color": ColorValue(colors.Luma(0.2, 0.5)),
		"toggled-color":  ColorValue(colors.RGBA(0.2, 0.35, 0.6, 1)),
		"label-class":    StringValue("button-label"),
	})
	s.Set("button-label", Rules{
		"h-align": StringValue("middle"),
		"v-align": StringValue("middle"),
	})
	s.Set("text", Rules{
		"font-size":  FloatValue(16),
		"text-color": ColorValue(colors.White),
		"h-align":    StringValue("start"),
		"v-align":    StringValue("start"),
	})
	s.Set("image", Rules{
		"size":  Vec2Value(64, 64),
		"color": ColorValue(colors.White),
	})
	s.Set("container", Rules{
		"strategy": StringValue("flow"),
		"padding":  IntValue(4),
	})
	s.Set("toggle-group", Rules{
		"direction": StringValue("horizontal"),
		"inside":    IntValue(4),
	})
	return s
}
