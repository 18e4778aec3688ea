package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"gopkg.in/yaml.v3"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/ui"
)

// LoadStyles reads a style document. Files ending in .css are parsed as a
// class stylesheet; everything else is YAML mapping class names to fields.
// Texture fields are resolved through textures, which may be nil when the
// document has none.
func LoadStyles(path string, textures ui.TextureResolver) (*ui.StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load styles: %w", err)
	}
	var sheet *ui.StyleSheet
	if strings.EqualFold(filepath.Ext(path), ".css") {
		sheet, err = ParseStylesCSS(string(data), textures)
	} else {
		sheet, err = ParseStylesYAML(data, textures)
	}
	if err != nil {
		return nil, fmt.Errorf("load styles %q: %w", path, err)
	}
	return sheet, nil
}

// ParseStylesYAML decodes a YAML style document:
//
//	button:
//	  size: [140, 32]
//	  normal-color: "#3a3a3a"
//	  padding: [4, 8, 4, 8]
//	  background-texture: button-bg
//
// Integer pairs are vec2, integer quads are insets in top, right, bottom,
// left order, three or four floats are a color and "#" strings are hex colors.
func ParseStylesYAML(data []byte, textures ui.TextureResolver) (*ui.StyleSheet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	sheet := ui.NewStyleSheet()
	if len(doc.Content) == 0 {
		return sheet, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of classes", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		class, body := root.Content[i].Value, root.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: class %q: expected a mapping of fields", body.Line, class)
		}
		rules := make(ui.Rules, len(body.Content)/2)
		for j := 0; j+1 < len(body.Content); j += 2 {
			key := body.Content[j].Value
			v, err := yamlValue(key, body.Content[j+1], textures)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s.%s: %w", body.Content[j+1].Line, class, key, err)
			}
			rules[key] = v
		}
		sheet.Set(class, rules)
	}
	return sheet, nil
}

func yamlValue(key string, n *yaml.Node, textures ui.TextureResolver) (ui.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			v, err := strconv.Atoi(n.Value)
			if err != nil {
				return ui.Value{}, err
			}
			return ui.IntValue(v), nil
		case "!!float":
			v, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return ui.Value{}, err
			}
			return ui.FloatValue(v), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return ui.Value{}, err
			}
			return ui.BoolValue(b), nil
		case "!!str":
			return wordValue(key, n.Value, textures)
		}
		return ui.Value{}, fmt.Errorf("unsupported scalar %s", n.ShortTag())
	case yaml.SequenceNode:
		ints := make([]int, 0, len(n.Content))
		floats := make([]float64, 0, len(n.Content))
		allInts := true
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return ui.Value{}, errors.New("nested sequences are not supported")
			}
			f, err := strconv.ParseFloat(item.Value, 64)
			if err != nil {
				return ui.Value{}, fmt.Errorf("sequence item %q is not a number", item.Value)
			}
			floats = append(floats, f)
			if item.ShortTag() == "!!int" {
				ints = append(ints, int(f))
			} else {
				allInts = false
			}
		}
		if allInts {
			return numbersValue(ints)
		}
		if len(floats) == 3 || len(floats) == 4 {
			c := colors.Color{0, 0, 0, 1}
			for i, f := range floats {
				c[i] = float32(f)
			}
			return ui.ColorValue(c), nil
		}
		return ui.Value{}, fmt.Errorf("expected 3 or 4 color components, got %d", len(floats))
	}
	return ui.Value{}, errors.New("expected a scalar or a sequence")
}

// wordValue interprets a bare string field: a texture name under texture
// keys, a hex color when it starts with '#', a plain string otherwise.
func wordValue(key, s string, textures ui.TextureResolver) (ui.Value, error) {
	if ui.IsTextureKey(key) {
		if textures == nil {
			return ui.Value{}, fmt.Errorf("texture %q: no textures loaded", s)
		}
		t, ok := textures.Texture(s)
		if !ok {
			return ui.Value{}, fmt.Errorf("unknown texture %q", s)
		}
		return ui.TextureValue(t), nil
	}
	if strings.HasPrefix(s, "#") {
		c, ok := colors.ParseHex(s)
		if !ok {
			return ui.Value{}, fmt.Errorf("invalid hex color %q", s)
		}
		return ui.ColorValue(c), nil
	}
	return ui.StringValue(s), nil
}

// numbersValue maps integer lists the way CSS box shorthands do: one is a
// plain int, two a vec2, three and four insets.
func numbersValue(n []int) (ui.Value, error) {
	switch len(n) {
	case 1:
		return ui.IntValue(n[0]), nil
	case 2:
		return ui.Vec2Value(n[0], n[1]), nil
	case 3:
		return ui.InsetsValue(geom.Insets{Top: n[0], Right: n[1], Bottom: n[2], Left: n[1]}), nil
	case 4:
		return ui.InsetsValue(geom.Insets{Top: n[0], Right: n[1], Bottom: n[2], Left: n[3]}), nil
	}
	return ui.Value{}, fmt.Errorf("expected 1 to 4 numbers, got %d", len(n))
}

// ParseStylesCSS parses a class stylesheet:
//
//	.button, .toggle { size: 140px 32px; normal-color: #3a3a3a; }
//
// Only class selectors are accepted. Lengths may carry a px unit; colors are
// hex or rgb()/rgba(). Later rules override earlier ones field by field.
func ParseStylesCSS(src string, textures ui.TextureResolver) (*ui.StyleSheet, error) {
	sheet := ui.NewStyleSheet()
	p := css.NewParser(parse.NewInputString(src), false)
	var (
		classes []string
		rules   ui.Rules
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == io.EOF {
				return sheet, nil
			}
			if err == nil {
				err = fmt.Errorf("malformed css near %q", data)
			}
			return nil, err
		case css.QualifiedRuleGrammar, css.BeginRulesetGrammar:
			for _, group := range splitSelectors(p.Values()) {
				class, err := cssSelector(group)
				if err != nil {
					return nil, err
				}
				classes = append(classes, class)
			}
			if gt == css.BeginRulesetGrammar {
				rules = make(ui.Rules)
			}
		case css.DeclarationGrammar:
			if rules == nil {
				return nil, fmt.Errorf("declaration %q outside a rule", data)
			}
			key := strings.ToLower(string(data))
			v, err := cssValue(key, p.Values(), textures)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", strings.Join(classes, ", "), key, err)
			}
			rules[key] = v
		case css.EndRulesetGrammar:
			for _, c := range classes {
				sheet.Set(c, rules)
			}
			classes, rules = nil, nil
		case css.BeginAtRuleGrammar, css.AtRuleGrammar:
			return nil, fmt.Errorf("at-rule %s is not supported", data)
		}
	}
}

// splitSelectors splits a selector list on its commas.
func splitSelectors(tokens []css.Token) [][]css.Token {
	var groups [][]css.Token
	start := 0
	for i, t := range tokens {
		if t.TokenType == css.CommaToken {
			groups = append(groups, tokens[start:i])
			start = i + 1
		}
	}
	return append(groups, tokens[start:])
}

func cssSelector(tokens []css.Token) (string, error) {
	tokens = trimSpace(tokens)
	if len(tokens) == 2 && tokens[0].TokenType == css.DelimToken && string(tokens[0].Data) == "." &&
		tokens[1].TokenType == css.IdentToken {
		return string(tokens[1].Data), nil
	}
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return "", fmt.Errorf("selector %q: only single class selectors are supported", b.String())
}

func trimSpace(tokens []css.Token) []css.Token {
	out := tokens[:0:0]
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			out = append(out, t)
		}
	}
	return out
}

func cssValue(key string, tokens []css.Token, textures ui.TextureResolver) (ui.Value, error) {
	tokens = trimSpace(tokens)
	if len(tokens) == 0 {
		return ui.Value{}, errors.New("empty value")
	}
	first := tokens[0]
	switch first.TokenType {
	case css.HashToken:
		c, ok := colors.ParseHex(string(first.Data))
		if !ok || len(tokens) != 1 {
			return ui.Value{}, fmt.Errorf("invalid color %q", first.Data)
		}
		return ui.ColorValue(c), nil
	case css.FunctionToken:
		name := strings.ToLower(strings.TrimSuffix(string(first.Data), "("))
		if name != "rgb" && name != "rgba" {
			return ui.Value{}, fmt.Errorf("unsupported function %s()", name)
		}
		return cssRGB(tokens[1:])
	case css.IdentToken:
		s := string(first.Data)
		if len(tokens) != 1 {
			return ui.Value{}, fmt.Errorf("unexpected tokens after %q", s)
		}
		switch strings.ToLower(s) {
		case "true":
			return ui.BoolValue(true), nil
		case "false":
			return ui.BoolValue(false), nil
		}
		return wordValue(key, s, textures)
	case css.StringToken:
		return wordValue(key, strings.Trim(string(first.Data), `"'`), textures)
	case css.URLToken:
		s := strings.TrimSuffix(strings.TrimPrefix(string(first.Data), "url("), ")")
		return wordValue(key, strings.Trim(s, `"'`), textures)
	}

	// Numbers: a single float stays a float, integer lists become box shorthands.
	if len(tokens) == 1 && first.TokenType == css.NumberToken {
		s := string(first.Data)
		if n, err := strconv.Atoi(s); err == nil {
			return ui.IntValue(n), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ui.Value{}, err
		}
		return ui.FloatValue(f), nil
	}
	ints := make([]int, 0, len(tokens))
	for _, t := range tokens {
		n, ok := ParsePx(t)
		if !ok {
			return ui.Value{}, fmt.Errorf("unexpected %q", t.Data)
		}
		ints = append(ints, n)
	}
	return numbersValue(ints)
}

// ParsePx parses an integer number or px dimension token.
func ParsePx(t css.Token) (int, bool) {
	s := string(t.Data)
	switch t.TokenType {
	case css.NumberToken:
	case css.DimensionToken:
		if !strings.HasSuffix(strings.ToLower(s), "px") {
			return 0, false
		}
		s = s[:len(s)-2]
	default:
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// cssRGB reads the arguments of rgb() or rgba(): channels in 0..255, alpha
// in 0..1.
func cssRGB(args []css.Token) (ui.Value, error) {
	var comps []float64
	for _, t := range args {
		switch t.TokenType {
		case css.CommaToken:
		case css.RightParenthesisToken:
		case css.NumberToken:
			f, err := strconv.ParseFloat(string(t.Data), 64)
			if err != nil {
				return ui.Value{}, err
			}
			comps = append(comps, f)
		default:
			return ui.Value{}, fmt.Errorf("unexpected %q in rgb()", t.Data)
		}
	}
	if len(comps) != 3 && len(comps) != 4 {
		return ui.Value{}, fmt.Errorf("rgb() takes 3 or 4 components, got %d", len(comps))
	}
	c := colors.Color{0, 0, 0, 1}
	for i := 0; i < 3; i++ {
		c[i] = float32(comps[i] / 255)
	}
	if len(comps) == 4 {
		c[3] = float32(comps[3])
	}
	return ui.ColorValue(c), nil
}
