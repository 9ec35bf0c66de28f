package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SpreadKind classifies how the user's raw input was interpreted.
type SpreadKind string

const (
	SpreadRoleBased SpreadKind = "role_based"
	Spread3Default  SpreadKind = "3cards_default"
	Spread5Default  SpreadKind = "5cards_default"
	Spread7Default  SpreadKind = "7cards_default"
	SpreadList      SpreadKind = "list"
)

// NormalizedSpread is role-labeled (or listed) text ready to embed in a
// generation prompt, with bare numerals already resolved to major arcana.
type NormalizedSpread struct {
	Kind     SpreadKind
	Rendered string
}

// roleLabels is the fixed role vocabulary recognized in user input.
var roleLabels = []string{
	"現状", "課題", "助言", "相手", "本音", "障害", "打開", "近未来", "着地",
}

// roleSeparators are the runes that may follow a role label for the input to
// count as already role-labeled.
const roleSeparators = "：:＝=→"

var (
	roles3 = []string{"現状", "課題", "助言"}
	roles5 = []string{"現状", "相手", "本音", "障害", "打開"}
	roles7 = []string{"現状", "相手", "本音", "障害", "打開", "近未来", "着地"}
)

// Normalize parses raw user card/spread text into a normalized spread. It
// never fails: empty input yields an empty 3-role placeholder and any shape
// that fits no default spread degrades to the list rendering.
func Normalize(raw string) NormalizedSpread {
	text := strings.TrimSpace(raw)
	if text == "" {
		return NormalizedSpread{
			Kind:     SpreadRoleBased,
			Rendered: "現状：\n課題：\n助言：",
		}
	}

	if hasRoleLabel(text) {
		return NormalizedSpread{
			Kind:     SpreadRoleBased,
			Rendered: resolveBareNumerals(text),
		}
	}

	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if name, ok := MajorArcana(tok); ok {
			tokens[i] = name
		}
	}

	switch len(tokens) {
	case 3:
		return NormalizedSpread{Kind: Spread3Default, Rendered: renderRoles(roles3, tokens)}
	case 5:
		return NormalizedSpread{Kind: Spread5Default, Rendered: renderRoles(roles5, tokens)}
	case 7:
		return NormalizedSpread{Kind: Spread7Default, Rendered: renderRoles(roles7, tokens)}
	default:
		return NormalizedSpread{Kind: SpreadList, Rendered: renderList(tokens)}
	}
}

// hasRoleLabel reports whether any role label occurs immediately followed by
// a separator rune. A label followed by plain prose (相手の気持ち) does not
// count.
func hasRoleLabel(text string) bool {
	for _, label := range roleLabels {
		rest := text
		for {
			j := strings.Index(rest, label)
			if j < 0 {
				break
			}
			after := rest[j+len(label):]
			if after != "" {
				r, _ := utf8.DecodeRuneInString(after)
				if strings.ContainsRune(roleSeparators, r) {
					return true
				}
			}
			rest = after
		}
	}
	return false
}

// resolveBareNumerals replaces runs of 1-2 ASCII digits with the matching
// major-arcana name, in place. A run is bare only when neither neighbouring
// rune is a letter, so 13日 survives while 課題：13 resolves. Runs with no
// mapping pass through verbatim.
func resolveBareNumerals(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); {
		if !isASCIIDigit(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isASCIIDigit(runes[j]) {
			j++
		}
		run := string(runes[i:j])
		bare := j-i <= 2 &&
			(i == 0 || !unicode.IsLetter(runes[i-1])) &&
			(j == len(runes) || !unicode.IsLetter(runes[j]))
		if name, ok := MajorArcana(run); ok && bare {
			b.WriteString(name)
		} else {
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func renderRoles(roles, values []string) string {
	lines := make([]string, len(roles))
	for i, role := range roles {
		lines[i] = role + "：" + values[i]
	}
	return strings.Join(lines, "\n")
}

func renderList(tokens []string) string {
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = fmt.Sprintf("%d. %s", i+1, tok)
	}
	return strings.Join(lines, "\n")
}
