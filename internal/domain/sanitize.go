package domain

import (
	"sort"
	"strings"
	"unicode"
)

// CardPlaceholder is substituted for literal card references in normal-mode
// output.
const CardPlaceholder = "伏せ札"

// SanitizeCardNames replaces literal card references with CardPlaceholder:
// the 22 major-arcana names, plus minor-arcana numeral+suit mentions with the
// numeral written as an ASCII digit, a full-width digit or a kanji numeral,
// in either numeral-suit (３ソード) or suit-の-numeral (ソードの3) order.
//
// A candidate is only replaced at a script boundary: the runes immediately
// before and after the match must not belong to the same script class as the
// matched edge, so 太陽 inside 太陽光 stays untouched. Never fails; worst
// case no replacements are made.
func SanitizeCardNames(text string) string {
	if text == "" {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		lit := matchAt(runes, i)
		if lit == nil {
			b.WriteRune(runes[i])
			i++
			continue
		}
		b.WriteString(CardPlaceholder)
		i += len(lit)
	}
	return b.String()
}

// matchAt returns the longest redaction literal starting at i with clean
// script boundaries, or nil.
func matchAt(runes []rune, i int) []rune {
	for _, lit := range redactions {
		if !hasPrefix(runes[i:], lit) {
			continue
		}
		if boundaryBefore(runes, i, lit[0]) && boundaryAfter(runes, i+len(lit), lit[len(lit)-1]) {
			return lit
		}
	}
	return nil
}

func hasPrefix(runes, prefix []rune) bool {
	if len(runes) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if runes[i] != r {
			return false
		}
	}
	return true
}

func boundaryBefore(runes []rune, i int, edge rune) bool {
	if i == 0 {
		return true
	}
	return !sameScript(runes[i-1], edge)
}

func boundaryAfter(runes []rune, i int, edge rune) bool {
	if i >= len(runes) {
		return true
	}
	return !sameScript(runes[i], edge)
}

type scriptClass int

const (
	scriptOther scriptClass = iota
	scriptHan
	scriptHiragana
	scriptKatakana
	scriptLatin
	scriptDigit
)

func classOf(r rune) scriptClass {
	switch {
	case unicode.Is(unicode.Han, r):
		return scriptHan
	case unicode.Is(unicode.Hiragana, r):
		return scriptHiragana
	// ー is script-common but extends katakana words.
	case unicode.Is(unicode.Katakana, r) || r == 'ー':
		return scriptKatakana
	case unicode.Is(unicode.Latin, r):
		return scriptLatin
	case unicode.IsDigit(r):
		return scriptDigit
	default:
		return scriptOther
	}
}

func sameScript(a, b rune) bool {
	ca := classOf(a)
	return ca != scriptOther && ca == classOf(b)
}

// redactions holds every literal the sanitizer looks for, longest first so
// 女教皇 wins over 教皇 and 10-suits win over their 1-suit suffix.
var redactions = buildRedactions()

var minorNumerals = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
	"１", "２", "３", "４", "５", "６", "７", "８", "９", "１０",
	"一", "二", "三", "四", "五", "六", "七", "八", "九", "十",
}

func buildRedactions() [][]rune {
	var lits []string
	lits = append(lits, majorArcana[:]...)
	for _, suit := range suits {
		for _, num := range minorNumerals {
			lits = append(lits, num+suit, suit+"の"+num)
		}
	}

	out := make([][]rune, len(lits))
	for i, s := range lits {
		out[i] = []rune(s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
