package domain

import "strconv"

// The catalog is the fixed ordered 78-card deck: 22 major arcana followed by
// 4 suits x 14 ranks. Catalog order is the index space for seeded draws and
// must never change.

var majorArcana = [22]string{
	"愚者",
	"魔術師",
	"女教皇",
	"女帝",
	"皇帝",
	"教皇",
	"恋人",
	"戦車",
	"力",
	"隠者",
	"運命の輪",
	"正義",
	"吊るされた男",
	"死神",
	"節制",
	"悪魔",
	"塔",
	"星",
	"月",
	"太陽",
	"審判",
	"世界",
}

var suits = [4]string{"ワンド", "カップ", "ソード", "ペンタクル"}

var ranks = [14]string{
	"エース", "2", "3", "4", "5", "6", "7", "8", "9", "10",
	"ペイジ", "ナイト", "クイーン", "キング",
}

// CatalogSize is the number of cards in the deck.
const CatalogSize = 78

var catalog = buildCatalog()

func buildCatalog() []string {
	cards := make([]string, 0, CatalogSize)
	cards = append(cards, majorArcana[:]...)
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, suit+"の"+rank)
		}
	}
	return cards
}

// Catalog returns the full deck in catalog order.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

var majorByNumeral = buildNumeralMap()

func buildNumeralMap() map[string]string {
	m := make(map[string]string, len(majorArcana))
	for i, name := range majorArcana {
		m[strconv.Itoa(i)] = name
	}
	return m
}

// MajorArcana resolves a numeral string ("0".."21") to the major-arcana name.
func MajorArcana(numeral string) (string, bool) {
	name, ok := majorByNumeral[numeral]
	return name, ok
}
