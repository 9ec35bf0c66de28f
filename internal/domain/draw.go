package domain

// Seeded drawing. The same seed string must produce the same cards forever,
// across processes, so the hash and generator below are fixed recipes: a
// fold-and-multiply string hash feeding a mulberry32 counter generator. Any
// change to either breaks every draw users have already seen.

const (
	hashMultiplier = 2654435761 // Knuth's odd multiplicative constant
	mulberryStep   = 0x6D2B79F5
)

// seedHash folds seed rune by rune into a 32-bit state, order-dependent,
// with a final xor-fold.
func seedHash(seed string) uint32 {
	var h uint32
	for _, r := range seed {
		h = (h + uint32(r)) * hashMultiplier
	}
	return h ^ (h >> 16)
}

// mulberry is a counter-based generator: one increment plus mix per value.
type mulberry struct {
	state uint32
}

func newMulberry(seed uint32) *mulberry {
	return &mulberry{state: seed}
}

// next returns the next value in [0, 1).
func (m *mulberry) next() float64 {
	m.state += mulberryStep
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / (1 << 32)
}

// Draw returns n distinct cards for the given seed, in first-hit order:
// repeated index draws are skipped, so the n-th card depends on the order
// indices came out of the generator, not on catalog order.
func Draw(seed string, n int) ([]string, error) {
	if n < 1 || n > len(catalog) {
		return nil, ErrInvalidDrawCount
	}

	rng := newMulberry(seedHash(seed))
	seen := make(map[int]struct{}, n)
	cards := make([]string, 0, n)
	for len(cards) < n {
		idx := int(rng.next() * float64(len(catalog)))
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		cards = append(cards, catalog[idx])
	}
	return cards, nil
}
