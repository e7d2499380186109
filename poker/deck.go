package poker

import (
	"math/rand/v2"
)

// Deck represents a standard 52-card deck
type Deck struct {
	cards [52]Card
	next  int
}

// NewDeck creates a deck shuffled with the given RNG. The same RNG state always
// yields the same order, which is what makes hands replayable.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{}
	i := 0
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// NewStackedDeck creates a deck that deals the given cards first, followed by
// the remaining cards in a fixed order.
func NewStackedDeck(top ...Card) *Deck {
	d := &Deck{}
	used := NewHand(top...)
	i := copy(d.cards[:], top)
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			c := NewCard(rank, suit)
			if used&Hand(c) != 0 || i >= len(d.cards) {
				continue
			}
			d.cards[i] = c
			i++
		}
	}
	return d
}

// Deal deals n cards from the deck, or nil if not enough remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// Skip discards n cards, used to fast-forward a reconstructed deck.
func (d *Deck) Skip(n int) {
	d.next = min(d.next+n, len(d.cards))
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
