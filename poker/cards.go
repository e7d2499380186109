package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card encoded as one bit: suit*13 + rank.
type Card uint64

// Hand is a set of cards as a bitfield.
type Hand uint64

// Ranks, deuce through ace.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the card rank (0 = deuce, 12 = ace).
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the card suit.
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

// Valid reports whether exactly one card bit is set.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && c.index() < 52
}

// String returns the two character form, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// MarshalText encodes the card as its two character form.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d", uint64(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses the two character form.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a card such as "As", "Td" or "2c".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q: expected 2 characters", s)
	}
	rank := strings.IndexByte(rankChars, strings.ToUpper(s[:1])[0])
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank in card %q", s)
	}
	suit := strings.IndexByte(suitChars, strings.ToLower(s[1:])[0])
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit in card %q", s)
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a list of cards, with or without spaces ("AsKd" or "As Kd").
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length %d", len(s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// NewHand builds a hand from cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask of cards of the given suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint(suit) * 13)) & 0x1FFF)
}

// Cards returns the cards in the hand, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// FormatCards joins card strings with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
