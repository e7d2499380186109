package poker

import (
	"fmt"
	"sort"
)

// HandRank represents the strength of a poker hand. Higher values are stronger.
//
// The category sits above bit 20 and up to five tie-break ranks follow in
// descending significance, four bits each.
type HandRank uint32

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handTypeNames = [...]string{
	"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
}

func (t HandType) String() string {
	if int(t) >= len(handTypeNames) {
		return "Unknown"
	}
	return handTypeNames[t]
}

// Type returns the type of hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	return HandType(hr >> 20)
}

// String returns the category name.
func (hr HandRank) String() string {
	return hr.Type().String()
}

func (hr HandRank) tiebreak(i int) uint8 {
	return uint8(hr>>(16-4*i)) & 0xF
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// Evaluation is the best five-card hand found in a set of cards.
type Evaluation struct {
	Rank  HandRank
	Cards []Card // ordered by significance, e.g. the pair first
}

// Description returns a human readable description such as "Full House, Kings over Fives".
func (e Evaluation) Description() string {
	r := e.Rank
	switch r.Type() {
	case StraightFlush:
		if r.tiebreak(0) == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s High", rankName(r.tiebreak(0)))
	case FourOfAKind:
		return "Four of a Kind, " + rankPlural(r.tiebreak(0))
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", rankPlural(r.tiebreak(0)), rankPlural(r.tiebreak(1)))
	case Flush:
		return fmt.Sprintf("Flush, %s High", rankName(r.tiebreak(0)))
	case Straight:
		return fmt.Sprintf("Straight, %s High", rankName(r.tiebreak(0)))
	case ThreeOfAKind:
		return "Three of a Kind, " + rankPlural(r.tiebreak(0))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", rankPlural(r.tiebreak(0)), rankPlural(r.tiebreak(1)))
	case Pair:
		return "Pair of " + rankPlural(r.tiebreak(0))
	default:
		if len(e.Cards) == 0 {
			return "No Hand"
		}
		return rankName(r.tiebreak(0)) + " High"
	}
}

var rankNames = [...]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

func rankName(r uint8) string {
	return rankNames[r%13]
}

func rankPlural(r uint8) string {
	if r == Six {
		return "Sixes"
	}
	return rankName(r) + "s"
}

// EvaluateBest returns the best five-card hand that can be made from the cards.
// With fewer than five cards the partial hand is ranked on pairs and high cards.
func EvaluateBest(cards []Card) Evaluation {
	if len(cards) <= 5 {
		return evaluateFive(cards)
	}

	var best Evaluation
	combo := make([]Card, 5)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			e := evaluateFive(combo)
			if best.Cards == nil || e.Rank > best.Rank {
				e.Cards = append([]Card(nil), e.Cards...)
				best = e
			}
			return
		}
		for i := start; i <= len(cards)-(5-depth); i++ {
			combo[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return best
}

// Evaluate7Cards evaluates the best 5-card hand from a 7 card hand.
func Evaluate7Cards(hand Hand) HandRank {
	if hand.CountCards() != 7 {
		return 0
	}
	return EvaluateBest(hand.Cards()).Rank
}

// evaluateFive ranks up to five cards.
func evaluateFive(cards []Card) Evaluation {
	if len(cards) == 0 {
		return Evaluation{}
	}
	ordered := append([]Card(nil), cards...)
	var counts [13]int
	for _, c := range ordered {
		counts[c.Rank()]++
	}
	// Group order: larger groups first, then higher rank.
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Rank(), ordered[j].Rank()
		if counts[ri] != counts[rj] {
			return counts[ri] > counts[rj]
		}
		return ri > rj
	})

	groups := make([]uint8, 0, 5)
	for i, c := range ordered {
		if i == 0 || c.Rank() != ordered[i-1].Rank() {
			groups = append(groups, c.Rank())
		}
	}

	if len(ordered) == 5 {
		flush := true
		for _, c := range ordered[1:] {
			if c.Suit() != ordered[0].Suit() {
				flush = false
				break
			}
		}
		high, straight := straightHigh(groups)
		if straight && high == Five {
			// Wheel: the ace plays low.
			ordered = append(ordered[1:], ordered[0])
		}
		switch {
		case straight && flush:
			return Evaluation{Rank: pack(StraightFlush, high), Cards: ordered}
		case flush:
			return Evaluation{Rank: pack(Flush, groups...), Cards: ordered}
		case straight:
			return Evaluation{Rank: pack(Straight, high), Cards: ordered}
		}
	}

	first := counts[groups[0]]
	var second int
	if len(groups) > 1 {
		second = counts[groups[1]]
	}
	var t HandType
	switch {
	case first == 4:
		t = FourOfAKind
	case first == 3 && second == 2:
		t = FullHouse
	case first == 3:
		t = ThreeOfAKind
	case first == 2 && second == 2:
		t = TwoPair
	case first == 2:
		t = Pair
	default:
		t = HighCard
	}
	return Evaluation{Rank: pack(t, groups...), Cards: ordered}
}

// straightHigh reports whether five distinct ranks (descending) form a straight.
func straightHigh(ranks []uint8) (uint8, bool) {
	if len(ranks) != 5 {
		return 0, false
	}
	if ranks[0]-ranks[4] == 4 {
		return ranks[0], true
	}
	if ranks[0] == Ace && ranks[1] == Five && ranks[4] == Two {
		return Five, true
	}
	return 0, false
}

func pack(t HandType, ranks ...uint8) HandRank {
	hr := HandRank(t) << 20
	for i, r := range ranks {
		if i == 5 {
			break
		}
		hr |= HandRank(r) << (16 - 4*i)
	}
	return hr
}
