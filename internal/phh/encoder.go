package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/poker"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatAction converts an engine action to a PHH action string. It returns
// false for blind posts, which PHH records in blinds_or_straddles.
func FormatAction(seat int, a game.Action) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch a.Type {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet, game.Raise:
		if !a.Voluntary {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, a.Total), true
	case game.AllIn:
		if a.Raise <= 0 {
			return player + " cc", true
		}
		return fmt.Sprintf("%s cbr %d", player, a.Total), true
	default:
		return fmt.Sprintf("# %s %s %d", player, a.Type, a.Total), true
	}
}

func joinCards(cards []poker.Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}
