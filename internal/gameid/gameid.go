// Package gameid generates sortable identifiers for games and tournaments.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, lower case.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random half of an ID. *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates UUIDv7 based IDs encoded as 26 character base32 strings.
// IDs from one generator sort by creation time.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil clock uses the wall clock and a nil
// source uses crypto/rand.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: rand}
}

// Generate creates an ID with the wall clock and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new ID.
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: reading random bytes: " + err.Error())
	}

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // variant 10
	return id
}

// encode writes the 128 bits as 26 five-bit groups. The first group only
// carries three bits, so the leading character is always 0-7.
func encode(data [16]byte) string {
	var hi, lo uint64
	for i := range 8 {
		hi = hi<<8 | uint64(data[i])
		lo = lo<<8 | uint64(data[i+8])
	}

	out := make([]byte, 26)
	for i := 25; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id has the shape produced by Generate.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("id must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
