// Package appearance packs and unpacks the DIS entity appearance word.
//
// Bits are numbered from the least significant bit (bit 0). The ranges below are
// fixed by the protocol.
package appearance

import "github.com/gift-interop/disbridge/pkg/core"

// Bit ranges of the appearance word, inclusive.
const (
	DamageStartBit  = 3
	DamageEndBit    = 4
	PostureStartBit = 16
	PostureEndBit   = 19
	StateBit        = 23
)

// Damage codes of bits [3,4].
const (
	NoDamage       uint32 = 0
	SlightDamage   uint32 = 1
	ModerateDamage uint32 = 2
	Destroyed      uint32 = 3
)

// State codes of bit 23.
const (
	StateActive   uint32 = 0
	StateInactive uint32 = 1
)

func mask(startBit, endBit uint) uint32 {
	width := endBit - startBit + 1
	if width >= 32 {
		return ^uint32(0)
	}
	return (uint32(1)<<width - 1) << startBit
}

// ReadField extracts the unsigned value held in bits [startBit, endBit].
func ReadField(word uint32, startBit, endBit uint) uint32 {
	return (word & mask(startBit, endBit)) >> startBit
}

// WriteField returns word with bits [startBit, endBit] replaced by value.
// Bits of value that do not fit the range are dropped; all other bits of word
// are left untouched.
func WriteField(word uint32, startBit, endBit uint, value uint32) uint32 {
	m := mask(startBit, endBit)
	return word&^m | (value<<startBit)&m
}

// DecodeDamage reads the damage field. Codes without a mapping decode as Healthy.
func DecodeDamage(word uint32) core.DamageLevel {
	switch ReadField(word, DamageStartBit, DamageEndBit) {
	case SlightDamage:
		return core.SlightDamage
	case ModerateDamage:
		return core.ModerateDamage
	case Destroyed:
		return core.Destroyed
	default:
		// NoDamage, and anything else
		return core.Healthy
	}
}

// EncodeDamage writes the damage field. Unknown levels leave the field unchanged.
func EncodeDamage(level core.DamageLevel, word uint32) uint32 {
	var code uint32
	switch level {
	case core.Healthy:
		code = NoDamage
	case core.SlightDamage:
		code = SlightDamage
	case core.ModerateDamage:
		code = ModerateDamage
	case core.Destroyed:
		code = Destroyed
	default:
		return word
	}
	return WriteField(word, DamageStartBit, DamageEndBit, code)
}

// DecodePosture reads the life-form state field as a posture code.
func DecodePosture(word uint32) core.Posture {
	return core.Posture(ReadField(word, PostureStartBit, PostureEndBit))
}

// EncodePosture writes the life-form state field.
func EncodePosture(posture core.Posture, word uint32) uint32 {
	return WriteField(word, PostureStartBit, PostureEndBit, uint32(posture))
}

// DecodeActive reads the state bit: 0 is active, 1 is inactive.
func DecodeActive(word uint32) bool {
	return ReadField(word, StateBit, StateBit) == StateActive
}

// EncodeActive writes the state bit.
func EncodeActive(active bool, word uint32) uint32 {
	state := StateInactive
	if active {
		state = StateActive
	}
	return WriteField(word, StateBit, StateBit, state)
}

// Decode reads every field the platform models.
func Decode(word uint32) core.Appearance {
	return core.Appearance{
		Damage:  DecodeDamage(word),
		Posture: DecodePosture(word),
		Active:  DecodeActive(word),
	}
}

// Encode builds an appearance word from scratch.
func Encode(a core.Appearance) uint32 {
	var word uint32
	word = EncodeDamage(a.Damage, word)
	word = EncodePosture(a.Posture, word)
	word = EncodeActive(a.Active, word)
	return word
}
