package translate

import (
	"sort"
	"strings"

	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// Dialect names a simulator whose DIS traffic deviates from the generic mapping.
type Dialect string

const (
	// Generic is the default dialect and always present in the table.
	Generic Dialect = ""
	// ARES is the ARES simulator dialect.
	ARES Dialect = "ARES"
)

func (d Dialect) String() string {
	if d == Generic {
		return "generic"
	}
	return string(d)
}

// ParseDialect normalises a configured dialect name. "generic" and the empty
// string both select Generic; other names are matched case-insensitively.
func ParseDialect(name string) Dialect {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "generic") {
		return Generic
	}
	return Dialect(strings.ToUpper(name))
}

// Overrides are the dialect specific steps run after the generic mapping.
// A nil step is skipped.
type Overrides struct {
	EntityState func(src *core.EntityState, dst *pdu.EntityStatePDU)
}

// aresEntityState carries the echelon level in the alternative entity type's
// extra field and replaces the marking text with the display name.
func aresEntityState(src *core.EntityState, dst *pdu.EntityStatePDU) {
	dst.AlternativeEntityType.Extra = src.Type.Echelon.Level()

	if src.Marking.DisplayName != "" {
		dst.Marking.Characters = [pdu.MarkingLength]byte{}
		copy(dst.Marking.Characters[:], src.Marking.DisplayName)
	}
}

// table is read-only once the package is initialised.
var table = map[Dialect]*Translator{
	Generic: {dialect: Generic},
	ARES:    {dialect: ARES, overrides: Overrides{EntityState: aresEntityState}},
}

// Lookup returns the translator registered for d, or the generic translator
// when d is not registered.
func Lookup(d Dialect) *Translator {
	if t, ok := table[d]; ok {
		return t
	}
	return table[Generic]
}

// Registered reports whether d has its own table entry.
func Registered(d Dialect) bool {
	_, ok := table[d]
	return ok
}

// Dialects lists the registered dialects in name order.
func Dialects() []Dialect {
	out := make([]Dialect, 0, len(table))
	for d := range table {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
