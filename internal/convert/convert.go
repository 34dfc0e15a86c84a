// Package convert provides field level conversions between core values and DIS PDU records
package convert

import (
	"bytes"
	"math"

	"github.com/gift-interop/disbridge/internal/distime"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// finite replaces NaN with 0
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// SimulationAddressToPDU converts a core simulation address to its DIS record.
func SimulationAddressToPDU(a core.SimulationAddress) pdu.SimulationAddress {
	return pdu.SimulationAddress{Site: a.Site, Application: a.Application}
}

// SimulationAddressFromPDU converts a DIS simulation address record.
func SimulationAddressFromPDU(a pdu.SimulationAddress) core.SimulationAddress {
	return core.SimulationAddress{Site: a.Site, Application: a.Application}
}

// EntityIDToPDU converts an entity identifier to its DIS record.
func EntityIDToPDU(id core.EntityIdentifier) pdu.EntityID {
	return pdu.EntityID{Address: SimulationAddressToPDU(id.Address), Entity: id.Entity}
}

// EntityIDFromPDU converts a DIS entity identifier record.
func EntityIDFromPDU(id pdu.EntityID) core.EntityIdentifier {
	return core.EntityIdentifier{Address: SimulationAddressFromPDU(id.Address), Entity: id.Entity}
}

// EventIDToPDU converts an event identifier to its DIS record.
func EventIDToPDU(id core.EventIdentifier) pdu.EventID {
	return pdu.EventID{Address: SimulationAddressToPDU(id.Address), Event: id.Event}
}

// EventIDFromPDU converts a DIS event identifier record.
func EventIDFromPDU(id pdu.EventID) core.EventIdentifier {
	return core.EventIdentifier{Address: SimulationAddressFromPDU(id.Address), Event: id.Event}
}

// EntityTypeToPDU converts an entity type to the seven field DIS record.
// Echelon has no DIS field and is dropped.
func EntityTypeToPDU(t core.EntityType) pdu.EntityType {
	return pdu.EntityType{
		Kind:        t.Kind,
		Domain:      t.Domain,
		Country:     t.Country,
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Specific:    t.Specific,
		Extra:       t.Extra,
	}
}

// EntityTypeFromPDU converts a DIS entity type record.
func EntityTypeFromPDU(t pdu.EntityType) core.EntityType {
	return core.EntityType{
		Kind:        t.Kind,
		Domain:      t.Domain,
		Country:     t.Country,
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Specific:    t.Specific,
		Extra:       t.Extra,
	}
}

// VelocityToPDU narrows a velocity vector to single precision.
func VelocityToPDU(v core.Vector3) pdu.LinearVelocity {
	return pdu.LinearVelocity{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// VelocityFromPDU widens a DIS velocity; NaN components become 0.
func VelocityFromPDU(v pdu.LinearVelocity) core.Vector3 {
	return core.Vector3{
		X: finite(float64(v.X)),
		Y: finite(float64(v.Y)),
		Z: finite(float64(v.Z)),
	}
}

// LocationToPDU converts a geocentric location to DIS world coordinates.
func LocationToPDU(v core.Vector3) pdu.WorldCoordinates {
	return pdu.WorldCoordinates{X: v.X, Y: v.Y, Z: v.Z}
}

// LocationFromPDU converts DIS world coordinates; NaN components become 0.
func LocationFromPDU(c pdu.WorldCoordinates) core.Vector3 {
	return core.Vector3{X: finite(c.X), Y: finite(c.Y), Z: finite(c.Z)}
}

// OrientationToPDU maps X, Y, Z onto psi, theta, phi.
func OrientationToPDU(v core.Vector3) pdu.EulerAngles {
	return pdu.EulerAngles{Psi: float32(v.X), Theta: float32(v.Y), Phi: float32(v.Z)}
}

// OrientationFromPDU maps psi, theta, phi onto X, Y, Z; NaN components become 0.
func OrientationFromPDU(e pdu.EulerAngles) core.Vector3 {
	return core.Vector3{
		X: finite(float64(e.Psi)),
		Y: finite(float64(e.Theta)),
		Z: finite(float64(e.Phi)),
	}
}

// MarkingToPDU copies the marking text into the fixed length record.
// Text longer than pdu.MarkingLength bytes is truncated, shorter text is zero padded.
func MarkingToPDU(m core.EntityMarking) pdu.EntityMarking {
	out := pdu.EntityMarking{CharacterSet: m.CharacterSet}
	copy(out.Characters[:], m.Text)
	return out
}

// MarkingFromPDU returns the marking text without its zero padding.
func MarkingFromPDU(m pdu.EntityMarking) core.EntityMarking {
	text := bytes.TrimRight(m.Characters[:], "\x00")
	return core.EntityMarking{CharacterSet: m.CharacterSet, Text: string(text)}
}

// ArticulationParametersToPDU converts the list element-wise. A nil list
// yields an empty, non-nil list.
func ArticulationParametersToPDU(params []core.ArticulationParameter) []pdu.ArticulationParameter {
	out := make([]pdu.ArticulationParameter, 0, len(params))
	for _, p := range params {
		out = append(out, pdu.ArticulationParameter{
			TypeDesignator:  p.Designator,
			ChangeIndicator: p.Change,
			AttachmentID:    p.AttachedTo,
			ParameterType:   p.ParameterType,
			ParameterValue:  p.Value,
		})
	}
	return out
}

// ArticulationParametersFromPDU converts the list element-wise. A nil list
// yields an empty, non-nil list.
func ArticulationParametersFromPDU(params []pdu.ArticulationParameter) []core.ArticulationParameter {
	out := make([]core.ArticulationParameter, 0, len(params))
	for _, p := range params {
		out = append(out, core.ArticulationParameter{
			Designator:    p.TypeDesignator,
			Change:        p.ChangeIndicator,
			AttachedTo:    p.AttachmentID,
			ParameterType: p.ParameterType,
			Value:         p.ParameterValue,
		})
	}
	return out
}

// DeadReckoningAlgorithmFromIndex returns the algorithm for a DIS index.
// Indices without a defined algorithm map to DeadReckoningOther.
func DeadReckoningAlgorithmFromIndex(index uint8) core.DeadReckoningAlgorithm {
	if int(index) < core.DeadReckoningAlgorithmCount {
		return core.DeadReckoningAlgorithm(index)
	}
	return core.DeadReckoningOther
}

// DeadReckoningToPDU converts optional dead reckoning parameters; nil stays nil.
func DeadReckoningToPDU(dr *core.DeadReckoningParameters) *pdu.DeadReckoningParameters {
	if dr == nil {
		return nil
	}
	return &pdu.DeadReckoningParameters{Algorithm: uint8(dr.Algorithm)}
}

// DeadReckoningFromPDU converts optional dead reckoning parameters; nil stays nil.
func DeadReckoningFromPDU(dr *pdu.DeadReckoningParameters) *core.DeadReckoningParameters {
	if dr == nil {
		return nil
	}
	return &core.DeadReckoningParameters{Algorithm: DeadReckoningAlgorithmFromIndex(dr.Algorithm)}
}

// BurstDescriptorToPDU converts a burst descriptor field by field.
func BurstDescriptorToPDU(b core.BurstDescriptor) pdu.BurstDescriptor {
	return pdu.BurstDescriptor{
		MunitionType: EntityTypeToPDU(b.MunitionType),
		Warhead:      b.Warhead,
		Fuse:         b.Fuse,
		Quantity:     b.Quantity,
		Rate:         b.Rate,
	}
}

// BurstDescriptorFromPDU converts a DIS burst descriptor field by field.
func BurstDescriptorFromPDU(b pdu.BurstDescriptor) core.BurstDescriptor {
	return core.BurstDescriptor{
		MunitionType: EntityTypeFromPDU(b.MunitionType),
		Warhead:      b.Warhead,
		Fuse:         b.Fuse,
		Quantity:     b.Quantity,
		Rate:         b.Rate,
	}
}

// DIS detonation result codes with a platform counterpart.
const (
	DetonationResultOther        uint8 = 0
	DetonationResultEntityImpact uint8 = 1
	DetonationResultNone         uint8 = 6
)

// DetonationResultToPDU folds every result but EntityImpact and None into Other.
func DetonationResultToPDU(r core.DetonationResult) uint8 {
	switch r {
	case core.DetonationEntityImpact:
		return DetonationResultEntityImpact
	case core.DetonationNone:
		return DetonationResultNone
	default:
		return DetonationResultOther
	}
}

// DetonationResultFromPDU maps a DIS detonation result code.
func DetonationResultFromPDU(code uint8) core.DetonationResult {
	switch code {
	case DetonationResultEntityImpact:
		return core.DetonationEntityImpact
	case DetonationResultNone:
		return core.DetonationNone
	default:
		return core.DetonationOther
	}
}

// ClockTimeFromMillis encodes UTC milliseconds as hours since epoch plus an
// absolute DIS timestamp.
func ClockTimeFromMillis(utcMillis int64) pdu.ClockTime {
	return pdu.ClockTime{
		Hour:         int32(distime.HoursSinceEpoch(utcMillis)),
		TimePastHour: distime.ToDisTimestamp(utcMillis),
	}
}

// MillisFromClockTime rebuilds UTC milliseconds from a clock encoded with ClockTimeFromMillis.
func MillisFromClockTime(c pdu.ClockTime) int64 {
	return distime.Join(int64(c.Hour), c.TimePastHour)
}

// SimulationClock passes the simulation time through with a zero hour.
// TimePastHour is 32 bits wide: values outside [0, math.MaxUint32] wrap, so
// times past about 49.7 days of milliseconds come back smaller.
func SimulationClock(simulationTime int64) pdu.ClockTime {
	return pdu.ClockTime{Hour: 0, TimePastHour: uint32(simulationTime)}
}

// SimulationTimeFromClock is the inverse of SimulationClock.
func SimulationTimeFromClock(c pdu.ClockTime) int64 {
	return int64(c.TimePastHour)
}
