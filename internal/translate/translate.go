// Package translate maps platform events to DIS PDU records and back.
//
// Each dialect has one Translator, built once when the package is initialised.
// Translators hold no mutable state and are safe for concurrent use.
package translate

import (
	"errors"
	"fmt"

	"github.com/gift-interop/disbridge/internal/appearance"
	"github.com/gift-interop/disbridge/internal/convert"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// ErrUnsupported is returned for nil values and for types outside the set
// of translated events and PDUs.
var ErrUnsupported = errors.New("unsupported type")

// Translator converts between events and PDUs for one dialect.
type Translator struct {
	dialect   Dialect
	overrides Overrides
}

// Dialect returns the dialect this translator was registered for.
func (t *Translator) Dialect() Dialect {
	return t.dialect
}

// ToPDU translates e with the translator registered for d.
func ToPDU(e core.Event, d Dialect) (pdu.PDU, error) {
	return Lookup(d).ToPDU(e)
}

// ToEvent translates p with the translator registered for d.
func ToEvent(p pdu.PDU, d Dialect) (core.Event, error) {
	return Lookup(d).ToEvent(p)
}

// ToPDU builds a fresh PDU record for e.
func (t *Translator) ToPDU(e core.Event) (pdu.PDU, error) {
	switch v := e.(type) {
	case *core.EntityState:
		if v != nil {
			return t.entityStateToPDU(v), nil
		}
	case *core.WeaponFire:
		if v != nil {
			return weaponFireToPDU(v), nil
		}
	case *core.Detonation:
		if v != nil {
			return detonationToPDU(v), nil
		}
	case *core.Collision:
		if v != nil {
			return collisionToPDU(v), nil
		}
	case *core.RemoveEntity:
		if v != nil {
			return removeEntityToPDU(v), nil
		}
	case *core.StartResume:
		if v != nil {
			return startResumeToPDU(v), nil
		}
	case *core.StopFreeze:
		if v != nil {
			return stopFreezeToPDU(v), nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, e)
}

// ToEvent builds a fresh event for p. Decoding uses the generic rules for
// every dialect.
func (t *Translator) ToEvent(p pdu.PDU) (core.Event, error) {
	switch v := p.(type) {
	case *pdu.EntityStatePDU:
		if v != nil {
			return entityStateFromPDU(v), nil
		}
	case *pdu.FirePDU:
		if v != nil {
			return weaponFireFromPDU(v), nil
		}
	case *pdu.DetonationPDU:
		if v != nil {
			return detonationFromPDU(v), nil
		}
	case *pdu.CollisionPDU:
		if v != nil {
			return collisionFromPDU(v), nil
		}
	case *pdu.RemoveEntityPDU:
		if v != nil {
			return removeEntityFromPDU(v), nil
		}
	case *pdu.StartResumePDU:
		if v != nil {
			return startResumeFromPDU(v), nil
		}
	case *pdu.StopFreezePDU:
		if v != nil {
			return stopFreezeFromPDU(v), nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, p)
}

func (t *Translator) entityStateToPDU(es *core.EntityState) *pdu.EntityStatePDU {
	alt := es.Type
	if es.AlternativeType != nil {
		alt = *es.AlternativeType
	}

	out := &pdu.EntityStatePDU{
		EntityID:               convert.EntityIDToPDU(es.ID),
		ForceID:                es.ForceID,
		EntityType:             convert.EntityTypeToPDU(es.Type),
		AlternativeEntityType:  convert.EntityTypeToPDU(alt),
		LinearVelocity:         convert.VelocityToPDU(es.LinearVelocity),
		Location:               convert.LocationToPDU(es.Location),
		Orientation:            convert.OrientationToPDU(es.Orientation),
		Appearance:             appearance.Encode(es.Appearance),
		DeadReckoning:          convert.DeadReckoningToPDU(es.DeadReckoning),
		Marking:                convert.MarkingToPDU(es.Marking),
		ArticulationParameters: convert.ArticulationParametersToPDU(es.ArticulationParameters),
	}

	if t.overrides.EntityState != nil {
		t.overrides.EntityState(es, out)
	}
	return out
}

func entityStateFromPDU(p *pdu.EntityStatePDU) *core.EntityState {
	alt := convert.EntityTypeFromPDU(p.AlternativeEntityType)
	return &core.EntityState{
		ID:                     convert.EntityIDFromPDU(p.EntityID),
		ForceID:                p.ForceID,
		Type:                   convert.EntityTypeFromPDU(p.EntityType),
		AlternativeType:        &alt,
		LinearVelocity:         convert.VelocityFromPDU(p.LinearVelocity),
		Location:               convert.LocationFromPDU(p.Location),
		Orientation:            convert.OrientationFromPDU(p.Orientation),
		Marking:                convert.MarkingFromPDU(p.Marking),
		ArticulationParameters: convert.ArticulationParametersFromPDU(p.ArticulationParameters),
		DeadReckoning:          convert.DeadReckoningFromPDU(p.DeadReckoning),
		Appearance:             appearance.Decode(p.Appearance),
	}
}

func weaponFireToPDU(wf *core.WeaponFire) *pdu.FirePDU {
	return &pdu.FirePDU{
		FiringEntityID:  convert.EntityIDToPDU(wf.FiringID),
		TargetEntityID:  convert.EntityIDToPDU(wf.TargetID),
		MunitionID:      convert.EntityIDToPDU(wf.MunitionID),
		EventID:         convert.EventIDToPDU(wf.EventID),
		Location:        convert.LocationToPDU(wf.Location),
		BurstDescriptor: convert.BurstDescriptorToPDU(wf.Burst),
		Velocity:        convert.VelocityToPDU(wf.Velocity),
	}
}

func weaponFireFromPDU(p *pdu.FirePDU) *core.WeaponFire {
	return &core.WeaponFire{
		FiringID:   convert.EntityIDFromPDU(p.FiringEntityID),
		TargetID:   convert.EntityIDFromPDU(p.TargetEntityID),
		MunitionID: convert.EntityIDFromPDU(p.MunitionID),
		EventID:    convert.EventIDFromPDU(p.EventID),
		Velocity:   convert.VelocityFromPDU(p.Velocity),
		Location:   convert.LocationFromPDU(p.Location),
		Burst:      convert.BurstDescriptorFromPDU(p.BurstDescriptor),
	}
}

func detonationToPDU(d *core.Detonation) *pdu.DetonationPDU {
	return &pdu.DetonationPDU{
		FiringEntityID:   convert.EntityIDToPDU(d.FiringID),
		TargetEntityID:   convert.EntityIDToPDU(d.TargetID),
		MunitionID:       convert.EntityIDToPDU(d.MunitionID),
		EventID:          convert.EventIDToPDU(d.EventID),
		Velocity:         convert.VelocityToPDU(d.Velocity),
		Location:         convert.LocationToPDU(d.Location),
		BurstDescriptor:  convert.BurstDescriptorToPDU(d.Burst),
		DetonationResult: convert.DetonationResultToPDU(d.Result),
	}
}

func detonationFromPDU(p *pdu.DetonationPDU) *core.Detonation {
	return &core.Detonation{
		FiringID:   convert.EntityIDFromPDU(p.FiringEntityID),
		TargetID:   convert.EntityIDFromPDU(p.TargetEntityID),
		MunitionID: convert.EntityIDFromPDU(p.MunitionID),
		EventID:    convert.EventIDFromPDU(p.EventID),
		Velocity:   convert.VelocityFromPDU(p.Velocity),
		Location:   convert.LocationFromPDU(p.Location),
		Burst:      convert.BurstDescriptorFromPDU(p.BurstDescriptor),
		Result:     convert.DetonationResultFromPDU(p.DetonationResult),
	}
}

func collisionToPDU(c *core.Collision) *pdu.CollisionPDU {
	return &pdu.CollisionPDU{
		IssuingEntityID:   convert.EntityIDToPDU(c.IssuingID),
		CollidingEntityID: convert.EntityIDToPDU(c.CollidingID),
		CollisionType:     c.CollisionType,
	}
}

func collisionFromPDU(p *pdu.CollisionPDU) *core.Collision {
	return &core.Collision{
		IssuingID:     convert.EntityIDFromPDU(p.IssuingEntityID),
		CollidingID:   convert.EntityIDFromPDU(p.CollidingEntityID),
		CollisionType: p.CollisionType,
	}
}

func removeEntityToPDU(r *core.RemoveEntity) *pdu.RemoveEntityPDU {
	return &pdu.RemoveEntityPDU{
		OriginatingEntityID: convert.EntityIDToPDU(r.OriginatingID),
		ReceivingEntityID:   convert.EntityIDToPDU(r.ReceivingID),
		RequestID:           r.RequestID,
	}
}

func removeEntityFromPDU(p *pdu.RemoveEntityPDU) *core.RemoveEntity {
	return &core.RemoveEntity{
		OriginatingID: convert.EntityIDFromPDU(p.OriginatingEntityID),
		ReceivingID:   convert.EntityIDFromPDU(p.ReceivingEntityID),
		RequestID:     p.RequestID,
	}
}

func startResumeToPDU(s *core.StartResume) *pdu.StartResumePDU {
	return &pdu.StartResumePDU{
		RealWorldTime:  convert.ClockTimeFromMillis(s.RealWorldTime),
		SimulationTime: convert.SimulationClock(s.SimulationTime),
		RequestID:      s.RequestID,
	}
}

func startResumeFromPDU(p *pdu.StartResumePDU) *core.StartResume {
	return &core.StartResume{
		RealWorldTime:  convert.MillisFromClockTime(p.RealWorldTime),
		SimulationTime: convert.SimulationTimeFromClock(p.SimulationTime),
		RequestID:      p.RequestID,
	}
}

func stopFreezeToPDU(s *core.StopFreeze) *pdu.StopFreezePDU {
	return &pdu.StopFreezePDU{
		RealWorldTime:  convert.ClockTimeFromMillis(s.RealWorldTime),
		SimulationTime: convert.SimulationClock(s.SimulationTime),
		Reason:         uint8(s.Reason),
		FrozenBehavior: s.FrozenBehavior,
		RequestID:      s.RequestID,
	}
}

func stopFreezeFromPDU(p *pdu.StopFreezePDU) *core.StopFreeze {
	return &core.StopFreeze{
		RealWorldTime:  convert.MillisFromClockTime(p.RealWorldTime),
		SimulationTime: convert.SimulationTimeFromClock(p.SimulationTime),
		Reason:         core.StopFreezeReason(p.Reason),
		FrozenBehavior: p.FrozenBehavior,
		RequestID:      p.RequestID,
	}
}
