package translate

import (
	"math"

	"github.com/gift-interop/disbridge/internal/convert"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// Substitution names a PDU field whose value decoding replaces with a default.
type Substitution struct {
	Field  string
	Reason string
}

const (
	reasonNaN       = "not a number, decoded as 0"
	reasonUnknown   = "unknown code, decoded as Other"
	reasonTruncated = "outside 32 bits, truncated"
)

// Substitutions lists the replacements ToEvent will make for p. It does not
// change what ToEvent returns.
func Substitutions(p pdu.PDU) []Substitution {
	var subs []Substitution
	nan := func(field string, v float64) {
		if math.IsNaN(v) {
			subs = append(subs, Substitution{Field: field, Reason: reasonNaN})
		}
	}
	velocity := func(prefix string, v pdu.LinearVelocity) {
		nan(prefix+".x", float64(v.X))
		nan(prefix+".y", float64(v.Y))
		nan(prefix+".z", float64(v.Z))
	}
	location := func(prefix string, c pdu.WorldCoordinates) {
		nan(prefix+".x", c.X)
		nan(prefix+".y", c.Y)
		nan(prefix+".z", c.Z)
	}

	switch v := p.(type) {
	case *pdu.EntityStatePDU:
		if v == nil {
			return nil
		}
		velocity("linearVelocity", v.LinearVelocity)
		location("location", v.Location)
		nan("orientation.psi", float64(v.Orientation.Psi))
		nan("orientation.theta", float64(v.Orientation.Theta))
		nan("orientation.phi", float64(v.Orientation.Phi))
		if v.DeadReckoning != nil && int(v.DeadReckoning.Algorithm) >= core.DeadReckoningAlgorithmCount {
			subs = append(subs, Substitution{Field: "deadReckoning.algorithm", Reason: reasonUnknown})
		}
	case *pdu.FirePDU:
		if v == nil {
			return nil
		}
		velocity("velocity", v.Velocity)
		location("location", v.Location)
	case *pdu.DetonationPDU:
		if v == nil {
			return nil
		}
		velocity("velocity", v.Velocity)
		location("location", v.Location)
		switch v.DetonationResult {
		case convert.DetonationResultOther, convert.DetonationResultEntityImpact, convert.DetonationResultNone:
		default:
			subs = append(subs, Substitution{Field: "detonationResult", Reason: reasonUnknown})
		}
	}
	return subs
}

// EventSubstitutions lists the values ToPDU cannot carry unchanged for e.
func EventSubstitutions(e core.Event) []Substitution {
	var simulationTime int64
	switch v := e.(type) {
	case *core.StartResume:
		if v == nil {
			return nil
		}
		simulationTime = v.SimulationTime
	case *core.StopFreeze:
		if v == nil {
			return nil
		}
		simulationTime = v.SimulationTime
	default:
		return nil
	}
	if simulationTime < 0 || simulationTime > math.MaxUint32 {
		return []Substitution{{Field: "simulationTime", Reason: reasonTruncated}}
	}
	return nil
}
