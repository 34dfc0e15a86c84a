// pkg/core/appearance.go
package core

// DamageLevel is the platform's view of an entity's health.
type DamageLevel uint8

const (
	Healthy DamageLevel = iota
	SlightDamage
	ModerateDamage
	Destroyed
)

func (d DamageLevel) String() string {
	switch d {
	case Healthy:
		return "Healthy"
	case SlightDamage:
		return "SlightDamage"
	case ModerateDamage:
		return "ModerateDamage"
	case Destroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Posture is a DIS life-form state code. The numeric value is the wire value.
type Posture uint8

const (
	PostureNotApplicable Posture = iota
	PostureUprightStandingStill
	PostureUprightWalking
	PostureUprightRunning
	PostureKneeling
	PostureProne
	PostureCrawling
	PostureSwimming
	PostureParachuting
	PostureJumping
	PostureSitting
	PostureSquatting
	PostureCrouching
	PostureWading
	PostureSurrender
	PostureDetained
)

// Echelon is the organisational level of a unit entity.
type Echelon uint8

const (
	EchelonNone Echelon = iota
	EchelonFireteam
	EchelonSquad
	EchelonSection
	EchelonPlatoon
	EchelonCompany
	EchelonBattalion
	EchelonRegiment
	EchelonBrigade
	EchelonDivision
	EchelonCorps
	EchelonArmy
)

// Level returns the numeric echelon level, 0 when no echelon is set.
func (e Echelon) Level() uint8 {
	return uint8(e)
}

// Appearance is the decoded subset of the DIS appearance word the platform uses.
type Appearance struct {
	Damage  DamageLevel `json:"damage" yaml:"damage"`
	Posture Posture     `json:"posture" yaml:"posture"`
	Active  bool        `json:"active" yaml:"active"`
}
