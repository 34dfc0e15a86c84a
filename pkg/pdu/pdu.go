package pdu

import "fmt"

// Type is the DIS PDU type number.
type Type uint8

const (
	TypeOther        Type = 0
	TypeEntityState  Type = 1
	TypeFire         Type = 2
	TypeDetonation   Type = 3
	TypeCollision    Type = 4
	TypeRemoveEntity Type = 12
	TypeStartResume  Type = 13
	TypeStopFreeze   Type = 14
)

func (t Type) String() string {
	switch t {
	case TypeEntityState:
		return "EntityState"
	case TypeFire:
		return "Fire"
	case TypeDetonation:
		return "Detonation"
	case TypeCollision:
		return "Collision"
	case TypeRemoveEntity:
		return "RemoveEntity"
	case TypeStartResume:
		return "StartResume"
	case TypeStopFreeze:
		return "StopFreeze"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// PDU is implemented by every PDU record in this package.
type PDU interface {
	Type() Type
}

// EntityStatePDU carries the state of one entity.
// Appearance is the raw 32 bit appearance word. DeadReckoning is nil when the
// sender supplied no dead reckoning record.
type EntityStatePDU struct {
	EntityID               EntityID                 `json:"entityId" yaml:"entityId"`
	ForceID                uint8                    `json:"forceId" yaml:"forceId"`
	EntityType             EntityType               `json:"entityType" yaml:"entityType"`
	AlternativeEntityType  EntityType               `json:"alternativeEntityType" yaml:"alternativeEntityType"`
	LinearVelocity         LinearVelocity           `json:"linearVelocity" yaml:"linearVelocity"`
	Location               WorldCoordinates         `json:"location" yaml:"location"`
	Orientation            EulerAngles              `json:"orientation" yaml:"orientation"`
	Appearance             uint32                   `json:"appearance" yaml:"appearance"`
	DeadReckoning          *DeadReckoningParameters `json:"deadReckoning,omitempty" yaml:"deadReckoning,omitempty"`
	Marking                EntityMarking            `json:"marking" yaml:"marking"`
	Capabilities           uint32                   `json:"capabilities" yaml:"capabilities"`
	ArticulationParameters []ArticulationParameter  `json:"articulationParameters" yaml:"articulationParameters"`
}

func (*EntityStatePDU) Type() Type { return TypeEntityState }

// FirePDU reports a munition being fired.
type FirePDU struct {
	FiringEntityID   EntityID         `json:"firingEntityId" yaml:"firingEntityId"`
	TargetEntityID   EntityID         `json:"targetEntityId" yaml:"targetEntityId"`
	MunitionID       EntityID         `json:"munitionId" yaml:"munitionId"`
	EventID          EventID          `json:"eventId" yaml:"eventId"`
	FireMissionIndex uint32           `json:"fireMissionIndex" yaml:"fireMissionIndex"`
	Location         WorldCoordinates `json:"location" yaml:"location"`
	BurstDescriptor  BurstDescriptor  `json:"burstDescriptor" yaml:"burstDescriptor"`
	Velocity         LinearVelocity   `json:"velocity" yaml:"velocity"`
	Range            float32          `json:"range" yaml:"range"`
}

func (*FirePDU) Type() Type { return TypeFire }

// DetonationPDU reports a munition detonating.
type DetonationPDU struct {
	FiringEntityID   EntityID         `json:"firingEntityId" yaml:"firingEntityId"`
	TargetEntityID   EntityID         `json:"targetEntityId" yaml:"targetEntityId"`
	MunitionID       EntityID         `json:"munitionId" yaml:"munitionId"`
	EventID          EventID          `json:"eventId" yaml:"eventId"`
	Velocity         LinearVelocity   `json:"velocity" yaml:"velocity"`
	Location         WorldCoordinates `json:"location" yaml:"location"`
	BurstDescriptor  BurstDescriptor  `json:"burstDescriptor" yaml:"burstDescriptor"`
	DetonationResult uint8            `json:"detonationResult" yaml:"detonationResult"`
}

func (*DetonationPDU) Type() Type { return TypeDetonation }

// CollisionPDU reports a collision between two entities.
type CollisionPDU struct {
	IssuingEntityID   EntityID `json:"issuingEntityId" yaml:"issuingEntityId"`
	CollidingEntityID EntityID `json:"collidingEntityId" yaml:"collidingEntityId"`
	CollisionType     uint8    `json:"collisionType" yaml:"collisionType"`
}

func (*CollisionPDU) Type() Type { return TypeCollision }

// RemoveEntityPDU asks a simulation to remove an entity.
type RemoveEntityPDU struct {
	OriginatingEntityID EntityID `json:"originatingEntityId" yaml:"originatingEntityId"`
	ReceivingEntityID   EntityID `json:"receivingEntityId" yaml:"receivingEntityId"`
	RequestID           uint32   `json:"requestId" yaml:"requestId"`
}

func (*RemoveEntityPDU) Type() Type { return TypeRemoveEntity }

// StartResumePDU asks participants to start or resume.
type StartResumePDU struct {
	OriginatingEntityID EntityID  `json:"originatingEntityId" yaml:"originatingEntityId"`
	ReceivingEntityID   EntityID  `json:"receivingEntityId" yaml:"receivingEntityId"`
	RealWorldTime       ClockTime `json:"realWorldTime" yaml:"realWorldTime"`
	SimulationTime      ClockTime `json:"simulationTime" yaml:"simulationTime"`
	RequestID           uint32    `json:"requestId" yaml:"requestId"`
}

func (*StartResumePDU) Type() Type { return TypeStartResume }

// StopFreezePDU asks participants to stop or freeze.
// SimulationTime is carried alongside the standard fields so that the platform's
// simulation clock survives a round trip; transports that follow IEEE 1278.1
// strictly do not serialise it.
type StopFreezePDU struct {
	OriginatingEntityID EntityID  `json:"originatingEntityId" yaml:"originatingEntityId"`
	ReceivingEntityID   EntityID  `json:"receivingEntityId" yaml:"receivingEntityId"`
	RealWorldTime       ClockTime `json:"realWorldTime" yaml:"realWorldTime"`
	SimulationTime      ClockTime `json:"simulationTime" yaml:"simulationTime"`
	Reason              uint8     `json:"reason" yaml:"reason"`
	FrozenBehavior      uint8     `json:"frozenBehavior" yaml:"frozenBehavior"`
	RequestID           uint32    `json:"requestId" yaml:"requestId"`
}

func (*StopFreezePDU) Type() Type { return TypeStopFreeze }

// New returns an empty PDU record for the given type, or nil for types this
// package does not model.
func New(t Type) PDU {
	switch t {
	case TypeEntityState:
		return &EntityStatePDU{}
	case TypeFire:
		return &FirePDU{}
	case TypeDetonation:
		return &DetonationPDU{}
	case TypeCollision:
		return &CollisionPDU{}
	case TypeRemoveEntity:
		return &RemoveEntityPDU{}
	case TypeStartResume:
		return &StartResumePDU{}
	case TypeStopFreeze:
		return &StopFreezePDU{}
	default:
		return nil
	}
}
