// pkg/core/events.go
package core

// MessageType names the kind of an internal event.
type MessageType uint8

const (
	MessageUnknown MessageType = iota
	MessageEntityState
	MessageWeaponFire
	MessageDetonation
	MessageCollision
	MessageRemoveEntity
	MessageStartResume
	MessageStopFreeze
	MessageSiman
)

var messageTypeNames = [...]string{
	"Unknown", "EntityState", "WeaponFire", "Detonation", "Collision",
	"RemoveEntity", "StartResume", "StopFreeze", "Siman",
}

func (m MessageType) String() string {
	if int(m) < len(messageTypeNames) {
		return messageTypeNames[m]
	}
	return "Unknown"
}

// Event is any internal event the translation layer consumes or produces.
type Event interface {
	MessageType() MessageType
}

// EntityState is the full state of a simulated entity.
// AlternativeType and DeadReckoning are optional.
type EntityState struct {
	ID                     EntityIdentifier         `json:"id" yaml:"id"`
	ForceID                uint8                    `json:"forceId" yaml:"forceId"`
	Type                   EntityType               `json:"type" yaml:"type"`
	AlternativeType        *EntityType              `json:"alternativeType,omitempty" yaml:"alternativeType,omitempty"`
	LinearVelocity         Vector3                  `json:"linearVelocity" yaml:"linearVelocity"`
	Location               Vector3                  `json:"location" yaml:"location"`
	Orientation            Vector3                  `json:"orientation" yaml:"orientation"`
	Marking                EntityMarking            `json:"marking" yaml:"marking"`
	ArticulationParameters []ArticulationParameter  `json:"articulationParameters" yaml:"articulationParameters"`
	DeadReckoning          *DeadReckoningParameters `json:"deadReckoning,omitempty" yaml:"deadReckoning,omitempty"`
	Appearance             Appearance               `json:"appearance" yaml:"appearance"`
}

func (*EntityState) MessageType() MessageType { return MessageEntityState }

// WeaponFire represents a munition being fired.
type WeaponFire struct {
	FiringID   EntityIdentifier `json:"firingId" yaml:"firingId"`
	TargetID   EntityIdentifier `json:"targetId" yaml:"targetId"`
	MunitionID EntityIdentifier `json:"munitionId" yaml:"munitionId"`
	EventID    EventIdentifier  `json:"eventId" yaml:"eventId"`
	Velocity   Vector3          `json:"velocity" yaml:"velocity"`
	Location   Vector3          `json:"location" yaml:"location"`
	Burst      BurstDescriptor  `json:"burst" yaml:"burst"`
}

func (*WeaponFire) MessageType() MessageType { return MessageWeaponFire }

// DetonationResult categorises the outcome of a detonation.
// Only EntityImpact and None have dedicated wire codes; every other result
// travels as Other.
type DetonationResult uint8

const (
	DetonationOther DetonationResult = iota
	DetonationEntityImpact
	DetonationNone
	DetonationGroundImpact
	DetonationAirBurst
	DetonationBuildingHit
)

func (r DetonationResult) String() string {
	switch r {
	case DetonationOther:
		return "Other"
	case DetonationEntityImpact:
		return "EntityImpact"
	case DetonationNone:
		return "None"
	case DetonationGroundImpact:
		return "GroundImpact"
	case DetonationAirBurst:
		return "AirBurst"
	case DetonationBuildingHit:
		return "BuildingHit"
	default:
		return "Unknown"
	}
}

// Detonation represents a munition detonating.
type Detonation struct {
	FiringID   EntityIdentifier `json:"firingId" yaml:"firingId"`
	TargetID   EntityIdentifier `json:"targetId" yaml:"targetId"`
	MunitionID EntityIdentifier `json:"munitionId" yaml:"munitionId"`
	EventID    EventIdentifier  `json:"eventId" yaml:"eventId"`
	Velocity   Vector3          `json:"velocity" yaml:"velocity"`
	Location   Vector3          `json:"location" yaml:"location"`
	Burst      BurstDescriptor  `json:"burst" yaml:"burst"`
	Result     DetonationResult `json:"result" yaml:"result"`
}

func (*Detonation) MessageType() MessageType { return MessageDetonation }

// Collision reports two entities colliding. CollisionType is the raw DIS code.
type Collision struct {
	IssuingID     EntityIdentifier `json:"issuingId" yaml:"issuingId"`
	CollidingID   EntityIdentifier `json:"collidingId" yaml:"collidingId"`
	CollisionType uint8            `json:"collisionType" yaml:"collisionType"`
}

func (*Collision) MessageType() MessageType { return MessageCollision }

// RemoveEntity asks a simulation to remove an entity.
type RemoveEntity struct {
	OriginatingID EntityIdentifier `json:"originatingId" yaml:"originatingId"`
	ReceivingID   EntityIdentifier `json:"receivingId" yaml:"receivingId"`
	RequestID     uint32           `json:"requestId" yaml:"requestId"`
}

func (*RemoveEntity) MessageType() MessageType { return MessageRemoveEntity }

// StartResume asks participants to start or resume the exercise.
// RealWorldTime is UTC milliseconds since the Unix epoch; SimulationTime is the
// simulation clock in milliseconds.
type StartResume struct {
	RealWorldTime  int64  `json:"realWorldTime" yaml:"realWorldTime"`
	SimulationTime int64  `json:"simulationTime" yaml:"simulationTime"`
	RequestID      uint32 `json:"requestId" yaml:"requestId"`
}

func (*StartResume) MessageType() MessageType { return MessageStartResume }

// StopFreezeReason is the DIS reason code of a stop/freeze request.
type StopFreezeReason uint8

const (
	StopReasonOther StopFreezeReason = iota
	StopReasonRecess
	StopReasonTermination
	StopReasonSystemFailure
	StopReasonSecurityViolation
	StopReasonEntityReconstitution
	StopReasonStopForReset
	StopReasonStopForRestart
	StopReasonAbortTraining
)

// Frozen behavior bits of a stop/freeze request.
const (
	FrozenRunSimulationClock uint8 = 1 << 0
	FrozenTransmitUpdates    uint8 = 1 << 1
	FrozenProcessUpdates     uint8 = 1 << 2
)

// StopFreeze asks participants to stop or freeze the exercise.
type StopFreeze struct {
	RealWorldTime  int64            `json:"realWorldTime" yaml:"realWorldTime"`
	SimulationTime int64            `json:"simulationTime" yaml:"simulationTime"`
	Reason         StopFreezeReason `json:"reason" yaml:"reason"`
	FrozenBehavior uint8            `json:"frozenBehavior" yaml:"frozenBehavior"`
	RequestID      uint32           `json:"requestId" yaml:"requestId"`
}

func (*StopFreeze) MessageType() MessageType { return MessageStopFreeze }
