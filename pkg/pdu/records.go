// Package pdu holds DIS (IEEE 1278.1) PDU records as field sets.
// Framing and byte order belong to the transport; these types only fix field
// widths and layouts.
package pdu

// MarkingLength is the number of characters in an entity marking record.
const MarkingLength = 11

// SimulationAddress is the site/application pair of a simulation.
type SimulationAddress struct {
	Site        uint16 `json:"site" yaml:"site"`
	Application uint16 `json:"application" yaml:"application"`
}

// EntityID is the DIS entity identifier record.
type EntityID struct {
	Address SimulationAddress `json:"address" yaml:"address"`
	Entity  uint16            `json:"entity" yaml:"entity"`
}

// EventID is the DIS event identifier record.
type EventID struct {
	Address SimulationAddress `json:"address" yaml:"address"`
	Event   uint16            `json:"event" yaml:"event"`
}

// EntityType is the seven field DIS entity type record.
type EntityType struct {
	Kind        uint8  `json:"kind" yaml:"kind"`
	Domain      uint8  `json:"domain" yaml:"domain"`
	Country     uint16 `json:"country" yaml:"country"`
	Category    uint8  `json:"category" yaml:"category"`
	Subcategory uint8  `json:"subcategory" yaml:"subcategory"`
	Specific    uint8  `json:"specific" yaml:"specific"`
	Extra       uint8  `json:"extra" yaml:"extra"`
}

// LinearVelocity is a single precision velocity vector in metres per second.
type LinearVelocity struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// WorldCoordinates is a geocentric (WGS84 ECEF) location in metres.
type WorldCoordinates struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// EulerAngles is an orientation in radians.
type EulerAngles struct {
	Psi   float32 `json:"psi" yaml:"psi"`
	Theta float32 `json:"theta" yaml:"theta"`
	Phi   float32 `json:"phi" yaml:"phi"`
}

// EntityMarking is the character set and the fixed length marking string.
// Unused trailing characters are zero.
type EntityMarking struct {
	CharacterSet uint8               `json:"characterSet" yaml:"characterSet"`
	Characters   [MarkingLength]byte `json:"characters" yaml:"characters"`
}

// ArticulationParameter is a single articulation parameter record.
type ArticulationParameter struct {
	TypeDesignator  uint8   `json:"typeDesignator" yaml:"typeDesignator"`
	ChangeIndicator uint8   `json:"changeIndicator" yaml:"changeIndicator"`
	AttachmentID    uint16  `json:"attachmentId" yaml:"attachmentId"`
	ParameterType   uint32  `json:"parameterType" yaml:"parameterType"`
	ParameterValue  float64 `json:"parameterValue" yaml:"parameterValue"`
}

// DeadReckoningParameters is the dead reckoning record of an entity state PDU.
type DeadReckoningParameters struct {
	Algorithm          uint8          `json:"algorithm" yaml:"algorithm"`
	OtherParameters    [15]byte       `json:"otherParameters" yaml:"otherParameters"`
	LinearAcceleration LinearVelocity `json:"linearAcceleration" yaml:"linearAcceleration"`
	AngularVelocity    LinearVelocity `json:"angularVelocity" yaml:"angularVelocity"`
}

// BurstDescriptor is the munition description of fire and detonation PDUs.
type BurstDescriptor struct {
	MunitionType EntityType `json:"munitionType" yaml:"munitionType"`
	Warhead      uint16     `json:"warhead" yaml:"warhead"`
	Fuse         uint16     `json:"fuse" yaml:"fuse"`
	Quantity     uint16     `json:"quantity" yaml:"quantity"`
	Rate         uint16     `json:"rate" yaml:"rate"`
}

// ClockTime is a DIS clock: hours since the Unix epoch plus a time-past-the-hour value.
type ClockTime struct {
	Hour         int32  `json:"hour" yaml:"hour"`
	TimePastHour uint32 `json:"timePastHour" yaml:"timePastHour"`
}
