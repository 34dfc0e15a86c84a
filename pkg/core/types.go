// pkg/core/types.go
package core

// Vector3 is a three component vector.
// Orientation vectors carry Euler angles as Psi->X, Theta->Y, Phi->Z (radians).
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// EntityType is the seven field DIS entity type plus the platform's echelon metadata.
// Echelon has no DIS field of its own; some dialects smuggle it into another field.
type EntityType struct {
	Kind        uint8   `json:"kind" yaml:"kind"`
	Domain      uint8   `json:"domain" yaml:"domain"`
	Country     uint16  `json:"country" yaml:"country"`
	Category    uint8   `json:"category" yaml:"category"`
	Subcategory uint8   `json:"subcategory" yaml:"subcategory"`
	Specific    uint8   `json:"specific" yaml:"specific"`
	Extra       uint8   `json:"extra" yaml:"extra"`
	Echelon     Echelon `json:"echelon,omitempty" yaml:"echelon,omitempty"`
}

// Character sets for entity markings.
const (
	CharacterSetUnused uint8 = 0
	CharacterSetASCII  uint8 = 1
)

// EntityMarking is the text label of an entity.
// DisplayName is the platform's own name for the entity; it never travels on the
// wire unless a dialect puts it there.
type EntityMarking struct {
	CharacterSet uint8  `json:"characterSet" yaml:"characterSet"`
	Text         string `json:"text" yaml:"text"`
	DisplayName  string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// Articulation parameter type designators.
const (
	ArticulatedPart uint8 = 0
	AttachedPart    uint8 = 1
)

// ArticulationParameter describes the state of a movable or attached part of an entity.
type ArticulationParameter struct {
	Designator    uint8   `json:"designator" yaml:"designator"`
	Change        uint8   `json:"change" yaml:"change"`
	AttachedTo    uint16  `json:"attachedTo" yaml:"attachedTo"`
	ParameterType uint32  `json:"parameterType" yaml:"parameterType"`
	Value         float64 `json:"value" yaml:"value"`
}

// DeadReckoningAlgorithm selects how receivers extrapolate an entity between updates.
type DeadReckoningAlgorithm uint8

const (
	DeadReckoningOther DeadReckoningAlgorithm = iota
	DeadReckoningStatic
	DeadReckoningFPW
	DeadReckoningRPW
	DeadReckoningRVW
	DeadReckoningFVW
	DeadReckoningFPB
	DeadReckoningRPB
	DeadReckoningRVB
	DeadReckoningFVB
)

// DeadReckoningAlgorithmCount is the number of algorithms with a defined index.
const DeadReckoningAlgorithmCount = int(DeadReckoningFVB) + 1

var deadReckoningNames = [...]string{
	"Other", "Static", "DRM(F,P,W)", "DRM(R,P,W)", "DRM(R,V,W)",
	"DRM(F,V,W)", "DRM(F,P,B)", "DRM(R,P,B)", "DRM(R,V,B)", "DRM(F,V,B)",
}

func (a DeadReckoningAlgorithm) String() string {
	if int(a) < len(deadReckoningNames) {
		return deadReckoningNames[a]
	}
	return "Unknown"
}

// DeadReckoningParameters holds the dead reckoning selection of an entity.
type DeadReckoningParameters struct {
	Algorithm DeadReckoningAlgorithm `json:"algorithm" yaml:"algorithm"`
}

// BurstDescriptor describes the munition of a fire or detonation event.
type BurstDescriptor struct {
	MunitionType EntityType `json:"munitionType" yaml:"munitionType"`
	Warhead      uint16     `json:"warhead" yaml:"warhead"`
	Fuse         uint16     `json:"fuse" yaml:"fuse"`
	Quantity     uint16     `json:"quantity" yaml:"quantity"`
	Rate         uint16     `json:"rate" yaml:"rate"`
}
