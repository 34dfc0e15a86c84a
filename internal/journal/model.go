package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// Direction values stored on an Entry.
const (
	Inbound  = "inbound"
	Outbound = "outbound"
)

// Entry is one translated message.
// Site, Application and Entity identify the entity the message is about, when it has one.
type Entry struct {
	ID          uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	SessionID   uuid.UUID      `json:"sessionId" gorm:"index:idx_journal_session"`
	Time        time.Time      `json:"time" gorm:"index:idx_journal_time"`
	Direction   string         `json:"direction" gorm:"size:8"`
	Kind        string         `json:"kind" gorm:"size:32;index:idx_journal_kind"`
	Dialect     string         `json:"dialect" gorm:"size:16"`
	Site        uint16         `json:"site" gorm:"index:idx_journal_entity"`
	Application uint16         `json:"application" gorm:"index:idx_journal_entity"`
	Entity      uint16         `json:"entity" gorm:"index:idx_journal_entity"`
	Position    geom.Point     `json:"position"` // EPSG:3857, empty when the message has no location
	Payload     datatypes.JSON `json:"payload"`
}

func (*Entry) TableName() string {
	return "journal_entries"
}
