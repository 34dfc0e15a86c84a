// pkg/core/siman.go
package core

// SimanType is a simulation management command issued by the platform.
type SimanType uint8

const (
	SimanLoad SimanType = iota
	SimanStart
	SimanPause
	SimanResume
	SimanStop
	SimanRestart
)

func (s SimanType) String() string {
	switch s {
	case SimanLoad:
		return "Load"
	case SimanStart:
		return "Start"
	case SimanPause:
		return "Pause"
	case SimanResume:
		return "Resume"
	case SimanStop:
		return "Stop"
	case SimanRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Siman is a simulation management message.
// Playback is only meaningful for Load: it marks a session that replays a log.
type Siman struct {
	Type     SimanType `json:"type" yaml:"type"`
	Playback bool      `json:"playback,omitempty" yaml:"playback,omitempty"`
}

func (*Siman) MessageType() MessageType { return MessageSiman }
