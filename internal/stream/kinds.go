package stream

import (
	"fmt"
	"strings"

	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

var pduKinds = []pdu.Type{
	pdu.TypeEntityState,
	pdu.TypeFire,
	pdu.TypeDetonation,
	pdu.TypeCollision,
	pdu.TypeRemoveEntity,
	pdu.TypeStartResume,
	pdu.TypeStopFreeze,
}

var eventKinds = map[core.MessageType]func() core.Event{
	core.MessageEntityState:  func() core.Event { return &core.EntityState{} },
	core.MessageWeaponFire:   func() core.Event { return &core.WeaponFire{} },
	core.MessageDetonation:   func() core.Event { return &core.Detonation{} },
	core.MessageCollision:    func() core.Event { return &core.Collision{} },
	core.MessageRemoveEntity: func() core.Event { return &core.RemoveEntity{} },
	core.MessageStartResume:  func() core.Event { return &core.StartResume{} },
	core.MessageStopFreeze:   func() core.Event { return &core.StopFreeze{} },
	core.MessageSiman:        func() core.Event { return &core.Siman{} },
}

// PDUType looks up a PDU type by name, ignoring case.
func PDUType(kind string) (pdu.Type, error) {
	for _, t := range pduKinds {
		if strings.EqualFold(t.String(), kind) {
			return t, nil
		}
	}
	return pdu.TypeOther, fmt.Errorf("unknown PDU kind: %q", kind)
}

// NewPDU returns an empty PDU record of the named kind.
func NewPDU(kind string) (pdu.PDU, error) {
	t, err := PDUType(kind)
	if err != nil {
		return nil, err
	}
	return pdu.New(t), nil
}

// NewEvent returns an empty event of the named kind.
func NewEvent(kind string) (core.Event, error) {
	for m, fn := range eventKinds {
		if strings.EqualFold(m.String(), kind) {
			return fn(), nil
		}
	}
	return nil, fmt.Errorf("unknown event kind: %q", kind)
}
