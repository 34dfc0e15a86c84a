package gateway

import (
	"context"
	"fmt"

	"github.com/gift-interop/disbridge/internal/dispatcher"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// Every route shares one queue so traffic is handled in arrival order.
const (
	trafficQueue  = "gateway"
	trafficBuffer = 4096
)

var pduTypes = []pdu.Type{
	pdu.TypeEntityState,
	pdu.TypeFire,
	pdu.TypeDetonation,
	pdu.TypeCollision,
	pdu.TypeRemoveEntity,
	pdu.TypeStartResume,
	pdu.TypeStopFreeze,
}

var eventTypes = []core.MessageType{
	core.MessageEntityState,
	core.MessageWeaponFire,
	core.MessageDetonation,
	core.MessageCollision,
	core.MessageRemoveEntity,
	core.MessageStartResume,
	core.MessageStopFreeze,
	core.MessageSiman,
}

// Outbound is the payload of an event route when the origin matters.
// A bare core.Event payload is treated as coming from OriginPlatform.
type Outbound struct {
	Event  core.Event
	Origin Origin
}

// PDURoute returns the dispatcher route of received PDUs of type t.
func PDURoute(t pdu.Type) string {
	return "pdu." + t.String()
}

// EventRoute returns the dispatcher route of platform events of type m.
func EventRoute(m core.MessageType) string {
	return "event." + m.String()
}

// Register adds a route for every PDU and event type the gateway handles.
// All routes feed one blocking queue drained by a single worker.
func (g *Gateway) Register(d *dispatcher.Dispatcher) {
	opts := []dispatcher.Option{
		dispatcher.Queue(trafficQueue, trafficBuffer),
		dispatcher.Blocking(),
		dispatcher.Logged(),
	}
	for _, t := range pduTypes {
		d.Register(PDURoute(t), g.handlePDUEvent, opts...)
	}
	for _, m := range eventTypes {
		d.Register(EventRoute(m), g.handleOutboundEvent, opts...)
	}
}

func (g *Gateway) handlePDUEvent(e dispatcher.Event) (any, error) {
	p, ok := e.Payload.(pdu.PDU)
	if !ok {
		return nil, fmt.Errorf("route %s: payload %T is not a PDU", e.Route, e.Payload)
	}
	return nil, g.HandlePDU(context.Background(), p)
}

func (g *Gateway) handleOutboundEvent(e dispatcher.Event) (any, error) {
	switch v := e.Payload.(type) {
	case Outbound:
		return nil, g.HandleEvent(context.Background(), v.Event, v.Origin)
	case core.Event:
		return nil, g.HandleEvent(context.Background(), v, OriginPlatform)
	default:
		return nil, fmt.Errorf("route %s: payload %T is not an event", e.Route, e.Payload)
	}
}
