package translate

import (
	"math"
	"testing"

	"github.com/gift-interop/disbridge/internal/appearance"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntityState() *core.EntityState {
	return &core.EntityState{
		ID:      core.EntityIdentifier{Address: core.SimulationAddress{Site: 1, Application: 2}, Entity: 3},
		ForceID: 1,
		Type: core.EntityType{
			Kind: 1, Domain: 1, Country: 225, Category: 1, Subcategory: 1, Specific: 3,
			Echelon: core.EchelonPlatoon,
		},
		LinearVelocity: core.Vector3{X: 1.5, Y: -2, Z: 0},
		Location:       core.Vector3{X: 100, Y: 200, Z: 300},
		Orientation:    core.Vector3{X: 0.5, Y: 0.25, Z: 0.125},
		Marking:        core.EntityMarking{CharacterSet: core.CharacterSetASCII, Text: "TANK1", DisplayName: "1st Platoon Lead"},
		Appearance: core.Appearance{
			Damage:  core.Destroyed,
			Posture: core.PostureUprightStandingStill,
			Active:  true,
		},
	}
}

func TestEntityState_Outbound(t *testing.T) {
	p, err := ToPDU(sampleEntityState(), Generic)
	require.NoError(t, err)

	es, ok := p.(*pdu.EntityStatePDU)
	require.True(t, ok)

	assert.Equal(t, pdu.TypeEntityState, es.Type())
	assert.Equal(t, pdu.WorldCoordinates{X: 100, Y: 200, Z: 300}, es.Location)
	assert.Equal(t, uint32(appearance.Destroyed)<<3|1<<16, es.Appearance)
	assert.Equal(t, es.EntityType, es.AlternativeEntityType, "alternative type defaults to the primary type")
	assert.Nil(t, es.DeadReckoning)
	require.NotNil(t, es.ArticulationParameters)
	assert.Empty(t, es.ArticulationParameters)
	assert.Equal(t, [pdu.MarkingLength]byte{'T', 'A', 'N', 'K', '1'}, es.Marking.Characters)
}

func TestEntityState_RoundTrip(t *testing.T) {
	src := sampleEntityState()
	src.DeadReckoning = &core.DeadReckoningParameters{Algorithm: core.DeadReckoningRVW}
	src.ArticulationParameters = []core.ArticulationParameter{
		{Designator: core.ArticulatedPart, ParameterType: 4096, Value: 0.75},
	}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	e, err := ToEvent(p, Generic)
	require.NoError(t, err)

	got, ok := e.(*core.EntityState)
	require.True(t, ok)
	assert.Equal(t, src.ID, got.ID)
	assert.Equal(t, src.Location, got.Location)
	assert.Equal(t, src.LinearVelocity, got.LinearVelocity)
	assert.Equal(t, src.Orientation, got.Orientation)
	assert.Equal(t, src.Appearance, got.Appearance)
	assert.Equal(t, src.DeadReckoning, got.DeadReckoning)
	assert.Equal(t, src.ArticulationParameters, got.ArticulationParameters)
	assert.Equal(t, "TANK1", got.Marking.Text)
	require.NotNil(t, got.AlternativeType)
	assert.Equal(t, uint16(225), got.AlternativeType.Country)
}

func TestEntityState_ExplicitAlternativeType(t *testing.T) {
	src := sampleEntityState()
	src.AlternativeType = &core.EntityType{Kind: 1, Domain: 2, Country: 222}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	assert.Equal(t, pdu.EntityType{Kind: 1, Domain: 2, Country: 222}, p.(*pdu.EntityStatePDU).AlternativeEntityType)
}

func TestUnknownDialectFallsBackToGeneric(t *testing.T) {
	generic, err := ToPDU(sampleEntityState(), Generic)
	require.NoError(t, err)
	unknown, err := ToPDU(sampleEntityState(), Dialect("VBS"))
	require.NoError(t, err)

	assert.Equal(t, generic, unknown)
	assert.Same(t, Lookup(Generic), Lookup(Dialect("VBS")))
}

func TestARES_Overrides(t *testing.T) {
	p, err := ToPDU(sampleEntityState(), ARES)
	require.NoError(t, err)
	es := p.(*pdu.EntityStatePDU)

	assert.Equal(t, core.EchelonPlatoon.Level(), es.AlternativeEntityType.Extra)
	assert.Equal(t, uint8(0), es.EntityType.Extra)
	assert.Equal(t, [pdu.MarkingLength]byte{'1', 's', 't', ' ', 'P', 'l', 'a', 't', 'o', 'o', 'n'}, es.Marking.Characters)

	// everything else matches the generic mapping
	generic, err := ToPDU(sampleEntityState(), Generic)
	require.NoError(t, err)
	g := generic.(*pdu.EntityStatePDU)
	g.AlternativeEntityType.Extra = es.AlternativeEntityType.Extra
	g.Marking = es.Marking
	assert.Equal(t, g, es)
}

func TestARES_NoEchelonNoDisplayName(t *testing.T) {
	src := sampleEntityState()
	src.Type.Echelon = core.EchelonNone
	src.Type.Extra = 9
	src.Marking.DisplayName = ""

	p, err := ToPDU(src, ARES)
	require.NoError(t, err)
	es := p.(*pdu.EntityStatePDU)

	assert.Equal(t, uint8(0), es.AlternativeEntityType.Extra)
	assert.Equal(t, uint8(9), es.EntityType.Extra)
	assert.Equal(t, [pdu.MarkingLength]byte{'T', 'A', 'N', 'K', '1'}, es.Marking.Characters)
}

func TestARES_InboundUsesGenericRules(t *testing.T) {
	p, err := ToPDU(sampleEntityState(), Generic)
	require.NoError(t, err)

	generic, err := ToEvent(p, Generic)
	require.NoError(t, err)
	ares, err := ToEvent(p, ARES)
	require.NoError(t, err)
	assert.Equal(t, generic, ares)
}

func TestEntityState_NaNDecodesAsZero(t *testing.T) {
	nan32 := float32(math.NaN())
	p := &pdu.EntityStatePDU{
		LinearVelocity: pdu.LinearVelocity{X: nan32, Y: 1, Z: nan32},
		Location:       pdu.WorldCoordinates{X: math.NaN(), Y: 2, Z: math.NaN()},
		Orientation:    pdu.EulerAngles{Psi: nan32, Theta: 0.5, Phi: nan32},
	}

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	es := e.(*core.EntityState)

	assert.Equal(t, core.Vector3{X: 0, Y: 1, Z: 0}, es.LinearVelocity)
	assert.Equal(t, core.Vector3{X: 0, Y: 2, Z: 0}, es.Location)
	assert.Equal(t, core.Vector3{X: 0, Y: 0.5, Z: 0}, es.Orientation)
}

func TestEntityState_UnknownDeadReckoning(t *testing.T) {
	p := &pdu.EntityStatePDU{DeadReckoning: &pdu.DeadReckoningParameters{Algorithm: 42}}

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	es := e.(*core.EntityState)
	require.NotNil(t, es.DeadReckoning)
	assert.Equal(t, core.DeadReckoningOther, es.DeadReckoning.Algorithm)
}

func TestDetonation(t *testing.T) {
	src := &core.Detonation{
		FiringID:   core.EntityIdentifier{Address: core.SimulationAddress{Site: 1, Application: 2}, Entity: 3},
		TargetID:   core.EntityIdentifier{Address: core.SimulationAddress{Site: 1, Application: 2}, Entity: 4},
		MunitionID: core.EntityIdentifier{Address: core.SimulationAddress{Site: 1, Application: 2}, Entity: 5},
		EventID:    core.EventIdentifier{Address: core.SimulationAddress{Site: 7, Application: 8}, Event: 9},
		Velocity:   core.Vector3{X: 10, Y: 20, Z: 30},
		Location:   core.Vector3{X: 1000, Y: 2000, Z: 3000},
		Burst: core.BurstDescriptor{
			MunitionType: core.EntityType{Kind: 2, Domain: 9, Country: 225, Category: 2},
			Warhead:      1000, Fuse: 1010, Quantity: 1, Rate: 0,
		},
		Result: core.DetonationEntityImpact,
	}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	det := p.(*pdu.DetonationPDU)
	assert.Equal(t, uint8(1), det.DetonationResult)
	assert.Equal(t, pdu.EventID{Address: pdu.SimulationAddress{Site: 7, Application: 8}, Event: 9}, det.EventID)

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	assert.Equal(t, src, e)
}

func TestDetonation_ResultClosure(t *testing.T) {
	tests := []struct {
		result core.DetonationResult
		code   uint8
	}{
		{core.DetonationEntityImpact, 1},
		{core.DetonationNone, 6},
		{core.DetonationOther, 0},
		{core.DetonationGroundImpact, 0},
		{core.DetonationAirBurst, 0},
	}

	for _, tt := range tests {
		t.Run(tt.result.String(), func(t *testing.T) {
			p, err := ToPDU(&core.Detonation{Result: tt.result}, Generic)
			require.NoError(t, err)
			assert.Equal(t, tt.code, p.(*pdu.DetonationPDU).DetonationResult)
		})
	}

	e, err := ToEvent(&pdu.DetonationPDU{DetonationResult: 5}, Generic)
	require.NoError(t, err)
	assert.Equal(t, core.DetonationOther, e.(*core.Detonation).Result)
}

func TestWeaponFire_RoundTrip(t *testing.T) {
	src := &core.WeaponFire{
		FiringID: core.EntityIdentifier{Address: core.SimulationAddress{Site: 1, Application: 2}, Entity: 3},
		EventID:  core.EventIdentifier{Address: core.SimulationAddress{Site: 1, Application: 2}, Event: 44},
		Velocity: core.Vector3{X: 0, Y: 0, Z: 850},
		Location: core.Vector3{X: 1, Y: 2, Z: 3},
		Burst:    core.BurstDescriptor{Warhead: 5000, Quantity: 3, Rate: 600},
	}

	p, err := ToPDU(src, ARES)
	require.NoError(t, err)
	assert.Equal(t, pdu.TypeFire, p.Type())

	e, err := ToEvent(p, ARES)
	require.NoError(t, err)
	assert.Equal(t, src, e)
}

func TestCollision_Passthrough(t *testing.T) {
	src := &core.Collision{
		IssuingID:     core.EntityIdentifier{Entity: 1},
		CollidingID:   core.EntityIdentifier{Entity: 2},
		CollisionType: 55,
	}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	assert.Equal(t, uint8(55), p.(*pdu.CollisionPDU).CollisionType)

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	assert.Equal(t, src, e)
}

func TestRemoveEntity_KeepsOriginatingAndReceiving(t *testing.T) {
	src := &core.RemoveEntity{
		OriginatingID: core.EntityIdentifier{Address: core.SimulationAddress{Site: 1, Application: 1}, Entity: 0},
		ReceivingID:   core.EntityIdentifier{Address: core.SimulationAddress{Site: 2, Application: 3}, Entity: 4},
		RequestID:     77,
	}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	rm := p.(*pdu.RemoveEntityPDU)
	assert.Equal(t, uint16(1), rm.OriginatingEntityID.Address.Site)
	assert.Equal(t, uint16(4), rm.ReceivingEntityID.Entity)

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	assert.Equal(t, src, e)
}

func TestStartResume(t *testing.T) {
	now := int64(1_704_067_200_000 + 1_234_567)
	src := &core.StartResume{RealWorldTime: now, SimulationTime: 5000, RequestID: 12}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	sr := p.(*pdu.StartResumePDU)

	assert.Equal(t, int32(now/3_600_000), sr.RealWorldTime.Hour)
	assert.Equal(t, uint32(1), sr.RealWorldTime.TimePastHour&1, "timestamps are absolute")
	assert.Equal(t, pdu.ClockTime{Hour: 0, TimePastHour: 5000}, sr.SimulationTime)
	assert.Equal(t, uint32(12), sr.RequestID)

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	assert.Equal(t, src, e)
}

func TestStopFreeze(t *testing.T) {
	src := &core.StopFreeze{
		RealWorldTime:  1_704_067_200_000,
		SimulationTime: 250,
		Reason:         core.StopReasonTermination,
		FrozenBehavior: core.FrozenProcessUpdates,
		RequestID:      3,
	}

	p, err := ToPDU(src, Generic)
	require.NoError(t, err)
	sf := p.(*pdu.StopFreezePDU)
	assert.Equal(t, uint8(2), sf.Reason)
	assert.Equal(t, uint8(4), sf.FrozenBehavior)
	assert.Equal(t, uint32(1), sf.RealWorldTime.TimePastHour, "start of the hour")

	e, err := ToEvent(p, Generic)
	require.NoError(t, err)
	assert.Equal(t, src, e)
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		event core.Event
	}{
		{"nil", nil},
		{"typed nil", (*core.EntityState)(nil)},
		{"siman", &core.Siman{Type: core.SimanStart}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToPDU(tt.event, Generic)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}

	_, err := ToEvent(nil, Generic)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = ToEvent((*pdu.FirePDU)(nil), Generic)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFreshObjectsPerCall(t *testing.T) {
	src := sampleEntityState()
	a, err := ToPDU(src, Generic)
	require.NoError(t, err)
	b, err := ToPDU(src, Generic)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	a.(*pdu.EntityStatePDU).Location.X = -1
	assert.Equal(t, float64(100), b.(*pdu.EntityStatePDU).Location.X)
}
