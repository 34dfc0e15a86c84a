package translate

import (
	"fmt"

	"github.com/gift-interop/disbridge/internal/convert"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// SimanToPDU returns the session control PDU for a simulation management
// message, stamped with nowMillis as real world time. Load and Restart have no
// DIS counterpart and yield a nil PDU with a nil error.
func SimanToPDU(s *core.Siman, nowMillis int64) (pdu.PDU, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, s)
	}

	switch s.Type {
	case core.SimanLoad, core.SimanRestart:
		return nil, nil
	case core.SimanStart, core.SimanResume:
		return &pdu.StartResumePDU{
			RealWorldTime: convert.ClockTimeFromMillis(nowMillis),
		}, nil
	case core.SimanPause:
		return stopFreezeNow(core.StopReasonRecess, nowMillis), nil
	case core.SimanStop:
		return stopFreezeNow(core.StopReasonTermination, nowMillis), nil
	default:
		return nil, fmt.Errorf("can't handle siman type %d", s.Type)
	}
}

func stopFreezeNow(reason core.StopFreezeReason, nowMillis int64) *pdu.StopFreezePDU {
	return &pdu.StopFreezePDU{
		RealWorldTime: convert.ClockTimeFromMillis(nowMillis),
		Reason:        uint8(reason),
	}
}
