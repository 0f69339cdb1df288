package adapter

import (
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// DragCurves extracts the zero angle-of-attack power-off and power-on drag
// coefficients as independent linear lookups over Mach. A Mach number
// without a zero-angle row yields a *series.MissingSliceError naming it.
func DragCurves(t series.AerodynamicTable) (powerOff, powerOn series.Lookup, err error) {
	if powerOff, err = t.ZeroAngleSlice(series.FieldCDPowerOff); err != nil {
		return series.Lookup{}, series.Lookup{}, err
	}
	if powerOn, err = t.ZeroAngleSlice(series.FieldCDPowerOn); err != nil {
		return series.Lookup{}, series.Lookup{}, err
	}
	return powerOff, powerOn, nil
}
