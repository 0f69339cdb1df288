package series

// Canonical field names shared by the normalizer, the configuration record
// and the simulation adapter.
const (
	FieldTime            = "time"
	FieldThrust          = "thrust"
	FieldChamberPressure = "chamber_pressure"

	FieldMach       = "mach"
	FieldAlpha      = "alpha"
	FieldCDPowerOff = "cd_power_off"
	FieldCDPowerOn  = "cd_power_on"

	FieldAltitude    = "altitude"
	FieldTemperature = "temperature"
	FieldPressure    = "pressure"
	FieldDensity     = "density"

	FieldSpeed   = "speed"
	FieldBearing = "bearing"

	FieldMass         = "mass"
	FieldCenterOfMass = "center_of_mass"
	FieldIxx          = "ixx"
	FieldIyy          = "iyy"
	FieldIzz          = "izz"
)

// Table labels used in errors and records.
const (
	NameThrustCurve    = "thrust_curve"
	NameAerodynamics   = "aerodynamics"
	NameAtmosphere     = "atmosphere"
	NameWind           = "wind"
	NameMassProperties = "mass_properties"
)
