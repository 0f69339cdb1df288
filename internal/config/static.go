package config

// Static holds the vehicle and launch constants that do not come from
// measurement tables.
type Static struct {
	Source     string           `json:"source" yaml:"source"`
	Geometry   RocketGeometry   `json:"rocket_geometry" yaml:"rocket_geometry"`
	Launch     LaunchConditions `json:"launch_conditions" yaml:"launch_conditions"`
	Simulation SimulationLimits `json:"simulation" yaml:"simulation"`
}

// RocketGeometry describes the vehicle airframe and the components placed
// along it.
type RocketGeometry struct {
	BodyRadiusM float64       `json:"body_radius_m" yaml:"body_radius_m" validate:"gt=0"`
	BodyLengthM float64       `json:"body_length_m" yaml:"body_length_m" validate:"gt=0"`
	Nose        Nose          `json:"nose" yaml:"nose"`
	Fins        Fins          `json:"fins" yaml:"fins"`
	Motor       MotorGeometry `json:"motor" yaml:"motor"`
	Parachutes  []Parachute   `json:"parachutes,omitempty" yaml:"parachutes,omitempty" validate:"dive"`
	RailButtons RailButtons   `json:"rail_buttons" yaml:"rail_buttons"`
}

// Nose describes the nose cone.
type Nose struct {
	Kind      string  `json:"kind" yaml:"kind" validate:"oneof=ogive conical von_karman lvhaack parabolic elliptical"`
	LengthM   float64 `json:"length_m" yaml:"length_m" validate:"gt=0"`
	PositionM float64 `json:"position_m" yaml:"position_m" validate:"gte=0"`
}

// Fins describes one trapezoidal fin set. PositionM locates the leading
// edge of the root chord.
type Fins struct {
	Count        int     `json:"count" yaml:"count" validate:"gte=2,lte=8"`
	RootChordM   float64 `json:"root_chord_m" yaml:"root_chord_m" validate:"gt=0"`
	TipChordM    float64 `json:"tip_chord_m" yaml:"tip_chord_m" validate:"gte=0"`
	SpanM        float64 `json:"span_m" yaml:"span_m" validate:"gt=0"`
	PositionM    float64 `json:"position_m" yaml:"position_m" validate:"gte=0"`
	CantAngleDeg float64 `json:"cant_angle_deg" yaml:"cant_angle_deg" validate:"gte=-15,lte=15"`
}

// MotorGeometry describes the motor as installed. PositionM locates the
// nozzle exit in the vehicle frame; the remaining positions are in the
// motor frame.
type MotorGeometry struct {
	Type             string  `json:"type" yaml:"type" validate:"oneof=hybrid solid liquid"`
	PositionM        float64 `json:"position_m" yaml:"position_m" validate:"gt=0"`
	LengthM          float64 `json:"length_m" yaml:"length_m" validate:"gt=0"`
	DryMassKg        float64 `json:"dry_mass_kg" yaml:"dry_mass_kg" validate:"gt=0"`
	DryInertia       Inertia `json:"dry_inertia" yaml:"dry_inertia"`
	CenterOfDryMassM float64 `json:"center_of_dry_mass_m" yaml:"center_of_dry_mass_m" validate:"gte=0"`
	NozzleRadiusM    float64 `json:"nozzle_radius_m" yaml:"nozzle_radius_m" validate:"gt=0"`
	ThroatRadiusM    float64 `json:"throat_radius_m" yaml:"throat_radius_m" validate:"gt=0,ltfield=NozzleRadiusM"`
	ChamberRadiusM   float64 `json:"chamber_radius_m" yaml:"chamber_radius_m" validate:"gt=0"`
	ChamberHeightM   float64 `json:"chamber_height_m" yaml:"chamber_height_m" validate:"gt=0"`
	ChamberPositionM float64 `json:"chamber_position_m" yaml:"chamber_position_m" validate:"gte=0"`
}

// Inertia holds principal moments of inertia.
type Inertia struct {
	IxxKgM2 float64 `json:"ixx_kg_m2" yaml:"ixx_kg_m2" validate:"gte=0"`
	IyyKgM2 float64 `json:"iyy_kg_m2" yaml:"iyy_kg_m2" validate:"gte=0"`
	IzzKgM2 float64 `json:"izz_kg_m2" yaml:"izz_kg_m2" validate:"gte=0"`
}

// Parachute describes one recovery device. Trigger is "apogee" or a
// deployment altitude in metres above ground, e.g. "450".
type Parachute struct {
	Name           string  `json:"name" yaml:"name" validate:"required"`
	Cd             float64 `json:"cd" yaml:"cd" validate:"gt=0"`
	DiameterM      float64 `json:"diameter_m" yaml:"diameter_m" validate:"gt=0"`
	Trigger        string  `json:"trigger" yaml:"trigger" validate:"required"`
	SamplingRateHz float64 `json:"sampling_rate_hz" yaml:"sampling_rate_hz" validate:"gt=0"`
	LagS           float64 `json:"lag_s" yaml:"lag_s" validate:"gte=0"`
	PositionM      float64 `json:"position_m" yaml:"position_m" validate:"gte=0"`
}

// RailButtons locates the launch lugs. UpperM must be forward of LowerM.
type RailButtons struct {
	UpperM             float64 `json:"upper_m" yaml:"upper_m" validate:"gte=0"`
	LowerM             float64 `json:"lower_m" yaml:"lower_m" validate:"gte=0"`
	AngularPositionDeg float64 `json:"angular_position_deg" yaml:"angular_position_deg" validate:"gte=0,lt=360"`
}

// LaunchConditions locates and aims the launch rail. Azimuth is degrees
// clockwise from north and may be negative.
type LaunchConditions struct {
	RailLengthM  float64 `json:"rail_length_m" yaml:"rail_length_m" validate:"gt=0"`
	ElevationDeg float64 `json:"elevation_deg" yaml:"elevation_deg" validate:"gt=0,lte=90"`
	AzimuthDeg   float64 `json:"azimuth_deg" yaml:"azimuth_deg" validate:"gt=-360,lt=360"`
	LatitudeDeg  float64 `json:"latitude_deg" yaml:"latitude_deg" validate:"gte=-90,lte=90"`
	LongitudeDeg float64 `json:"longitude_deg" yaml:"longitude_deg" validate:"gte=-180,lte=180"`
	AltitudeM    float64 `json:"altitude_m" yaml:"altitude_m"`
}

// SimulationLimits bound the engine run in simulated time.
type SimulationLimits struct {
	MaxTimeS          float64 `json:"max_time_s" yaml:"max_time_s" validate:"gt=0"`
	MaxTimeStepS      float64 `json:"max_time_step_s" yaml:"max_time_step_s" validate:"gt=0"`
	TerminateOnApogee bool    `json:"terminate_on_apogee" yaml:"terminate_on_apogee"`
}
