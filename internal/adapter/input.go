package adapter

// Curve is a sampled function as (x, y) pairs with x ascending. The engine
// interpolates it linearly.
type Curve [][2]float64

// EngineInput is everything the engine needs for one flight. It is built by
// Adapt and serialized as the input half of the engine request.
type EngineInput struct {
	Source      string      `json:"source"`
	Environment Environment `json:"environment"`
	Motor       Motor       `json:"motor"`
	Rocket      Rocket      `json:"rocket"`
	Flight      Flight      `json:"flight"`
}

// Site locates the launch pad.
type Site struct {
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	ElevationM   float64 `json:"elevation_m"`
}

// Wind is a wind vector split into inertial components.
type Wind struct {
	EastMS  float64 `json:"east_m_s"`
	NorthMS float64 `json:"north_m_s"`
}

// Environment is the launch site with its atmosphere and wind, each profile
// keyed by altitude in metres.
type Environment struct {
	Site        Site  `json:"site"`
	Temperature Curve `json:"temperature_K"`
	Pressure    Curve `json:"pressure_Pa"`
	Density     Curve `json:"density_kg_m3"`
	WindU       Curve `json:"wind_u_m_s"`
	WindV       Curve `json:"wind_v_m_s"`
	SurfaceWind Wind  `json:"surface_wind"`
}

// Motor is the propulsion model. Positions are in CoordinateSystem.
type Motor struct {
	Kind                    string     `json:"kind"`
	ThrustSource            Curve      `json:"thrust_source"`
	BurnTimeS               float64    `json:"burn_time_s"`
	PropellantMassKg        float64    `json:"propellant_mass_kg"`
	DryMassKg               float64    `json:"dry_mass_kg"`
	DryInertia              [3]float64 `json:"dry_inertia"`
	NozzleRadiusM           float64    `json:"nozzle_radius_m"`
	ThroatRadiusM           float64    `json:"throat_radius_m"`
	ChamberRadiusM          float64    `json:"chamber_radius_m"`
	ChamberHeightM          float64    `json:"chamber_height_m"`
	ChamberPositionM        float64    `json:"chamber_position_m"`
	CenterOfDryMassPosition float64    `json:"center_of_dry_mass_position_m"`
	NozzlePositionM         float64    `json:"nozzle_position_m"`
	Interpolation           string     `json:"interpolation_method"`
	CoordinateSystem        Frame      `json:"coordinate_system_orientation"`
}

// Nose is the nose cone as the engine places it.
type Nose struct {
	Kind      string  `json:"kind"`
	LengthM   float64 `json:"length_m"`
	PositionM float64 `json:"position_m"`
}

// Fins is a trapezoidal fin set as the engine places it.
type Fins struct {
	Count        int     `json:"n"`
	RootChordM   float64 `json:"root_chord_m"`
	TipChordM    float64 `json:"tip_chord_m"`
	SpanM        float64 `json:"span_m"`
	PositionM    float64 `json:"position_m"`
	CantAngleDeg float64 `json:"cant_angle_deg"`
}

// Parachute is a recovery device with its drag area precomputed.
type Parachute struct {
	Name           string  `json:"name"`
	CdSM2          float64 `json:"cd_s_m2"`
	Trigger        string  `json:"trigger"`
	SamplingRateHz float64 `json:"sampling_rate_hz"`
	LagS           float64 `json:"lag_s"`
	PositionM      float64 `json:"position_m"`
}

// RailButtons are the launch lugs as the engine places them.
type RailButtons struct {
	UpperM             float64 `json:"upper_button_position_m"`
	LowerM             float64 `json:"lower_button_position_m"`
	AngularPositionDeg float64 `json:"angular_position_deg"`
}

// Rocket is the airframe without its motor. Positions are in
// CoordinateSystem.
type Rocket struct {
	RadiusM                  float64     `json:"radius_m"`
	MassKg                   float64     `json:"mass_kg"`
	Inertia                  [3]float64  `json:"inertia"`
	CenterOfMassWithoutMotor float64     `json:"center_of_mass_without_motor_m"`
	PowerOffDrag             Curve       `json:"power_off_drag"`
	PowerOnDrag              Curve       `json:"power_on_drag"`
	MotorPositionM           float64     `json:"motor_position_m"`
	Nose                     Nose        `json:"nose"`
	Fins                     Fins        `json:"fins"`
	Parachutes               []Parachute `json:"parachutes"`
	RailButtons              RailButtons `json:"rail_buttons"`
	CoordinateSystem         Frame       `json:"coordinate_system_orientation"`
}

// Flight holds the launch geometry and integration limits.
type Flight struct {
	RailLengthM       float64 `json:"rail_length_m"`
	InclinationDeg    float64 `json:"inclination_deg"`
	HeadingDeg        float64 `json:"heading_deg"`
	MaxTimeS          float64 `json:"max_time_s"`
	MaxTimeStepS      float64 `json:"max_time_step_s"`
	TerminateOnApogee bool    `json:"terminate_on_apogee"`
}
