package adapter

import (
	"fmt"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// InterpolationLinear is the only interpolation the adapter requests.
const InterpolationLinear = "linear"

// Adapt maps cfg into the engine's input model. It returns a fresh value on
// every call and never mutates cfg.
func Adapt(cfg *config.Configuration) (*EngineInput, error) {
	env, err := adaptEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	motor, err := adaptMotor(cfg)
	if err != nil {
		return nil, err
	}
	rocket, err := adaptRocket(cfg)
	if err != nil {
		return nil, err
	}
	return &EngineInput{
		Source:      cfg.Source,
		Environment: env,
		Motor:       motor,
		Rocket:      rocket,
		Flight: Flight{
			RailLengthM:       cfg.Launch.RailLengthM,
			InclinationDeg:    cfg.Launch.ElevationDeg,
			HeadingDeg:        NormalizeHeading(cfg.Launch.AzimuthDeg),
			MaxTimeS:          cfg.Simulation.MaxTimeS,
			MaxTimeStepS:      cfg.Simulation.MaxTimeStepS,
			TerminateOnApogee: cfg.Simulation.TerminateOnApogee,
		},
	}, nil
}

func adaptEnvironment(cfg *config.Configuration) (Environment, error) {
	profile := func(field string) (Curve, error) {
		l, err := cfg.Atmosphere.Lookup(field)
		if err != nil {
			return nil, fmt.Errorf("atmosphere %s: %w", field, err)
		}
		return Curve(l.Points()), nil
	}

	env := Environment{
		Site: Site{
			LatitudeDeg:  cfg.Launch.LatitudeDeg,
			LongitudeDeg: cfg.Launch.LongitudeDeg,
			ElevationM:   cfg.Launch.AltitudeM,
		},
	}
	var err error
	if env.Temperature, err = profile(series.FieldTemperature); err != nil {
		return Environment{}, err
	}
	if env.Pressure, err = profile(series.FieldPressure); err != nil {
		return Environment{}, err
	}
	if env.Density, err = profile(series.FieldDensity); err != nil {
		return Environment{}, err
	}
	env.WindU, env.WindV = windProfiles(cfg.Wind)
	speed, bearing := cfg.Wind.Surface()
	env.SurfaceWind.EastMS, env.SurfaceWind.NorthMS = WindComponents(speed, bearing)
	return env, nil
}

func adaptMotor(cfg *config.Configuration) (Motor, error) {
	g := cfg.Geometry
	m := g.Motor
	dryCOM, err := MapPosition(ComponentMotorDryMass, m.CenterOfDryMassM, g)
	if err != nil {
		return Motor{}, err
	}
	chamber, err := MapPosition(ComponentCombustionChamber, m.ChamberPositionM, g)
	if err != nil {
		return Motor{}, err
	}
	return Motor{
		Kind:                    m.Type,
		ThrustSource:            Curve(cfg.Motor.Thrust.Points()),
		BurnTimeS:               cfg.Motor.BurnTimeS,
		PropellantMassKg:        cfg.Motor.PropellantMassKg,
		DryMassKg:               m.DryMassKg,
		DryInertia:              inertia(m.DryInertia),
		NozzleRadiusM:           m.NozzleRadiusM,
		ThroatRadiusM:           m.ThroatRadiusM,
		ChamberRadiusM:          m.ChamberRadiusM,
		ChamberHeightM:          m.ChamberHeightM,
		ChamberPositionM:        chamber,
		CenterOfDryMassPosition: dryCOM,
		NozzlePositionM:         0,
		Interpolation:           InterpolationLinear,
		CoordinateSystem:        FrameNozzleToChamber,
	}, nil
}

// placement is one vehicle position to map into the engine frame.
type placement struct {
	component Component
	x         float64
	out       *float64
}

func adaptRocket(cfg *config.Configuration) (Rocket, error) {
	g := cfg.Geometry
	powerOff, powerOn, err := DragCurves(cfg.Aerodynamics.Table)
	if err != nil {
		return Rocket{}, err
	}

	r := Rocket{
		RadiusM:      g.BodyRadiusM,
		MassKg:       cfg.RocketMassKg(),
		Inertia:      inertia(cfg.MassProperties.DryInertia),
		PowerOffDrag: Curve(powerOff.Points()),
		PowerOnDrag:  Curve(powerOn.Points()),
		Nose: Nose{
			Kind:    g.Nose.Kind,
			LengthM: g.Nose.LengthM,
		},
		Fins: Fins{
			Count:        g.Fins.Count,
			RootChordM:   g.Fins.RootChordM,
			TipChordM:    g.Fins.TipChordM,
			SpanM:        g.Fins.SpanM,
			CantAngleDeg: g.Fins.CantAngleDeg,
		},
		Parachutes: make([]Parachute, len(g.Parachutes)),
		RailButtons: RailButtons{
			AngularPositionDeg: g.RailButtons.AngularPositionDeg,
		},
		CoordinateSystem: FrameTailToNose,
	}

	places := []placement{
		{ComponentCenterOfMass, cfg.MassProperties.DryCenterOfMassM, &r.CenterOfMassWithoutMotor},
		{ComponentMotor, g.Motor.PositionM, &r.MotorPositionM},
		{ComponentNose, g.Nose.PositionM, &r.Nose.PositionM},
		{ComponentFins, g.Fins.PositionM, &r.Fins.PositionM},
		{ComponentRailButton, g.RailButtons.UpperM, &r.RailButtons.UpperM},
		{ComponentRailButton, g.RailButtons.LowerM, &r.RailButtons.LowerM},
	}
	for i, p := range g.Parachutes {
		r.Parachutes[i] = Parachute{
			Name:           p.Name,
			CdSM2:          ParachuteCdS(p.Cd, p.DiameterM),
			Trigger:        p.Trigger,
			SamplingRateHz: p.SamplingRateHz,
			LagS:           p.LagS,
		}
		places = append(places, placement{ComponentParachute, p.PositionM, &r.Parachutes[i].PositionM})
	}
	for _, p := range places {
		if *p.out, err = MapPosition(p.component, p.x, g); err != nil {
			return Rocket{}, err
		}
	}
	return r, nil
}

func inertia(i config.Inertia) [3]float64 {
	return [3]float64{i.IxxKgM2, i.IyyKgM2, i.IzzKgM2}
}
