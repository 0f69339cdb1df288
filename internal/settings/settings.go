// Package settings loads the run settings: where the source tables live,
// the vehicle constants, the engine command and where artifacts go.
//
// Values are layered with koanf. Built-in defaults describe the BM-001
// benchmark; an optional YAML file overrides them; PYROPS_INPUT_DIR and
// PYROPS_OUTPUT_DIR override the directories.
package settings

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/tabular"
)

// Settings is the complete run configuration.
type Settings struct {
	InputDir  string `yaml:"input_dir" validate:"required"`
	OutputDir string `yaml:"output_dir" validate:"required"`

	Tables Tables `yaml:"tables"`

	// Vehicle is validated by config.ValidateStatic.
	Vehicle config.Static `yaml:"vehicle" validate:"-"`

	Engine Engine `yaml:"engine"`

	// ArchivePath is the run archive database. Empty disables archiving.
	ArchivePath string `yaml:"archive_path"`
}

// Table locates one source table. An empty Sheet selects the first sheet.
type Table struct {
	File  string `yaml:"file" validate:"required"`
	Sheet string `yaml:"sheet"`
}

// Tables holds one Table per role.
type Tables struct {
	Thrust         Table `yaml:"thrust"`
	Aerodynamics   Table `yaml:"aerodynamics"`
	Atmosphere     Table `yaml:"atmosphere"`
	Wind           Table `yaml:"wind"`
	MassProperties Table `yaml:"mass_properties"`
}

// Engine describes the external flight-dynamics program.
type Engine struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Dir     string   `yaml:"dir"`

	// Timeout bounds the wall-clock time of one engine run. Zero means no
	// limit.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Table returns the table settings for role.
func (t Tables) Table(role tabular.Role) (Table, error) {
	switch role {
	case tabular.RoleThrust:
		return t.Thrust, nil
	case tabular.RoleAerodynamics:
		return t.Aerodynamics, nil
	case tabular.RoleAtmosphere:
		return t.Atmosphere, nil
	case tabular.RoleWind:
		return t.Wind, nil
	case tabular.RoleMassProperties:
		return t.MassProperties, nil
	default:
		return Table{}, fmt.Errorf("no table settings for role %q", role)
	}
}

// TablePath resolves the file of role against InputDir. Absolute file
// names are used as given.
func (s *Settings) TablePath(role tabular.Role) (path, sheet string, err error) {
	t, err := s.Tables.Table(role)
	if err != nil {
		return "", "", err
	}
	if filepath.IsAbs(t.File) {
		return t.File, t.Sheet, nil
	}
	return filepath.Join(s.InputDir, t.File), t.Sheet, nil
}

// Default returns the built-in settings: the BM-001 workbooks read from
// ./data and artifacts written to ./out.
func Default() *Settings {
	return &Settings{
		InputDir:  "data",
		OutputDir: "out",
		Tables: Tables{
			Thrust:         Table{File: "thrust_curve_hybrid.xlsx", Sheet: "thrust_curve"},
			Aerodynamics:   Table{File: "RASAeroII.xlsx", Sheet: "RASAeroII"},
			Atmosphere:     Table{File: "atmosphere_data.xlsx", Sheet: "atmosphere_data"},
			Wind:           Table{File: "wind.xlsx"},
			MassProperties: Table{File: "mass_properties.xlsx"},
		},
		Vehicle: DefaultVehicle(),
		Engine: Engine{
			Timeout: 10 * time.Minute,
		},
	}
}

// DefaultVehicle returns the BM-001 vehicle and launch constants.
func DefaultVehicle() config.Static {
	return config.Static{
		Source: "BM-001",
		Geometry: config.RocketGeometry{
			BodyRadiusM: 0.087,
			BodyLengthM: 4.92,
			Nose:        config.Nose{Kind: "ogive", LengthM: 0.5, PositionM: 0},
			Fins: config.Fins{
				Count:      4,
				RootChordM: 0.3,
				TipChordM:  0.15,
				SpanM:      0.15,
				PositionM:  4.42,
			},
			Motor: config.MotorGeometry{
				Type:             "hybrid",
				PositionM:        4.92,
				LengthM:          2.2,
				DryMassKg:        5.0,
				DryInertia:       config.Inertia{IxxKgM2: 0.05, IyyKgM2: 0.05, IzzKgM2: 0.001},
				CenterOfDryMassM: 1.1,
				NozzleRadiusM:    0.0474,
				ThroatRadiusM:    0.020,
				ChamberRadiusM:   0.0735,
				ChamberHeightM:   0.51,
				ChamberPositionM: 0.9,
			},
			Parachutes: []config.Parachute{{
				Name:           "Main",
				Cd:             2.2,
				DiameterM:      1.22052868353847,
				Trigger:        config.TriggerApogee,
				SamplingRateHz: 105,
				LagS:           0,
				PositionM:      1.5,
			}},
			RailButtons: config.RailButtons{UpperM: 2.5, LowerM: 4.4, AngularPositionDeg: 45},
		},
		Launch: config.LaunchConditions{
			RailLengthM:  7.0,
			ElevationDeg: 80.0,
			AzimuthDeg:   -100.0,
			LatitudeDeg:  -34.6,
			LongitudeDeg: 20.3,
			AltitudeM:    0,
		},
		Simulation: config.SimulationLimits{
			MaxTimeS:     1200,
			MaxTimeStepS: 0.1,
		},
	}
}
