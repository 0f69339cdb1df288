package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/observability"
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
	"github.com/anbanpillay/ASRI-PyROPS/internal/tabular"
)

// LoadInputs reads every source table named in the settings and normalizes
// it by role.
func (p *Pipeline) LoadInputs(ctx context.Context) (config.Inputs, error) {
	var in config.Inputs
	err := p.stage(observability.StageNormalize, func() error {
		for _, role := range tabular.Roles {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.loadRole(role, &in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return config.Inputs{}, err
	}
	return in, nil
}

func (p *Pipeline) loadRole(role tabular.Role, in *config.Inputs) error {
	path, sheet, err := p.settings.TablePath(role)
	if err != nil {
		return err
	}
	raw, err := tabular.ReadFile(path, sheet)
	if err != nil {
		return fmt.Errorf("%s table: %w", role, err)
	}

	switch role {
	case tabular.RoleThrust:
		in.Thrust, err = tabular.NormalizeThrust(raw)
	case tabular.RoleAerodynamics:
		in.Aerodynamics, err = tabular.NormalizeAerodynamics(raw)
	case tabular.RoleAtmosphere:
		in.Atmosphere, err = tabular.NormalizeAtmosphere(raw)
	case tabular.RoleWind:
		in.Wind, err = tabular.NormalizeWind(raw)
	case tabular.RoleMassProperties:
		in.MassProperties, err = tabular.NormalizeMassProperties(raw)
	default:
		err = fmt.Errorf("unknown table role %q", role)
	}
	if err != nil {
		return fmt.Errorf("%s table %s: %w", role, raw.Source, err)
	}
	p.logger.Info("table normalized", "role", role, "source", raw.Source)
	return nil
}

// Prepare loads the tables and assembles the configuration.
func (p *Pipeline) Prepare(ctx context.Context) (*config.Configuration, error) {
	in, err := p.LoadInputs(ctx)
	if err != nil {
		return nil, err
	}
	var cfg *config.Configuration
	err = p.stage(observability.StageAssemble, func() error {
		var err error
		cfg, err = config.Assemble(in, p.settings.Vehicle)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("configuration assembled",
		"source", cfg.Source,
		"burn_time_s", cfg.Motor.BurnTimeS,
		"peak_thrust_N", cfg.Motor.PeakThrustN,
		"total_impulse_Ns", cfg.Motor.TotalImpulseNs,
		"propellant_mass_kg", cfg.Motor.PropellantMassKg,
	)
	return cfg, nil
}

// ConvertOptions controls Convert.
type ConvertOptions struct {
	// RecordPath is where the configuration record is written. The format
	// follows the extension. Empty means <output_dir>/configuration.yaml.
	RecordPath string

	// ExportDir, when set, receives one normalized CSV per table.
	ExportDir string
}

// ConvertSummary describes a converted configuration.
type ConvertSummary struct {
	Source           string   `json:"source"`
	RecordPath       string   `json:"record_path"`
	Fingerprint      string   `json:"fingerprint"`
	BurnTimeS        float64  `json:"burn_time_s"`
	PeakThrustN      float64  `json:"peak_thrust_N"`
	TotalImpulseNs   float64  `json:"total_impulse_Ns"`
	PropellantMassKg float64  `json:"propellant_mass_kg"`
	WetMassKg        float64  `json:"wet_mass_kg"`
	DryMassKg        float64  `json:"dry_mass_kg"`
	Exported         []string `json:"exported,omitempty"`
}

// Convert prepares the configuration and writes its record, plus the
// normalized tables when requested.
func (p *Pipeline) Convert(ctx context.Context, opts ConvertOptions) (*ConvertSummary, *config.Configuration, error) {
	cfg, err := p.Prepare(ctx)
	if err != nil {
		return nil, nil, err
	}
	path := opts.RecordPath
	if path == "" {
		path = filepath.Join(p.settings.OutputDir, ConfigurationFile)
	}

	sum := &ConvertSummary{
		Source:           cfg.Source,
		RecordPath:       path,
		BurnTimeS:        cfg.Motor.BurnTimeS,
		PeakThrustN:      cfg.Motor.PeakThrustN,
		TotalImpulseNs:   cfg.Motor.TotalImpulseNs,
		PropellantMassKg: cfg.Motor.PropellantMassKg,
		WetMassKg:        cfg.MassProperties.WetMassKg,
		DryMassKg:        cfg.MassProperties.DryMassKg,
	}
	err = p.stage(observability.StageExport, func() error {
		var err error
		if sum.Fingerprint, err = config.Fingerprint(cfg); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create record directory: %w", err)
		}
		if err := config.WriteFile(path, cfg); err != nil {
			return err
		}
		if opts.ExportDir != "" {
			sum.Exported, err = ExportTables(opts.ExportDir, cfg)
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	p.logger.Info("configuration written", "path", path, "fingerprint", sum.Fingerprint)
	return sum, cfg, nil
}

// Exported table file names.
const (
	ExportThrustFile         = "thrust_curve.csv"
	ExportAerodynamicsFile   = "aerodynamics.csv"
	ExportAtmosphereFile     = "atmosphere.csv"
	ExportWindFile           = "wind.csv"
	ExportMassPropertiesFile = "mass_properties.csv"
)

// ExportTables writes the normalized tables of cfg into dir as CSV and
// returns the written paths in role order.
func ExportTables(dir string, cfg *config.Configuration) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	exports := []struct {
		file  string
		write func(f *os.File) error
	}{
		{ExportThrustFile, seriesWriter(cfg.Motor.Thrust.Series)},
		{ExportAerodynamicsFile, func(f *os.File) error { return tabular.WriteAerodynamicsCSV(f, cfg.Aerodynamics.Table) }},
		{ExportAtmosphereFile, seriesWriter(cfg.Atmosphere.Series)},
		{ExportWindFile, seriesWriter(cfg.Wind.Series)},
		{ExportMassPropertiesFile, seriesWriter(cfg.MassProperties.Series.Series)},
	}

	paths := make([]string, 0, len(exports))
	for _, e := range exports {
		path := filepath.Join(dir, e.file)
		if err := writeFile(path, e.write); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func seriesWriter(s series.Series) func(*os.File) error {
	return func(f *os.File) error { return tabular.WriteSeriesCSV(f, s) }
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
