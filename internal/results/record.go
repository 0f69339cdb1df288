package results

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// TrajectoryFile is the conventional name of the exported trajectory table.
const TrajectoryFile = "trajectory.csv"

// Meta identifies the run a Record belongs to.
type Meta struct {
	RunID                    string
	SimulationDate           time.Time
	Source                   string
	ConfigurationFingerprint string
	BurnTimeS                float64
}

// Record is the results document written after a run.
type Record struct {
	RunID                    string                    `json:"run_id"`
	SimulationDate           string                    `json:"simulation_date"`
	EngineVersion            string                    `json:"engine_version"`
	Source                   string                    `json:"source"`
	ConfigurationFingerprint string                    `json:"configuration_fingerprint"`
	Termination              string                    `json:"termination,omitempty"`
	KeyEvents                KeyEvents                 `json:"key_events"`
	MaximumValues            MaximumValues             `json:"maximum_values"`
	Landing                  Landing                   `json:"landing"`
	Missing                  []string                  `json:"missing"`
	Trajectory               TrajectoryRef             `json:"trajectory"`
	Channels                 map[string]Representation `json:"channels"`
}

// KeyEvents groups the summary by flight event.
type KeyEvents struct {
	RailDeparture RailDeparture `json:"rail_departure"`
	Burnout       Burnout       `json:"burnout"`
	Apogee        Apogee        `json:"apogee"`
}

// RailDeparture is the instant the vehicle clears the launch rail.
type RailDeparture struct {
	TimeS      *float64 `json:"time_s"`
	VelocityMS *float64 `json:"velocity_m_s"`
}

// Burnout is the end of the thrust curve.
type Burnout struct {
	TimeS float64 `json:"time_s"`
}

// Apogee is the highest point of the flight.
type Apogee struct {
	TimeS     *float64 `json:"time_s"`
	AltitudeM *float64 `json:"altitude_m"`
	XM        *float64 `json:"x_m"`
	YM        *float64 `json:"y_m"`
}

// MaximumValues are the flight extremes.
type MaximumValues struct {
	SpeedMS         *float64 `json:"max_speed_m_s"`
	Mach            *float64 `json:"max_mach"`
	AccelerationMS2 *float64 `json:"max_acceleration_m_s2"`
	AltitudeM       *float64 `json:"max_altitude_m"`
}

// Landing describes the impact point. Every field is nil when the run hit
// its time limit before impact.
type Landing struct {
	XM          *float64 `json:"x_impact_m"`
	YM          *float64 `json:"y_impact_m"`
	DistanceM   *float64 `json:"landing_distance_m"`
	VelocityMS  *float64 `json:"impact_velocity_m_s"`
	FlightTimeS *float64 `json:"total_flight_time_s"`
}

// TrajectoryRef points at the exported trajectory table.
type TrajectoryRef struct {
	File      string     `json:"file"`
	Samples   int        `json:"samples"`
	TimeSpanS [2]float64 `json:"time_span_s"`
}

// NewRecord builds the results record for ex.
func NewRecord(meta Meta, ex *Extraction) Record {
	s := ex.Summary
	missing := s.Missing
	if missing == nil {
		missing = []string{}
	}
	ref := TrajectoryRef{File: TrajectoryFile, Samples: len(ex.Trajectory)}
	if n := len(ex.Trajectory); n > 0 {
		ref.TimeSpanS = [2]float64{ex.Trajectory[0].Time, ex.Trajectory[n-1].Time}
	}
	return Record{
		RunID:                    meta.RunID,
		SimulationDate:           meta.SimulationDate.UTC().Format(time.RFC3339),
		EngineVersion:            ex.EngineVersion,
		Source:                   meta.Source,
		ConfigurationFingerprint: meta.ConfigurationFingerprint,
		Termination:              ex.Termination,
		KeyEvents: KeyEvents{
			RailDeparture: RailDeparture{TimeS: s.RailExitTimeS, VelocityMS: s.RailExitVelocityMS},
			Burnout:       Burnout{TimeS: meta.BurnTimeS},
			Apogee: Apogee{
				TimeS:     s.ApogeeTimeS,
				AltitudeM: s.ApogeeAltitudeM,
				XM:        s.ApogeeXM,
				YM:        s.ApogeeYM,
			},
		},
		MaximumValues: MaximumValues{
			SpeedMS:         s.MaxSpeedMS,
			Mach:            s.MaxMach,
			AccelerationMS2: s.MaxAccelerationMS2,
			AltitudeM:       s.ApogeeAltitudeM,
		},
		Landing: Landing{
			XM:          s.ImpactXM,
			YM:          s.ImpactYM,
			DistanceM:   s.LandingDistanceM(),
			VelocityMS:  s.ImpactVelocityMS,
			FlightTimeS: s.FlightTimeS,
		},
		Missing:    missing,
		Trajectory: ref,
		Channels:   ex.Representations,
	}
}

// MarshalRecord encodes r as indented JSON.
func MarshalRecord(r Record) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode results record: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteRecordFile writes r to path.
func WriteRecordFile(path string, r Record) error {
	data, err := MarshalRecord(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results record %s: %w", path, err)
	}
	return nil
}

// ReadRecordFile reads a results record from path.
func ReadRecordFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read results record %s: %w", path, err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decode results record %s: %w", path, err)
	}
	return r, nil
}
