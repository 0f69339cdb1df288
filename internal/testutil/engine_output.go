package testutil

// FakeEngineOutput is a complete engine output for a short BM-001 flight.
// Channels use both representations and y is one sample short, so the
// trajectory truncates to four samples.
const FakeEngineOutput = `{
  "engine_version": "fake-engine 1.0",
  "termination": "impact",
  "scalars": {
    "apogee": 3012.5,
    "apogee_time": 24.2,
    "apogee_x": 150.25,
    "apogee_y": -80.5,
    "out_of_rail_time": 0.6,
    "out_of_rail_velocity": 27.3,
    "max_speed": 310.4,
    "max_mach_number": 0.93,
    "max_acceleration": 98.6,
    "x_impact": 300,
    "y_impact": -400,
    "impact_velocity": 5.4,
    "t_final": 190.2
  },
  "channels": {
    "z": [[0, 0], [1, 50], [2, 180], [3, 350], [4, 500]],
    "speed": {"x": [0, 1, 2, 3, 4], "y": [0, 60, 150, 170, 160]},
    "acceleration": [[0, 1, 2, 3, 4], [0, 90, 80, -5, -9.8]],
    "x": [[0, 0], [1, 1], [2, 3], [3, 6], [4, 10]],
    "y": [[0, 0], [1, -1], [2, -2], [3, -4]]
  }
}
`

// TruncatedEngineOutput is a run that hit its time limit before impact: the
// impact scalars are null or absent.
const TruncatedEngineOutput = `{
  "engine_version": "fake-engine 1.0",
  "termination": "max_time",
  "scalars": {
    "apogee": 3012.5,
    "apogee_time": 24.2,
    "apogee_x": 150.25,
    "apogee_y": -80.5,
    "out_of_rail_time": 0.6,
    "out_of_rail_velocity": 27.3,
    "max_speed": 310.4,
    "max_mach_number": 0.93,
    "max_acceleration": 98.6,
    "x_impact": null,
    "y_impact": null,
    "t_final": 30
  },
  "channels": {
    "z": [[0, 0], [10, 1500], [20, 2900], [30, 2950]],
    "speed": [[0, 0], [10, 200], [20, 80], [30, 40]],
    "acceleration": [[0, 0], [10, 40], [20, -9.8], [30, -9.8]],
    "x": [[0, 0], [10, 40], [20, 120], [30, 160]],
    "y": [[0, 0], [10, -20], [20, -60], [30, -80]]
  }
}
`
