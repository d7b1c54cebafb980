package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"chivarun/internal/obstacle"
)

// ErrMissingSection is returned when the course file lacks one of the
// required top-level sections.
var ErrMissingSection = errors.New("course file must contain 'config' and 'obstacles' sections")

// Course holds the game parameters from the course file.
type Course struct {
	Speed         float64 `yaml:"speed"`
	JumpDistance  float64 `yaml:"jumpDistance"`
	Energy        int     `yaml:"energy"`
	TotalDistance float64 `yaml:"totalDistance"`
	Road          Road    `yaml:"road"`
}

// Road bounds the area in which obstacles may be placed and the car
// may drive. Y values are lane baselines.
type Road struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin int     `yaml:"y_min"`
	YMax int     `yaml:"y_max"`
}

// file mirrors the course file layout. Obstacles stay raw nodes so a
// single malformed record can be skipped without failing the load.
type file struct {
	Config    *Course      `yaml:"config"`
	Obstacles *[]yaml.Node `yaml:"obstacles"`
}

// Load parses a course file. YAML is a superset of JSON, so both the
// original config.json layout and YAML courses parse. Malformed
// obstacle records are logged and dropped; structural problems
// (missing file, missing sections) fail the load.
func Load(path string) (Course, []obstacle.Obstacle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Course{}, nil, fmt.Errorf("read course file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Course{}, nil, fmt.Errorf("parse course file %s: %w", path, err)
	}
	if f.Config == nil || f.Obstacles == nil {
		return Course{}, nil, ErrMissingSection
	}

	course := *f.Config
	applyDefaults(&course)

	obstacles := make([]obstacle.Obstacle, 0, len(*f.Obstacles))
	for i, node := range *f.Obstacles {
		var o obstacle.Obstacle
		if err := node.Decode(&o); err != nil {
			log.Warn("skipping malformed obstacle record", "index", i, "err", err)
			continue
		}
		obstacles = append(obstacles, o)
	}
	return course, obstacles, nil
}

// applyDefaults fills unset fields with the historical defaults.
func applyDefaults(c *Course) {
	if c.Speed <= 0 {
		c.Speed = 120
	}
	if c.JumpDistance <= 0 {
		c.JumpDistance = 80
	}
	if c.Energy <= 0 {
		c.Energy = 100
	}
	if c.TotalDistance <= 0 {
		c.TotalDistance = 1000
	}
	if c.Road.XMax <= c.Road.XMin {
		c.Road.XMin = 0
		c.Road.XMax = c.TotalDistance
	}
	if c.Road.YMax <= c.Road.YMin {
		c.Road.YMin = 31
		c.Road.YMax = 500
	}
}

// LaneHeight returns the vertical distance between lane baselines; the
// road is divided into eight lanes.
func (r Road) LaneHeight() int {
	return (r.YMax - r.YMin) / 8
}
