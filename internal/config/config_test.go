package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCourse(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAMLCourse(t *testing.T) {
	t.Parallel()

	path := writeCourse(t, `
config:
  speed: 150
  jumpDistance: 90
  energy: 80
  totalDistance: 2000
  road:
    x_min: 0
    x_max: 2000
    y_min: 31
    y_max: 431
obstacles:
  - {x: 300, y: 160, type: cone, damage: 10, asset: cone.txt}
  - {x: 700.5, y: 240, type: hole, damage: 25}
`)

	course, obstacles, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150.0, course.Speed)
	assert.Equal(t, 80, course.Energy)
	assert.Equal(t, 50, course.Road.LaneHeight())

	require.Len(t, obstacles, 2)
	assert.Equal(t, "cone", obstacles[0].Type)
	assert.Equal(t, "cone.txt", obstacles[0].Asset)
	assert.Equal(t, 700.5, obstacles[1].X)
	assert.Empty(t, obstacles[1].Asset)
}

func TestLoad_JSONCourse(t *testing.T) {
	t.Parallel()

	// The original course files were JSON; YAML parses them unchanged.
	path := writeCourse(t, `{
  "config": {"speed": 100, "jumpDistance": 60, "energy": 100, "totalDistance": 1000},
  "obstacles": [{"x": 50, "y": 160, "type": "cone", "damage": 10}]
}`)

	course, obstacles, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, course.Speed)
	require.Len(t, obstacles, 1)
	assert.Equal(t, 50.0, obstacles[0].X)
}

func TestLoad_MalformedObstacleSkipped(t *testing.T) {
	t.Parallel()

	path := writeCourse(t, `
config:
  speed: 100
obstacles:
  - {x: 50, y: 160, type: cone, damage: 10}
  - {x: "not a number", y: 160, type: cone, damage: 10}
  - {x: 90, y: 200, type: hole, damage: 20}
`)

	_, obstacles, err := Load(path)
	require.NoError(t, err, "one bad record must not abort the batch")
	require.Len(t, obstacles, 2)
	assert.Equal(t, 90.0, obstacles[1].X)
}

func TestLoad_MissingSections(t *testing.T) {
	t.Parallel()

	path := writeCourse(t, `config: {speed: 100}`)
	_, _, err := Load(path)
	require.ErrorIs(t, err, ErrMissingSection)

	path = writeCourse(t, `obstacles: []`)
	_, _, err = Load(path)
	require.ErrorIs(t, err, ErrMissingSection)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeCourse(t, `
config:
  totalDistance: 5000
obstacles: []
`)
	course, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, course.Speed)
	assert.Equal(t, 100, course.Energy)
	assert.Equal(t, 5000.0, course.Road.XMax, "road defaults to the full course")
	assert.Equal(t, 31, course.Road.YMin)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CHIVARUN_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("CHIVARUN_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CHIVARUN_TEST_MISSING", "fallback"))
}
