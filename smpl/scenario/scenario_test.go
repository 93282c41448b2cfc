package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-smpl/smpl/smpl"
)

// TestLoad_S2 verifies loading and building scenario S2 produces a
// simulator whose facility and initial schedule match the file.
func TestLoad_S2(t *testing.T) {
	// GIVEN the s2.yaml fixture
	sc, err := Load(filepath.Join("testdata", "s2.yaml"))
	require.NoError(t, err, "failed to load s2.yaml")

	// THEN the scenario fields decode as expected
	assert.Equal(t, "s2-single-server-contention", sc.Name)
	require.Len(t, sc.Facilities, 1)
	assert.Equal(t, "F", sc.Facilities[0].Name)
	assert.Equal(t, 1, sc.Facilities[0].Servers)
	require.Len(t, sc.Schedule, 2)
	assert.Equal(t, 1.0, sc.ReleaseDelay)

	// WHEN it is built into a simulator
	sim, ids, err := sc.Build()
	require.NoError(t, err)

	// THEN the facility exists with one idle server and no queue
	status, err := sim.Status(ids["F"])
	require.NoError(t, err)
	assert.Equal(t, smpl.Status{IdleServers: 1, BusyServers: 0, QueueLength: 0}, status)

	// AND the seeded schedule fires both events at time 0
	ev, ok := sim.Cause()
	require.True(t, ok)
	assert.Equal(t, "P1", ev.Token)
	assert.Equal(t, 0.0, ev.Time)

	ev, ok = sim.Cause()
	require.True(t, ok)
	assert.Equal(t, "P2", ev.Token)
}

// TestLoad_S4 verifies a multi-server scenario loads with its
// full schedule.
func TestLoad_S4(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "s4.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, sc.Facilities[0].Servers)
	assert.Len(t, sc.Schedule, 4)
}

// TestLoad_InvalidZeroServers verifies strict validation rejects a
// zero-server facility rather than deferring the failure to the
// kernel's own BadArg.
func TestLoad_InvalidZeroServers(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid-zero-servers.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servers must be >= 1")
}

// TestLoad_MissingFile verifies a clear wrapped error on a missing
// file, matching the teacher's fmt.Errorf("...: %w", err) convention.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

// TestLoad_Generator verifies a generator block expands into a
// reproducible schedule instead of reading one from YAML directly.
func TestLoad_Generator(t *testing.T) {
	// GIVEN a scenario with a generator instead of an explicit schedule
	sc := &Scenario{
		Name:         "generated",
		Facilities:   []FacilitySpec{{Name: "F", Servers: 1}},
		Generator:    &GeneratorSpec{Seed: 42, Arrivals: 5, MeanInterarrival: 2.0},
		ReleaseDelay: 1.0,
	}
	require.NoError(t, sc.Validate())

	// WHEN it is built twice from the same seed
	sim1, ids1, err := sc.Build()
	require.NoError(t, err)
	sim2, ids2, err := sc.Build()
	require.NoError(t, err)

	// THEN both runs fire the same sequence of tokens at the same times
	for i := 0; i < 5; i++ {
		ev1, ok1 := sim1.Cause()
		ev2, ok2 := sim2.Cause()
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, ev1.Token, ev2.Token)
		assert.Equal(t, ev1.Time, ev2.Time)
	}
	assert.Equal(t, ids1["F"], ids2["F"])
}

// TestValidate_GeneratorAndScheduleConflict verifies a scenario cannot
// mix a generator with an explicit schedule.
func TestValidate_GeneratorAndScheduleConflict(t *testing.T) {
	sc := &Scenario{
		Name:       "conflict",
		Facilities: []FacilitySpec{{Name: "F", Servers: 1}},
		Schedule:   []ScheduledEvent{{Code: 1, Token: "T1", Time: 0}},
		Generator:  &GeneratorSpec{Seed: 1, Arrivals: 1, MeanInterarrival: 1.0},
	}
	err := sc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

// TestValidate_DuplicateFacilityName verifies duplicate facility
// names are rejected.
func TestValidate_DuplicateFacilityName(t *testing.T) {
	sc := &Scenario{
		Name: "dup",
		Facilities: []FacilitySpec{
			{Name: "F", Servers: 1},
			{Name: "F", Servers: 2},
		},
	}
	err := sc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate facility name")
}
