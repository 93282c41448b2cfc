// Package scenario loads a facility topology and an initial event
// schedule from YAML, so a human (or a test) can describe one of the
// spec's S1-S6-style scenarios declaratively instead of wiring it up
// in Go. It is not part of the kernel: smpl never imports this
// package. Structured and validated the way the teacher's
// sim/bundle.go PolicyBundle is: strict decoding plus an explicit
// Validate pass.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/go-smpl/smpl/smpl"
	"github.com/go-smpl/smpl/smpl/rng"
)

// FacilitySpec describes one facility to create before the schedule
// runs.
type FacilitySpec struct {
	Name    string `yaml:"name"`
	Servers int    `yaml:"servers"`
}

// ScheduledEvent describes one event to seed into the simulator
// before the first Cause.
type ScheduledEvent struct {
	Code  int     `yaml:"code"`
	Token string  `yaml:"token"`
	Time  float64 `yaml:"time"`
}

// GeneratorSpec describes a randomized arrival stream to synthesize in
// place of an explicit Schedule; Validate rejects a scenario that sets
// both. Arrival times are
// drawn from an exponential distribution via smpl/rng, seeded so the
// same GeneratorSpec always produces the same schedule.
type GeneratorSpec struct {
	Seed             int64   `yaml:"seed"`
	Arrivals         int     `yaml:"arrivals"`
	MeanInterarrival float64 `yaml:"mean_interarrival"`
	Code             int     `yaml:"code"`
}

// Scenario is a declarative facility topology plus an initial event
// schedule, loadable from YAML.
type Scenario struct {
	Name         string           `yaml:"name"`
	Facilities   []FacilitySpec   `yaml:"facilities"`
	Schedule     []ScheduledEvent `yaml:"schedule"`
	Generator    *GeneratorSpec   `yaml:"generator"`
	ReleaseDelay float64          `yaml:"release_delay"`
}

// Load reads and parses a YAML scenario file. Uses strict parsing:
// unrecognized keys (typos) are rejected, matching LoadPolicyBundle's
// convention in the teacher.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks facility server counts, event times, and tokens.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("scenario: name must be set")
	}
	if len(sc.Facilities) == 0 {
		return fmt.Errorf("scenario: at least one facility is required")
	}
	seen := make(map[string]bool, len(sc.Facilities))
	for _, f := range sc.Facilities {
		if f.Name == "" {
			return fmt.Errorf("scenario: facility name must be set")
		}
		if seen[f.Name] {
			return fmt.Errorf("scenario: duplicate facility name %q", f.Name)
		}
		seen[f.Name] = true
		if f.Servers < 1 {
			return fmt.Errorf("scenario: facility %q servers must be >= 1, got %d", f.Name, f.Servers)
		}
	}
	for i, ev := range sc.Schedule {
		if ev.Token == "" {
			return fmt.Errorf("scenario: schedule[%d] token must be set", i)
		}
		if ev.Time < 0 {
			return fmt.Errorf("scenario: schedule[%d] time must be >= 0, got %v", i, ev.Time)
		}
	}
	if sc.ReleaseDelay < 0 {
		return fmt.Errorf("scenario: release_delay must be >= 0, got %v", sc.ReleaseDelay)
	}
	if sc.Generator != nil {
		if len(sc.Schedule) > 0 {
			return fmt.Errorf("scenario: generator and an explicit schedule are mutually exclusive")
		}
		if sc.Generator.Arrivals < 1 {
			return fmt.Errorf("scenario: generator.arrivals must be >= 1, got %d", sc.Generator.Arrivals)
		}
		if sc.Generator.MeanInterarrival <= 0 {
			return fmt.Errorf("scenario: generator.mean_interarrival must be > 0, got %v", sc.Generator.MeanInterarrival)
		}
	}
	return nil
}

// generateSchedule expands a GeneratorSpec into a concrete Schedule by
// drawing exponential interarrival gaps from a dedicated "arrivals"
// subsystem stream, so repeated Build calls against the same seed
// reproduce the same sequence of event times.
func (g *GeneratorSpec) generateSchedule() []ScheduledEvent {
	source := rng.NewSource(rng.Seed(g.Seed))
	stream := source.For("arrivals")

	code := g.Code
	if code == 0 {
		code = 1
	}

	schedule := make([]ScheduledEvent, g.Arrivals)
	t := 0.0
	for i := range schedule {
		t += rng.Exponential(stream, g.MeanInterarrival)
		schedule[i] = ScheduledEvent{
			Code:  code,
			Token: "gen-" + strconv.Itoa(i+1),
			Time:  t,
		}
	}
	return schedule
}

// Build creates a fresh Simulator named after the scenario, creates
// every facility, and seeds the initial schedule. Returns the
// simulator and a lookup from facility name to FacilityID.
func (sc *Scenario) Build() (*smpl.Simulator[string], map[string]smpl.FacilityID, error) {
	sim := smpl.New[string](sc.Name)

	ids := make(map[string]smpl.FacilityID, len(sc.Facilities))
	for _, f := range sc.Facilities {
		id, err := sim.Facility(f.Name, f.Servers)
		if err != nil {
			return nil, nil, fmt.Errorf("creating facility %q: %w", f.Name, err)
		}
		ids[f.Name] = id
	}

	schedule := sc.Schedule
	if sc.Generator != nil {
		schedule = sc.Generator.generateSchedule()
	}

	for _, ev := range schedule {
		if err := sim.Schedule(ev.Code, ev.Time, ev.Token); err != nil {
			return nil, nil, fmt.Errorf("seeding schedule for token %q: %w", ev.Token, err)
		}
	}

	return sim, ids, nil
}
