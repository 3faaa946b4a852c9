package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"gopkg.in/yaml.v3"
)

// Config is the YAML input of the fixture planner.
type Config struct {
	League       string      `yaml:"league"`
	Season       string      `yaml:"season"`
	Start        Timestamp   `yaml:"start"`
	IntervalDays int         `yaml:"interval_days"`
	FirstGameday int         `yaml:"first_gameday"`
	Rounds       int         `yaml:"rounds"`
	Venue        string      `yaml:"venue"`
	TeamList     []TeamEntry `yaml:"teams"`
}

type TeamEntry struct {
	Name string `yaml:"name"`
	Kit  string `yaml:"kit"`
}

// Timestamp accepts RFC3339 or a bare 2006-01-02 date.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if v, err := time.Parse(layout, raw); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("line %d: invalid start %q (want RFC3339 or YYYY-MM-DD)", node.Line, raw)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Teams converts the list into domain teams with slug ids.
func (c Config) Teams() []team.Team {
	out := make([]team.Team, 0, len(c.TeamList))
	for _, t := range c.TeamList {
		name := strings.TrimSpace(t.Name)
		out = append(out, team.Team{
			ID:   strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-"),
			Name: name,
			Kit:  t.Kit,
		})
	}
	return out
}

func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(raw)
}

func parseConfig(raw []byte) (Config, error) {
	cfg := Config{IntervalDays: 7, FirstGameday: 1, Rounds: 2}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.League) == "" {
		errs = append(errs, errors.New("league is required"))
	}
	if strings.TrimSpace(c.Season) == "" {
		errs = append(errs, errors.New("season is required"))
	}
	if c.Start.IsZero() {
		errs = append(errs, errors.New("start is required"))
	}
	if c.Rounds < 1 {
		errs = append(errs, fmt.Errorf("rounds must be >= 1, got %d", c.Rounds))
	}
	if c.IntervalDays < 1 {
		errs = append(errs, fmt.Errorf("interval_days must be >= 1, got %d", c.IntervalDays))
	}
	if len(c.TeamList) < 2 {
		errs = append(errs, fmt.Errorf("at least two teams are required, got %d", len(c.TeamList)))
	}

	seen := make(map[string]struct{}, len(c.TeamList))
	for _, t := range c.Teams() {
		if t.ID == "" {
			errs = append(errs, errors.New("team name must not be empty"))
			continue
		}
		if _, ok := seen[t.ID]; ok {
			errs = append(errs, fmt.Errorf("duplicate team %q", t.Name))
		}
		seen[t.ID] = struct{}{}
	}
	return errors.Join(errs...)
}
