// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rubric

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Group is one project group under evaluation. Static reference data.
type Group struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Members     []string `yaml:"members,omitempty" json:"members,omitempty"`
}

// Criterion is one scoring dimension. Static reference data.
type Criterion struct {
	ID       string  `yaml:"id" json:"id"`
	Label    string  `yaml:"label" json:"label"`
	MaxScore float64 `yaml:"max_score" json:"max_score"`
}

// Rubric is the full evaluation configuration: the groups being judged
// and the criteria they are judged against. It is configuration, not part
// of the concurrency problem, and never changes while a deployment runs.
type Rubric struct {
	Groups   []Group     `yaml:"groups" json:"groups"`
	Criteria []Criterion `yaml:"criteria" json:"criteria"`
}

// Parse decodes and validates a rubric payload.
func Parse(data []byte) (*Rubric, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("rubric: payload is empty")
	}
	var rb Rubric
	if err := yaml.Unmarshal(data, &rb); err != nil {
		return nil, fmt.Errorf("rubric: decode: %w", err)
	}
	if err := rb.Validate(); err != nil {
		return nil, err
	}
	return &rb, nil
}

// LoadFile reads a YAML rubric from disk.
func LoadFile(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rubric: read %s: %w", path, err)
	}
	rb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rubric: %s: %w", path, err)
	}
	return rb, nil
}

// Validate checks ids for presence and uniqueness and scores for sanity.
func (r *Rubric) Validate() error {
	if len(r.Groups) == 0 {
		return fmt.Errorf("rubric: at least one group is required")
	}
	if len(r.Criteria) == 0 {
		return fmt.Errorf("rubric: at least one criterion is required")
	}
	seen := map[string]bool{}
	for i, g := range r.Groups {
		if strings.TrimSpace(g.ID) == "" {
			return fmt.Errorf("rubric: group %d has no id", i)
		}
		if seen[g.ID] {
			return fmt.Errorf("rubric: duplicate group id %q", g.ID)
		}
		seen[g.ID] = true
	}
	seen = map[string]bool{}
	for i, c := range r.Criteria {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("rubric: criterion %d has no id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("rubric: duplicate criterion id %q", c.ID)
		}
		seen[c.ID] = true
		if c.MaxScore <= 0 {
			return fmt.Errorf("rubric: criterion %q needs a positive max_score", c.ID)
		}
	}
	return nil
}

// HasGroup reports whether id names a configured group.
func (r *Rubric) HasGroup(id string) bool {
	for _, g := range r.Groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Criterion returns the criterion with the given id, if configured.
func (r *Rubric) Criterion(id string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// GroupName returns the display name for a group id, falling back to the
// id itself for unknown groups.
func (r *Rubric) GroupName(id string) string {
	for _, g := range r.Groups {
		if g.ID == id {
			return g.Name
		}
	}
	return id
}
