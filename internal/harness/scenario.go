package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gradebook/internal/store"
)

// Scenario defines a sequence of store operations with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup seeds the store before the steps run. Seeds must have unique ids.
	Setup []SeedRecord `yaml:"setup,omitempty"`

	// Steps are executed in order against the same store.
	Steps []Step `yaml:"steps"`

	// Final is checked against the store after the last step.
	Final *Expect `yaml:"final,omitempty"`
}

// SeedRecord is a record added during setup.
type SeedRecord struct {
	ID     int       `yaml:"id"`
	Name   string    `yaml:"name"`
	Grades []float64 `yaml:"grades"`
}

// Step is one store operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// ID is used by add, update, remove, get and find_ordered.
	ID *int `yaml:"id,omitempty"`

	// Name is used by add, update and lookup.
	Name string `yaml:"name,omitempty"`

	// Grades is used by add and update.
	Grades []float64 `yaml:"grades,omitempty"`

	// Query is used by find.
	Query *string `yaml:"query,omitempty"`

	// Sort is used by list ("id", "name", "average"; default "id").
	Sort string `yaml:"sort,omitempty"`

	// Format is used by reload ("json", "yaml", "sqlite"; default "json").
	Format string `yaml:"format,omitempty"`

	// Expect is optional; nil means the step is only traced.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the values a step (or the final store) must produce.
// Unset fields are not checked.
type Expect struct {
	// Outcome is one of the Outcome* constants.
	Outcome string `yaml:"outcome,omitempty"`

	// Name and Average are checked against the record a step returned.
	Name    *string  `yaml:"name,omitempty"`
	Average *float64 `yaml:"average,omitempty"`

	// IDs is the exact id sequence returned by find or list,
	// or the store contents when used in Final.
	IDs []int `yaml:"ids,omitempty"`

	// Size is the number of records in the store after the step.
	Size *int `yaml:"size,omitempty"`
}

// Step operations.
const (
	OpAdd         = "add"
	OpUpdate      = "update"
	OpRemove      = "remove"
	OpGet         = "get"
	OpFindOrdered = "find_ordered"
	OpLookup      = "lookup"
	OpFind        = "find"
	OpList        = "list"
	OpReload      = "reload"
)

// Step outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeFound        = "found"
	OutcomeNotFound     = "not_found"
	OutcomeDuplicateKey = "duplicate_key"
)

var (
	knownOutcomes = []string{OutcomeOK, OutcomeFound, OutcomeNotFound, OutcomeDuplicateKey}
	reloadFormats = []string{"json", "yaml", "sqlite"}
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	if s.Final != nil && s.Final.Outcome != "" {
		return fmt.Errorf("final: outcome is not allowed")
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, s *Step) error {
	switch s.Op {
	case OpAdd, OpUpdate, OpRemove, OpGet, OpFindOrdered:
		if s.ID == nil {
			return fmt.Errorf("steps[%d]: id is required for %s", index, s.Op)
		}
	case OpLookup:
		if s.Name == "" {
			return fmt.Errorf("steps[%d]: name is required for lookup", index)
		}
	case OpFind:
		if s.Query == nil {
			return fmt.Errorf("steps[%d]: query is required for find", index)
		}
	case OpList:
		if s.Sort != "" {
			if _, err := store.ParseCriterion(s.Sort); err != nil {
				return fmt.Errorf("steps[%d]: %w", index, err)
			}
		}
	case OpReload:
		if s.Format != "" && !slices.Contains(reloadFormats, s.Format) {
			return fmt.Errorf("steps[%d]: unknown reload format %q", index, s.Format)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}

	if s.Expect != nil && s.Expect.Outcome != "" && !slices.Contains(knownOutcomes, s.Expect.Outcome) {
		return fmt.Errorf("steps[%d].expect: unknown outcome %q", index, s.Expect.Outcome)
	}

	return nil
}
