// Package pipelinecfg is a small YAML-loadable configuration for
// pipeline-wide knobs of the type-inference/IR-lowering pipeline
// (SPEC_FULL.md §2 AMBIENT STACK). Each knob only restricts the
// pipeline: it can make it reject a program the default configuration
// accepts. It is loaded the way the teacher loads its own YAML specs
// (gopkg.in/yaml.v3, os.ReadFile + yaml.Unmarshal).
package pipelinecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls two defensive/host-embedding knobs:
//
//   - MaxConstraintIterations bounds how many constraints the unifier
//     will drain before giving up, guarding against a malformed or
//     adversarially large constraint set looping forever.
//   - AllowOpenRows, when false, makes the constraint generator type
//     each projection's record as a closed row holding only the
//     projected field instead of an open row, so row polymorphism is
//     unavailable to a stricter embedding host.
type Config struct {
	MaxConstraintIterations int  `yaml:"max_constraint_iterations"`
	AllowOpenRows           bool `yaml:"allow_open_rows"`
}

// Default returns the configuration the pipeline uses when no override
// is loaded: no iteration ceiling, open rows allowed (full row
// polymorphism, matching spec.md's default semantics).
func Default() Config {
	return Config{MaxConstraintIterations: 0, AllowOpenRows: true}
}

// Load reads and parses a Config from a YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pipelinecfg: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("pipelinecfg: parse %s: %w", path, err)
	}
	return cfg, nil
}
