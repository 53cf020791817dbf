// Package script runs fittrack operations from a YAML file without the
// interactive shell. A script names one user, optionally creates the account,
// logs in and dispatches each step through the resulting session.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Expectation values for Step.Expect.
const (
	ExpectSuccess = "success"
	ExpectError   = "error"
)

// Script is a named list of operations run as one user.
type Script struct {
	// Name identifies the script in reports.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// User is the account the steps run as.
	User Credentials `yaml:"user"`

	// CreateAccount registers User before logging in.
	CreateAccount bool `yaml:"create_account,omitempty"`

	// Steps are dispatched in order.
	Steps []Step `yaml:"steps"`
}

// Credentials is a username and password pair.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Step is one tagged operation.
type Step struct {
	// Op is an operation tag such as "log-exercise".
	Op string `yaml:"op"`

	// Args are the operation's string arguments.
	Args map[string]string `yaml:"args,omitempty"`

	// Expect is ExpectSuccess (the default) or ExpectError.
	// A step whose outcome differs counts as failed.
	Expect string `yaml:"expect,omitempty"`
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a script. Unknown fields are rejected so typos surface
// instead of being ignored.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

func validate(s *Script) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.User.Username == "" {
		return fmt.Errorf("user.username is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		switch step.Expect {
		case "", ExpectSuccess, ExpectError:
		default:
			return fmt.Errorf("steps[%d]: expect must be %q or %q, got %q", i, ExpectSuccess, ExpectError, step.Expect)
		}
	}
	return nil
}
