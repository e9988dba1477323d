// Package agents loads prompt-defined agents. An agent is a markdown file
// with YAML frontmatter naming its model and tools; the body is the
// instructions given to the model.
package agents

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrAgentNotFound is returned when no agent has the requested id.
var ErrAgentNotFound = errors.New("agent not found")

// Agent is a prompt-defined agent.
type Agent struct {
	// From frontmatter
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Model       string   `yaml:"model,omitempty" json:"model,omitempty"`
	Tools       []string `yaml:"tools,omitempty" json:"tools,omitempty"`
	Memory      bool     `yaml:"memory,omitempty" json:"memory"`

	// From content
	Instructions string `yaml:"-" json:"instructions"`

	// Location; empty for built-ins.
	Path string `yaml:"-" json:"path,omitempty"`
}

// WithModel returns a copy of the agent using model. The receiver is not
// modified.
func (a *Agent) WithModel(model string) *Agent {
	cp := *a
	cp.Tools = append([]string(nil), a.Tools...)
	if model != "" {
		cp.Model = model
	}
	return &cp
}

// Parse parses an agent definition.
func Parse(content string) (*Agent, error) {
	frontmatter, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	agent := &Agent{}
	if err := yaml.Unmarshal([]byte(frontmatter), agent); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	agent.Instructions = strings.TrimSpace(body)

	if err := agent.validate(); err != nil {
		return nil, err
	}
	return agent, nil
}

func (a *Agent) validate() error {
	if a.ID == "" {
		return fmt.Errorf("missing required field: id")
	}
	if err := validateID(a.ID); err != nil {
		return err
	}
	if a.Name == "" {
		return fmt.Errorf("agent %s: missing required field: name", a.ID)
	}
	if a.Instructions == "" {
		return fmt.Errorf("agent %s: instructions are empty", a.ID)
	}
	return nil
}

// splitFrontmatter extracts YAML frontmatter from markdown.
func splitFrontmatter(content string) (frontmatter, body string, err error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", "", fmt.Errorf("missing frontmatter delimiter")
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("unclosed frontmatter")
}

// validateID checks that id is kebab-case.
func validateID(id string) error {
	if len(id) > 64 {
		return fmt.Errorf("id %q must be at most 64 characters", id)
	}
	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return fmt.Errorf("id %q cannot start or end with hyphen", id)
	}
	if strings.Contains(id, "--") {
		return fmt.Errorf("id %q cannot contain consecutive hyphens", id)
	}
	for _, r := range id {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return fmt.Errorf("id %q can only contain lowercase letters, numbers, and hyphens", id)
		}
	}
	return nil
}
