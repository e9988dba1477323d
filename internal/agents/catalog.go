package agents

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.md
var builtinFS embed.FS

// ToolLookup reports whether a tool exists. *tools.Registry satisfies it.
type ToolLookup interface {
	Has(name string) bool
}

// Catalog is a set of agents keyed by id.
type Catalog struct {
	agents map[string]*Agent
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{agents: make(map[string]*Agent)}
}

// LoadBuiltins returns a catalog holding the embedded agents.
func LoadBuiltins() (*Catalog, error) {
	c := NewCatalog()
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		content, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, err
		}
		agent, err := Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", entry.Name(), err)
		}
		c.Add(agent)
	}
	return c, nil
}

// Load returns the built-in agents overlaid with the definitions in dir.
// A missing dir is not an error.
func Load(dir string) (*Catalog, error) {
	c, err := LoadBuiltins()
	if err != nil {
		return nil, err
	}
	if err := c.LoadDir(dir); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadDir adds every *.md agent in dir. An agent whose id matches an existing
// entry replaces it.
func (c *Catalog) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		agent, err := Parse(string(content))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		agent.Path = path
		c.Add(agent)
	}
	return nil
}

// Add inserts or replaces an agent.
func (c *Catalog) Add(a *Agent) {
	c.agents[a.ID] = a
}

// Get returns the agent with id.
func (c *Catalog) Get(id string) (*Agent, error) {
	a, ok := c.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	return a, nil
}

// IDs returns agent ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.agents))
	for id := range c.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Agents returns all agents sorted by id.
func (c *Catalog) Agents() []*Agent {
	ids := c.IDs()
	out := make([]*Agent, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.agents[id])
	}
	return out
}

// Validate checks that every tool an agent names exists.
func (c *Catalog) Validate(tools ToolLookup) error {
	var problems []string
	for _, a := range c.Agents() {
		for _, name := range a.Tools {
			if !tools.Has(name) {
				problems = append(problems, fmt.Sprintf("agent %s: unknown tool %q", a.ID, name))
			}
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
