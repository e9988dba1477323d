package main

import (
	"fmt"

	"github.com/vinayprograms/edinburgh/internal/agents"
	"github.com/vinayprograms/edinburgh/internal/render"
)

// Run executes the agents list command.
func (c *AgentsListCmd) Run(rt *runtime) error {
	catalog, err := rt.catalog()
	if err != nil {
		return err
	}
	if c.Format == "json" {
		return render.JSON(rt.stdout, catalog.Agents())
	}
	return render.AgentList(rt.stdout, catalog.Agents(), rt.renderOptions())
}

// Run executes the agents show command.
func (c *AgentsShowCmd) Run(rt *runtime) error {
	catalog, err := rt.catalog()
	if err != nil {
		return err
	}
	agent, err := catalog.Get(c.ID)
	if err != nil {
		return err
	}
	agent = agent.WithModel(c.Model)

	if c.Format == "json" {
		return render.JSON(rt.stdout, agent)
	}
	return render.Agent(rt.stdout, agent, rt.renderOptions())
}

// Run executes the agents new command.
func (c *AgentsNewCmd) Run(rt *runtime) error {
	dir := c.Dir
	if dir == "" {
		cfg, err := rt.config()
		if err != nil {
			return err
		}
		dir = cfg.Agents.Dir
	}

	path, err := agents.Scaffold(c.ID, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.stdout, "Created %s\n", path)
	return nil
}

// Run executes the agents validate command.
func (c *AgentsValidateCmd) Run(rt *runtime) error {
	catalog, err := rt.catalog()
	if err != nil {
		return err
	}
	reg, err := rt.registry()
	if err != nil {
		return err
	}
	if err := catalog.Validate(reg); err != nil {
		return err
	}
	fmt.Fprintf(rt.stdout, "All %d agents valid\n", len(catalog.IDs()))
	return nil
}
