package main

import (
	"encoding/json"
	"fmt"

	"github.com/vinayprograms/edinburgh/internal/render"
)

// Run executes the tools list command.
func (c *ToolsListCmd) Run(rt *runtime) error {
	reg, err := rt.registry()
	if err != nil {
		return err
	}
	if c.Format == "json" {
		return render.JSON(rt.stdout, reg.Definitions())
	}
	return render.Tools(rt.stdout, reg.Definitions(), rt.renderOptions())
}

// Run executes the tools run command.
func (c *ToolsRunCmd) Run(rt *runtime) error {
	reg, err := rt.registry()
	if err != nil {
		return err
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(c.Args), &args); err != nil {
		return fmt.Errorf("--args must be a JSON object: %w", err)
	}

	result, err := reg.Execute(rt.ctx, c.Name, args)
	if err != nil {
		return err
	}
	return render.JSON(rt.stdout, result)
}
