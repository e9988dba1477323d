package main

import "fmt"

// Run executes the version command.
func (c *VersionCmd) Run(rt *runtime) error {
	fmt.Fprintf(rt.stdout, "edinburgh version %s\n", version)
	fmt.Fprintf(rt.stdout, "  commit: %s\n", commit)
	fmt.Fprintf(rt.stdout, "  built:  %s\n", buildTime)
	return nil
}
