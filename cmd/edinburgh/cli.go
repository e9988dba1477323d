// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Config    string `help:"Config file path (default: ./edinburgh.toml)" type:"path"`
	LogLevel  string `help:"Log level override (debug, info, warn, error)"`
	LogFormat string `help:"Log format override (console, json)"`
	NoColor   bool   `help:"Disable styled output"`

	Classify ClassifyCmd `cmd:"" help:"Score the entropy of a piece of text"`
	Watch    WatchCmd    `cmd:"" help:"Re-classify a file every time it changes"`
	Tools    ToolsCmd    `cmd:"" help:"Inspect and run tools"`
	Agents   AgentsCmd   `cmd:"" help:"Inspect and create agent definitions"`
	Serve    ServeCmd    `cmd:"" help:"Serve tools and agents over HTTP and NATS"`
	Version  VersionCmd  `cmd:"" help:"Show version information (${version})"`
}

// ClassifyCmd classifies text from an argument, a file, or stdin.
type ClassifyCmd struct {
	Text    string `arg:"" optional:"" help:"Text to classify (reads stdin when omitted)"`
	File    string `short:"f" help:"Read text from file" type:"path"`
	Context string `short:"c" help:"Domain context passed along with the text"`
	Format  string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
	Explain bool   `short:"e" help:"Show the statistics and score adjustments behind the result"`
}

// WatchCmd re-classifies a file on every write.
type WatchCmd struct {
	File    string `arg:"" help:"File to watch" type:"path"`
	Context string `short:"c" help:"Domain context passed along with the text"`
	Explain bool   `short:"e" help:"Show the statistics and score adjustments behind each result"`
}

// ToolsCmd groups tool subcommands.
type ToolsCmd struct {
	List ToolsListCmd `cmd:"" default:"1" help:"List enabled tools"`
	Run  ToolsRunCmd  `cmd:"" help:"Run a tool with JSON arguments"`
}

// ToolsListCmd lists enabled tools.
type ToolsListCmd struct {
	Format string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// ToolsRunCmd executes a single tool.
type ToolsRunCmd struct {
	Name string `arg:"" help:"Tool name"`
	Args string `short:"a" default:"{}" help:"Tool arguments as a JSON object"`
}

// AgentsCmd groups agent subcommands.
type AgentsCmd struct {
	List     AgentsListCmd     `cmd:"" default:"1" help:"List agents"`
	Show     AgentsShowCmd     `cmd:"" help:"Show an agent definition"`
	New      AgentsNewCmd      `cmd:"" help:"Scaffold a new agent definition"`
	Validate AgentsValidateCmd `cmd:"" help:"Check that every agent's tools exist"`
}

// AgentsListCmd lists agents.
type AgentsListCmd struct {
	Format string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// AgentsShowCmd shows one agent.
type AgentsShowCmd struct {
	ID     string `arg:"" help:"Agent id"`
	Model  string `short:"m" help:"Model override for this invocation"`
	Format string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// AgentsNewCmd scaffolds an agent definition.
type AgentsNewCmd struct {
	ID  string `arg:"" help:"Agent id (kebab-case)"`
	Dir string `short:"d" help:"Target directory (default: agents.dir from config)"`
}

// AgentsValidateCmd validates agent tool references.
type AgentsValidateCmd struct{}

// ServeCmd runs the HTTP API and the optional NATS responder.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
	NATS string `name:"nats" help:"NATS URL (overrides config)"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}
