package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vinayprograms/edinburgh/internal/agents"
	"github.com/vinayprograms/edinburgh/internal/tools"
)

// Tools writes one entry per tool definition with its parameters.
func Tools(w io.Writer, defs []tools.Definition, opts Options) error {
	st := newStyles(w, opts)
	var sb strings.Builder

	for i, d := range defs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(st.title.Render(d.Name) + "\n")
		sb.WriteString(indent.String(wordwrap.String(d.Description, opts.width()-2), 2) + "\n")

		required := map[string]bool{}
		if req, ok := d.Parameters["required"].([]string); ok {
			for _, r := range req {
				required[r] = true
			}
		}
		props, _ := d.Parameters["properties"].(map[string]interface{})
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			prop, _ := props[name].(map[string]interface{})
			typ, _ := prop["type"].(string)
			flag := ""
			if required[name] {
				flag = " " + st.dim.Render("(required)")
			}
			fmt.Fprintf(&sb, "  %s %s%s\n", st.bullet.Render(name), st.label.Render(typ), flag)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// AgentList writes a one-line summary per agent.
func AgentList(w io.Writer, list []*agents.Agent, opts Options) error {
	st := newStyles(w, opts)
	var sb strings.Builder

	width := 0
	for _, a := range list {
		width = max(width, len(a.ID))
	}
	for _, a := range list {
		fmt.Fprintf(&sb, "%s  %s\n",
			st.title.Render(fmt.Sprintf("%-*s", width, a.ID)),
			st.value.Render(a.Name))
		if a.Description != "" {
			sb.WriteString(indent.String(st.dim.Render(a.Description), uint(width+2)) + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Agent writes an agent's header fields followed by its instructions
// rendered as markdown.
func Agent(w io.Writer, a *agents.Agent, opts Options) error {
	st := newStyles(w, opts)
	var sb strings.Builder

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%s %s\n", st.label.Render(fmt.Sprintf("%-12s", label+":")), st.value.Render(value))
		}
	}
	field("ID", a.ID)
	field("Name", a.Name)
	field("Description", a.Description)
	field("Model", a.Model)
	field("Tools", strings.Join(a.Tools, ", "))
	field("Memory", yesNo(a.Memory))
	field("Source", a.Path)

	body, err := Markdown(a.Instructions, opts)
	if err != nil {
		return err
	}
	sb.WriteString(body)

	_, err = io.WriteString(w, sb.String())
	return err
}

// Markdown renders md for the terminal. Without color the plain notty style
// is used so output stays readable when piped.
func Markdown(md string, opts Options) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if opts.Color {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.width()))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
