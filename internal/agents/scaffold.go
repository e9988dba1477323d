package agents

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var scaffoldTemplate = template.Must(template.New("agent").Parse(`---
id: {{.ID}}
name: {{.Name}}
description: Describe what this agent is for.
model: ollama/lfm2.5-thinking
tools:
  - classify-entropy
---
You are {{.Name}}.

Describe the agent's role, the tools it should reach for, and how it should
respond.
`))

// Scaffold writes a template definition for a new agent to dir/<id>.md and
// returns its path. An existing file is never overwritten.
func Scaffold(id, dir string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("id is required")
	}
	if err := validateID(id); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := scaffoldTemplate.Execute(&buf, struct{ ID, Name string }{id, titleFromID(id)}); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, id+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("agent file already exists: %s", path)
		}
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// titleFromID turns "pricing-analyst" into "Pricing Analyst".
func titleFromID(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
