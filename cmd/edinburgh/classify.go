package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vinayprograms/edinburgh/internal/entropy"
	"github.com/vinayprograms/edinburgh/internal/render"
	"github.com/vinayprograms/edinburgh/internal/watch"
)

// explainedReport is the JSON form of a report with --explain.
type explainedReport struct {
	entropy.Report
	Stats       *entropy.Stats       `json:"stats,omitempty"`
	Adjustments []entropy.Adjustment `json:"adjustments,omitempty"`
}

// Run executes the classify command.
func (c *ClassifyCmd) Run(rt *runtime) error {
	text, err := c.input(rt.stdin)
	if err != nil {
		return err
	}

	logger, err := rt.log()
	if err != nil {
		return err
	}
	logger.Debug("classifying", map[string]interface{}{"bytes": len(text)})

	report := entropy.Classify(text, c.Context)
	if c.Format == "json" {
		out := explainedReport{Report: report}
		if c.Explain {
			stats := entropy.Measure(text)
			out.Stats = &stats
			out.Adjustments = entropy.Adjustments(stats)
		}
		return render.JSON(rt.stdout, out)
	}

	opts := rt.renderOptions()
	if err := render.Report(rt.stdout, report, opts); err != nil {
		return err
	}
	if c.Explain {
		return render.Explanation(rt.stdout, entropy.Measure(text), opts)
	}
	return nil
}

// input picks the text source: the argument, --file, or stdin.
func (c *ClassifyCmd) input(stdin io.Reader) (string, error) {
	switch {
	case c.Text != "" && c.File != "":
		return "", fmt.Errorf("give either TEXT or --file, not both")
	case c.Text != "":
		return c.Text, nil
	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", c.File, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

// Run executes the watch command.
func (c *WatchCmd) Run(rt *runtime) error {
	logger, err := rt.log()
	if err != nil {
		return err
	}

	w := watch.New(c.File)
	w.Logger = logger.WithComponent("watch")
	opts := rt.renderOptions()

	logger.Info("watching", map[string]interface{}{"path": c.File})
	return w.Run(rt.ctx, func(content []byte) error {
		text := string(content)
		fmt.Fprintf(rt.stdout, "\n── %s @ %s ──\n", c.File, time.Now().Format("15:04:05"))
		if err := render.Report(rt.stdout, entropy.Classify(text, c.Context), opts); err != nil {
			return err
		}
		if c.Explain {
			return render.Explanation(rt.stdout, entropy.Measure(text), opts)
		}
		return nil
	})
}
