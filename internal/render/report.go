package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vinayprograms/edinburgh/internal/entropy"
)

// Report writes a classification report as styled text.
func Report(w io.Writer, r entropy.Report, opts Options) error {
	st := newStyles(w, opts)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s %s\n",
		st.title.Render("Entropy:"),
		st.levels[r.Level].Render(strings.ToUpper(string(r.Level))),
		st.dim.Render(fmt.Sprintf("(score %.2f)", r.Score)))

	writeList(&sb, st, "Issues", r.Issues, opts.width())
	writeList(&sb, st, "Recommendations", r.Recommendations, opts.width())

	if len(r.Structure.Entities) > 0 {
		writeInline(&sb, st, "Entities", r.Structure.Entities, opts.width())
	}
	if len(r.Structure.Actions) > 0 {
		writeInline(&sb, st, "Actions", r.Structure.Actions, opts.width())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Explanation writes the measured statistics and every score adjustment that
// fired, ending with the clamped total.
func Explanation(w io.Writer, s entropy.Stats, opts Options) error {
	st := newStyles(w, opts)
	var sb strings.Builder

	sb.WriteString("\n" + st.title.Render("Statistics") + "\n")
	fmt.Fprintf(&sb, "  %s %d   %s %d   %s %d   %s %d\n",
		st.label.Render("words"), s.Words,
		st.label.Render("sentences"), s.Sentences,
		st.label.Render("ambiguity markers"), s.AmbiguityMarkers,
		st.label.Render("labels"), s.Labels)
	fmt.Fprintf(&sb, "  %s %s   %s %s\n",
		st.label.Render("structure"), yesNo(s.HasStructure),
		st.label.Render("confusion"), yesNo(s.Confusion))

	sb.WriteString("\n" + st.title.Render("Adjustments") + "\n")
	fmt.Fprintf(&sb, "  %-20s %s\n", "base", st.dim.Render(fmt.Sprintf("%+.2f", entropy.BaseScore)))
	for _, adj := range entropy.Adjustments(s) {
		style := st.plus
		if adj.Delta < 0 {
			style = st.minus
		}
		fmt.Fprintf(&sb, "  %-20s %s\n", adj.Rule, style.Render(fmt.Sprintf("%+.2f", adj.Delta)))
	}
	fmt.Fprintf(&sb, "  %-20s %s\n", "total (clamped)", st.value.Render(fmt.Sprintf("%.2f", entropy.Score(s))))

	_, err := io.WriteString(w, sb.String())
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeList(sb *strings.Builder, st styles, title string, items []string, width int) {
	sb.WriteString("\n" + st.title.Render(title) + "\n")
	for _, item := range items {
		wrapped := wordwrap.String(item, width-4)
		// hang continuation lines under the text, not the bullet
		lines := strings.SplitN(wrapped, "\n", 2)
		sb.WriteString("  " + st.bullet.Render("•") + " " + lines[0] + "\n")
		if len(lines) > 1 {
			sb.WriteString(indent.String(lines[1], 4) + "\n")
		}
	}
}

func writeInline(sb *strings.Builder, st styles, label string, items []string, width int) {
	text := wordwrap.String(strings.Join(items, ", "), width-len(label)-2)
	lines := strings.SplitN(text, "\n", 2)
	sb.WriteString("\n" + st.label.Render(label+":") + " " + st.value.Render(lines[0]) + "\n")
	if len(lines) > 1 {
		sb.WriteString(indent.String(lines[1], uint(len(label)+2)) + "\n")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
