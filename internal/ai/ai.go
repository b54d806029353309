package ai

import (
	"context"
	"fmt"
	"strings"
)

// FailedFinding is one failed checklist item flattened out of an inspection,
// carrying enough context for the model to group and prioritise it.
type FailedFinding struct {
	Area     string
	Category string
	Point    string
	Location string
	Comments string
}

// Assistant is the gateway to the external text/vision model. Both calls are
// best-effort and single-shot: no retries, no streaming; a failure is terminal
// for that invocation and the caller degrades to a fixed error message.
type Assistant interface {
	// SummarizeFindings turns the failed items of an inspection into a short
	// grouped, prioritised narrative for the client-facing report.
	SummarizeFindings(ctx context.Context, findings []FailedFinding) (string, error)
	// DescribeDefect returns a short factual description of the defect shown
	// in one photo, guided by the checklist point it belongs to.
	DescribeDefect(ctx context.Context, image []byte, mimeType, point string) (string, error)
}

// SummaryPrompt composes the single natural-language prompt for the
// summarisation call.
func SummaryPrompt(findings []FailedFinding) string {
	var b strings.Builder
	b.WriteString("You are writing the executive summary of a property inspection report. ")
	b.WriteString("Below are the failed checklist items. Group related defects, order them by severity, ")
	b.WriteString("and write a concise professional narrative (no headings, no bullet lists, plain paragraphs). ")
	b.WriteString("Do not invent defects that are not listed.\n\nFailed items:\n")
	for _, f := range findings {
		fmt.Fprintf(&b, "- [%s / %s] %s", f.Area, f.Category, f.Point)
		if f.Location != "" {
			fmt.Fprintf(&b, " (at %s)", f.Location)
		}
		if f.Comments != "" {
			fmt.Fprintf(&b, ": %s", f.Comments)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DescribePrompt composes the instruction accompanying a defect photo.
func DescribePrompt(point string) string {
	return fmt.Sprintf(
		"This photo was taken during a property inspection for the checklist point %q. "+
			"Describe the visible defect in one or two short factual sentences. "+
			"If no defect is visible, say so.", point)
}

// Clean strips the filler models tend to wrap answers in: surrounding
// whitespace, code fences, and a leading "Here is ..." style preamble line.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	lines := strings.SplitN(s, "\n", 2)
	if len(lines) == 2 {
		first := strings.TrimSpace(lines[0])
		if strings.HasPrefix(first, "Here") || strings.HasPrefix(first, "Based on") {
			return strings.TrimSpace(lines[1])
		}
	}
	return s
}
