// Package report assembles the final Markdown research report from
// captured task outputs.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"hoopscout/internal/roster"
)

// ruler separates report sections, matching the console banner width.
const ruler = "================================================================================"

// Section maps a report section to the task that produces it.
type Section struct {
	// Number is the 1-based section number used in headings and the TOC.
	Number int
	// Title is the section heading text.
	Title string
	// Task is the registry name of the task whose output fills the section.
	Task string
	// Label names the section in the fallback line when no output exists.
	Label string
}

// Anchor returns the GitHub-style anchor for the section's TOC entry.
// Punctuation drops but every space becomes a hyphen, so a title like
// "User Research & Personas" slugs to user-research--personas.
func (s Section) Anchor() string {
	slug := strings.ToLower(fmt.Sprintf("%d %s", s.Number, s.Title))
	for _, cut := range []string{"&", ","} {
		slug = strings.ReplaceAll(slug, cut, "")
	}
	return "#" + strings.ReplaceAll(slug, " ", "-")
}

// Sections returns the fixed report layout in order.
func Sections() []Section {
	return []Section{
		{1, "Market Research Analysis", roster.TaskMarketResearch, "Market research"},
		{2, "User Research & Personas", roster.TaskUserResearch, "User research"},
		{3, "Technical Architecture", roster.TaskTechnicalRequirements, "Technical architecture"},
		{4, "Compliance & Safety Requirements", roster.TaskComplianceReview, "Compliance"},
		{5, "Feature Prioritization", roster.TaskFeaturePrioritization, "Feature prioritization"},
		{6, "UI Design System", roster.TaskUIDesign, "UI design"},
		{7, "Business Model & Monetization", roster.TaskBusinessModel, "Business model"},
	}
}

// Params carries everything Build needs besides the outputs.
type Params struct {
	// GeneratedAt is the report timestamp.
	GeneratedAt time.Time
	// LogFile is the full console capture path referenced in the footer.
	LogFile string
	// Outputs maps task registry names to their captured outputs.
	// Missing or empty entries produce the fallback line.
	Outputs map[string]string
}

// Build renders the complete Markdown report.
// Every section is always present: tasks that produced no output get a
// fallback line pointing the reader at the full log file.
func Build(p Params) string {
	var b strings.Builder

	b.WriteString("# Basketball League Management App - Complete Research Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", p.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(ruler + "\n\n")

	b.WriteString("## Table of Contents\n\n")
	for _, s := range Sections() {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", s.Number, s.Title, s.Anchor())
	}
	b.WriteString("\n" + ruler + "\n\n")

	for _, s := range Sections() {
		fmt.Fprintf(&b, "## %d. %s\n\n", s.Number, s.Title)
		if out := strings.TrimSpace(p.Outputs[s.Task]); out != "" {
			b.WriteString(out + "\n\n")
		} else {
			fmt.Fprintf(&b, "*%s output not captured - check full log file*\n\n", s.Label)
		}
		b.WriteString(ruler + "\n\n")
	}

	b.WriteString("## End of Report\n\n")
	if p.LogFile != "" {
		fmt.Fprintf(&b, "For complete details including agent reasoning, see: %s\n", p.LogFile)
	}

	return b.String()
}

// WriteFile renders the report and writes it to path.
func WriteFile(path string, p Params) error {
	content := Build(p)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Filename returns the timestamped report filename used by the run
// command, e.g. basketball_league_COMPLETE_research_20260823_153000.md.
func Filename(ts time.Time) string {
	return fmt.Sprintf("basketball_league_COMPLETE_research_%s.md", ts.Format("20060102_150405"))
}
