package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hoopscout/internal/crew"
)

// Build assembles the full crew configuration: seven agents and the
// seven tasks in execution order, with context wiring between them.
// The context edges match the research pipeline:
//
//	feature_prioritization <- market_research, user_research, technical_requirements
//	ui_design              <- user_research, feature_prioritization
//	business_model         <- market_research, user_research, feature_prioritization
func Build() ([]*crew.Agent, []*crew.Task) {
	marketResearcher := MarketResearcher()
	uxResearcher := UXResearcher()
	technicalArchitect := TechnicalArchitect()
	complianceExpert := ComplianceExpert()
	featureAnalyst := FeatureAnalyst()
	uiDesigner := UIDesigner()
	businessStrategist := BusinessStrategist()

	marketResearch := MarketResearchTask(marketResearcher)
	userResearch := UserResearchTask(uxResearcher)
	technicalRequirements := TechnicalRequirementsTask(technicalArchitect)
	complianceReview := ComplianceReviewTask(complianceExpert)

	featurePrioritization := FeaturePrioritizationTask(featureAnalyst,
		marketResearch, userResearch, technicalRequirements)
	uiDesign := UIDesignTask(uiDesigner,
		userResearch, featurePrioritization)
	businessModel := BusinessModelTask(businessStrategist,
		marketResearch, userResearch, featurePrioritization)

	agents := []*crew.Agent{
		marketResearcher,
		uxResearcher,
		technicalArchitect,
		complianceExpert,
		featureAnalyst,
		uiDesigner,
		businessStrategist,
	}
	tasks := []*crew.Task{
		marketResearch,
		userResearch,
		technicalRequirements,
		complianceReview,
		featurePrioritization,
		uiDesign,
		businessModel,
	}
	return agents, tasks
}

// AgentOverride replaces text fields of a registry agent.
// Empty fields keep the built-in value.
type AgentOverride struct {
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
	Model     string `yaml:"model"`
	MaxIter   int    `yaml:"max_iter"`
}

// TaskOverride replaces text fields of a registry task.
// Empty fields keep the built-in value. Context wiring is fixed.
type TaskOverride struct {
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
}

// Overrides holds per-agent and per-task text replacements, keyed by
// agent role and task name respectively.
type Overrides struct {
	Agents map[string]AgentOverride `yaml:"agents"`
	Tasks  map[string]TaskOverride  `yaml:"tasks"`
}

// LoadOverrides reads an overrides file. A missing path is an error;
// callers skip the call when no file is configured.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	return &o, nil
}

// Apply rewrites agents and tasks in place from the overrides.
// Unknown keys are reported so a typo in the file does not silently
// leave the built-in text in place.
func (o *Overrides) Apply(agents []*crew.Agent, tasks []*crew.Task) error {
	byRole := make(map[string]*crew.Agent, len(agents))
	for _, a := range agents {
		byRole[a.Role] = a
	}
	for role, ov := range o.Agents {
		a, ok := byRole[role]
		if !ok {
			return fmt.Errorf("overrides: unknown agent role %q", role)
		}
		if ov.Goal != "" {
			a.Goal = ov.Goal
		}
		if ov.Backstory != "" {
			a.Backstory = ov.Backstory
		}
		if ov.Model != "" {
			a.Model = ov.Model
		}
		if ov.MaxIter > 0 {
			a.MaxIter = ov.MaxIter
		}
	}

	byName := make(map[string]*crew.Task, len(tasks))
	for _, t := range tasks {
		byName[t.Name] = t
	}
	for name, ov := range o.Tasks {
		t, ok := byName[name]
		if !ok {
			return fmt.Errorf("overrides: unknown task %q", name)
		}
		if ov.Description != "" {
			t.Description = ov.Description
		}
		if ov.ExpectedOutput != "" {
			t.ExpectedOutput = ov.ExpectedOutput
		}
	}
	return nil
}
