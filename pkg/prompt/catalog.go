package prompt

import (
	"fmt"

	"github.com/aretw0/vlogger/pkg/domain"
)

// Catalog maps each stage to its prompt.
type Catalog map[domain.Stage]Template

// Get returns the prompt of a stage.
func (c Catalog) Get(stage domain.Stage) (Template, error) {
	t, ok := c[stage]
	if !ok {
		return Template{}, fmt.Errorf("no prompt for stage %q", stage)
	}
	return t, nil
}

// Merge returns a copy of c where entries of overrides replace the defaults.
func (c Catalog) Merge(overrides Catalog) Catalog {
	out := make(Catalog, len(c)+len(overrides))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Template variables.
const (
	VarLocation    = "location"
	VarAttractions = "attractions"
	VarFoods       = "foods"
	VarItinerary   = "itinerary"
	VarNarration   = "narration"
	VarDuration    = "duration"
	VarStyle       = "style"
	VarPrefs       = "prefs"
)

// StageVars lists the variables bound when each stage renders its prompt.
// A prompt may only reference the variables of its own stage.
var StageVars = map[domain.Stage][]string{
	domain.StageExplorer:  {VarLocation},
	domain.StageFoodie:    {VarLocation},
	domain.StageGuide:     {VarLocation, VarAttractions, VarFoods, VarDuration, VarPrefs},
	domain.StageVlogger:   {VarItinerary, VarStyle},
	domain.StageEvaluator: {VarLocation, VarItinerary, VarNarration},
}

// Bind picks the variables of stage out of values.
func Bind(stage domain.Stage, values map[string]any) map[string]any {
	names := StageVars[stage]
	vars := make(map[string]any, len(names))
	for _, name := range names {
		vars[name] = values[name]
	}
	return vars
}

// Validate checks that every pipeline stage has a prompt that renders
// with exactly the variables that stage binds.
func (c Catalog) Validate() error {
	for _, stage := range domain.Pipeline() {
		t, err := c.Get(stage)
		if err != nil {
			return err
		}
		if len(t.Messages) == 0 {
			return fmt.Errorf("prompt for stage %q has no messages", stage)
		}
		if _, err := t.Render(Bind(stage, sampleVars)); err != nil {
			return fmt.Errorf("prompt for stage %q: %w", stage, err)
		}
	}
	return nil
}

var sampleVars = map[string]any{
	VarLocation:    "Sample",
	VarAttractions: []domain.Attraction{},
	VarFoods:       []domain.Food{},
	VarItinerary:   []domain.DayPlan{},
	VarNarration:   []string{},
	VarDuration:    domain.DefaultDuration,
	VarStyle:       domain.DefaultStyle,
	VarPrefs:       domain.Prefs{},
}

// Defaults returns the built-in prompts.
func Defaults() Catalog {
	return Catalog{
		domain.StageExplorer: New(
			`You are an Explorer Agent. Find 5-10 attractions in the location. Return JSON: [{"name": str, "description": str, "category": str}]`,
			`Find attractions for {{.location}}`,
		),
		domain.StageFoodie: New(
			`You are a Foodie Agent. Suggest 5-10 local foods in the location. Return JSON: [{"name": str, "description": str, "type": str}]`,
			`Suggest foods for {{.location}}`,
		),
		domain.StageGuide: New(
			`You are a Guide Agent. Create a {{.duration}}-day itinerary using attractions and foods. Consider prefs: {{json .prefs}}.
Generate 3 itinerary variants, score each (1-10 for balance, diversity), pick the best.
Return JSON: [{"day": int, "activities": [{"time": str, "item": str, "details": str}]}]`,
			`Build itinerary for {{.location}}. Attractions: {{json .attractions}}. Foods: {{json .foods}}. Duration: {{.duration}}. Prefs: {{json .prefs}}`,
		),
		domain.StageVlogger: New(
			`You are a Vlogger Agent. Narrate the itinerary in engaging first-person vlog style based on style pref. Return JSON: [str] (one per day).`,
			`Narrate this itinerary: {{json .itinerary}}. Style: {{.style}}`,
		),
		domain.StageEvaluator: New(
			`You are an Evaluator Agent. Score the output 1-10 on accuracy, fun, completeness. Return JSON: {"score": float, "improvements": str}`,
			`Evaluate: Location {{.location}}, Itinerary {{json .itinerary}}, Narration {{json .narration}}`,
		),
	}
}
