package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/vlogger/pkg/adapters/memory"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Canned replies of ScriptedModel, one per stage, as a model would answer them.
const (
	ExplorerReply  = "Here you go:\n```json\n[{\"name\": \"Belem Tower\", \"description\": \"Fortress\", \"category\": \"Historic\"}]\n```"
	FoodieReply    = `[{"name": "Pastel de nata", "description": "Custard tart", "type": "Dessert"}]`
	GuideReply     = `[{"day": 1, "activities": [{"time": "10:00 AM", "item": "Belem Tower", "details": "Arrive early"}]}]`
	VloggerReply   = `["Tarts and towers!"]`
	EvaluatorReply = `Score: {"score": 8, "improvements": "Add a fado night"}`
)

// ScriptedModel returns a model answering every stage with the canned replies.
// Callers may override single stages with On, OnText or Fail.
func ScriptedModel() *memory.Model {
	return memory.NewModel().
		OnText(domain.StageExplorer, ExplorerReply).
		OnText(domain.StageFoodie, FoodieReply).
		OnText(domain.StageGuide, GuideReply).
		OnText(domain.StageVlogger, VloggerReply).
		OnText(domain.StageEvaluator, EvaluatorReply)
}

// ScriptedResult is the result a run over ScriptedModel produces.
func ScriptedResult(location string, prefs domain.Prefs) *domain.Result {
	r := &domain.Result{
		Location:  location,
		UserPrefs: prefs.Clone(),
		Attractions: []domain.Attraction{
			{Name: "Belem Tower", Description: "Fortress", Category: "Historic"},
		},
		Foods: []domain.Food{
			{Name: "Pastel de nata", Description: "Custard tart", Type: "Dessert"},
		},
		Itinerary: []domain.DayPlan{
			{Day: 1, Activities: []domain.Activity{
				{Time: "10:00 AM", Item: "Belem Tower", Details: "Arrive early"},
			}},
		},
		Narration:       []string{"Tarts and towers!"},
		EvaluationScore: 8,
	}
	r.Normalize()
	return r
}

// WriteFiles creates a temporary directory holding the given files.
// It fails the test immediately on error.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
	return dir
}
