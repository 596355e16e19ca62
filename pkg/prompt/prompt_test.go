package prompt_test

import (
	"testing"

	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/aretw0/vlogger/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Render(t *testing.T) {
	tmpl := prompt.New("You plan trips.", "Plan {{.duration}} days in {{.location}}. Foods: {{json .foods}}")

	msgs, err := tmpl.Render(map[string]any{
		"location": "Kyoto",
		"duration": 2,
		"foods":    []domain.Food{{Name: "Ramen", Description: "Noodles", Type: "Main"}},
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Equal(t, "You plan trips.", msgs[0].Content)
	assert.Equal(t, domain.RoleHuman, msgs[1].Role)
	assert.Equal(t, `Plan 2 days in Kyoto. Foods: [{"name":"Ramen","description":"Noodles","type":"Main"}]`, msgs[1].Content)
}

func TestTemplate_Render_MissingKey(t *testing.T) {
	tmpl := prompt.New("sys", "Find attractions for {{.location}}")

	_, err := tmpl.Render(map[string]any{})
	assert.Error(t, err)
}

func TestTemplate_Render_ParseError(t *testing.T) {
	tmpl := prompt.New("sys {{", "human")

	_, err := tmpl.Render(map[string]any{})
	assert.ErrorContains(t, err, "failed to parse system message")
}

func TestTemplate_SystemAndHuman(t *testing.T) {
	tmpl := prompt.New("a", "b")
	assert.Equal(t, "a", tmpl.System())
	assert.Equal(t, "b", tmpl.Human())
	assert.Empty(t, prompt.Template{}.System())
}

func TestDefaults_CoverPipeline(t *testing.T) {
	catalog := prompt.Defaults()
	require.NoError(t, catalog.Validate())

	for _, stage := range domain.Pipeline() {
		tmpl, err := catalog.Get(stage)
		require.NoError(t, err, stage)
		assert.NotEmpty(t, tmpl.System(), stage)
		assert.NotEmpty(t, tmpl.Human(), stage)
	}
}

func TestDefaults_ExplorerBindsLocation(t *testing.T) {
	tmpl, err := prompt.Defaults().Get(domain.StageExplorer)
	require.NoError(t, err)

	msgs, err := tmpl.Render(map[string]any{"location": "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "Find attractions for Paris", msgs[1].Content)
}

func TestCatalog_Merge(t *testing.T) {
	base := prompt.Defaults()
	override := prompt.New("Be brief.", "Foods in {{.location}}")

	merged := base.Merge(prompt.Catalog{domain.StageFoodie: override})

	assert.Equal(t, "Be brief.", merged[domain.StageFoodie].System())
	assert.Equal(t, base[domain.StageExplorer], merged[domain.StageExplorer])
	// base is untouched
	assert.NotEqual(t, "Be brief.", base[domain.StageFoodie].System())
}

func TestCatalog_Validate(t *testing.T) {
	t.Run("missing stage", func(t *testing.T) {
		c := prompt.Defaults()
		delete(c, domain.StageGuide)
		assert.ErrorContains(t, c.Validate(), "guide")
	})

	t.Run("unknown variable", func(t *testing.T) {
		c := prompt.Defaults().Merge(prompt.Catalog{
			domain.StageVlogger: prompt.New("sys", "{{.weather}}"),
		})
		assert.Error(t, c.Validate())
	})

	t.Run("variable of another stage", func(t *testing.T) {
		c := prompt.Defaults().Merge(prompt.Catalog{
			domain.StageExplorer: prompt.New("sys", "Find {{.style}} attractions in {{.location}}"),
		})
		err := c.Validate()
		assert.ErrorContains(t, err, "explorer")
		assert.ErrorContains(t, err, "style")
	})

	t.Run("own variables only", func(t *testing.T) {
		c := prompt.Defaults().Merge(prompt.Catalog{
			domain.StageVlogger: prompt.New("sys", "{{.style}} narration of {{json .itinerary}}"),
		})
		assert.NoError(t, c.Validate())
	})

	t.Run("empty template", func(t *testing.T) {
		c := prompt.Defaults().Merge(prompt.Catalog{domain.StageVlogger: {}})
		assert.ErrorContains(t, c.Validate(), "no messages")
	})
}

func TestBind(t *testing.T) {
	values := map[string]any{
		prompt.VarLocation: "Rome",
		prompt.VarStyle:    "calm",
		prompt.VarPrefs:    domain.Prefs{},
	}

	assert.Equal(t, map[string]any{prompt.VarLocation: "Rome"}, prompt.Bind(domain.StageExplorer, values))

	vlogger := prompt.Bind(domain.StageVlogger, values)
	assert.Equal(t, map[string]any{prompt.VarItinerary: nil, prompt.VarStyle: "calm"}, vlogger)

	assert.Empty(t, prompt.Bind(domain.StageDone, values))
}
