package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/aretw0/vlogger/pkg/extract"
	"github.com/aretw0/vlogger/pkg/prompt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Defaults substituted when a reply cannot be coerced.
var (
	defaultList       = []any{}
	defaultEvaluation = map[string]any{"score": 0.0}
)

func (e *Engine) explore(ctx context.Context, b *domain.Builder) error {
	s := b.Snapshot()
	reply, err := e.invoke(ctx, domain.StageExplorer, s)
	if err != nil {
		return err
	}

	attractions, rep := extract.Attractions(extract.Value(reply, defaultList))
	e.report(domain.StageExplorer, rep)
	return e.commit(b, domain.StageExplorer, reply, func() error { return b.SetAttractions(attractions) })
}

func (e *Engine) suggestFoods(ctx context.Context, b *domain.Builder) error {
	s := b.Snapshot()
	reply, err := e.invoke(ctx, domain.StageFoodie, s)
	if err != nil {
		return err
	}

	foods, rep := extract.Foods(extract.Value(reply, defaultList))
	e.report(domain.StageFoodie, rep)
	return e.commit(b, domain.StageFoodie, reply, func() error { return b.SetFoods(foods) })
}

func (e *Engine) planItinerary(ctx context.Context, b *domain.Builder) error {
	s := b.Snapshot()
	reply, err := e.invoke(ctx, domain.StageGuide, s)
	if err != nil {
		return err
	}

	itinerary, rep := extract.Itinerary(extract.Value(reply, defaultList))
	e.report(domain.StageGuide, rep)
	return e.commit(b, domain.StageGuide, reply, func() error { return b.SetItinerary(itinerary) })
}

func (e *Engine) narrate(ctx context.Context, b *domain.Builder) error {
	s := b.Snapshot()
	reply, err := e.invoke(ctx, domain.StageVlogger, s)
	if err != nil {
		return err
	}

	narration, rep := extract.Narration(extract.Value(reply, defaultList))
	e.report(domain.StageVlogger, rep)
	return e.commit(b, domain.StageVlogger, reply, func() error { return b.SetNarration(narration) })
}

func (e *Engine) evaluate(ctx context.Context, b *domain.Builder) error {
	s := b.Snapshot()
	reply, err := e.invoke(ctx, domain.StageEvaluator, s)
	if err != nil {
		return err
	}

	score, improvements, err := extract.Evaluation(extract.Value(reply, defaultEvaluation))
	if err != nil {
		return err
	}
	return e.commit(b, domain.StageEvaluator, reply, func() error { return b.SetEvaluation(score, improvements) })
}

// bindings exposes the state to the prompt of stage, limited to prompt.StageVars.
func bindings(stage domain.Stage, s domain.State) map[string]any {
	return prompt.Bind(stage, map[string]any{
		prompt.VarLocation:    s.Location,
		prompt.VarAttractions: s.Attractions,
		prompt.VarFoods:       s.Foods,
		prompt.VarItinerary:   s.Itinerary,
		prompt.VarNarration:   s.Narration,
		prompt.VarDuration:    s.UserPrefs.Duration(),
		prompt.VarStyle:       s.UserPrefs.Style(),
		prompt.VarPrefs:       s.UserPrefs,
	})
}

// invoke renders the stage prompt and performs the model call.
func (e *Engine) invoke(ctx context.Context, stage domain.Stage, s domain.State) (domain.Reply, error) {
	tmpl, err := e.prompts.Get(stage)
	if err != nil {
		return domain.Reply{}, err
	}
	messages, err := tmpl.Render(bindings(stage, s))
	if err != nil {
		return domain.Reply{}, err
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int("prompt.messages", len(messages)))

	reply, err := e.model.Generate(ctx, domain.ModelRequest{Stage: stage, Messages: messages})
	if err != nil {
		return domain.Reply{}, err
	}

	span.SetAttributes(attribute.String("reply.kind", reply.Kind.String()))
	e.logger.Debug("Model replied", "stage", stage, "kind", reply.Kind.String())
	return reply, nil
}

// commit writes the stage output, then appends the raw reply to the message log.
func (e *Engine) commit(b *domain.Builder, stage domain.Stage, reply domain.Reply, write func() error) error {
	if err := write(); err != nil {
		return fmt.Errorf("failed to write %s output: %w", stage, err)
	}
	b.Record(stage, reply)
	return nil
}

func (e *Engine) report(stage domain.Stage, rep extract.Report) {
	if rep.Lossy() {
		e.logger.Warn("Discarded undecodable model output", "stage", stage, "total", rep.Total, "skipped", rep.Skipped)
	}
}
