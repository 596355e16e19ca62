package domain

// State is the record threaded through one pipeline run.
// Location and UserPrefs are seeded at entry; every other output field is
// owned by exactly one stage and written once, in pipeline order.
type State struct {
	Location  string
	UserPrefs Prefs

	Attractions     []Attraction // explorer
	Foods           []Food       // foodie
	Itinerary       []DayPlan    // guide
	Narration       []string     // vlogger
	EvaluationScore float64      // evaluator
	Improvements    string       // evaluator

	// Messages is the append-only log of raw stage replies. Never exposed externally.
	Messages []StageReply

	// Stage is the next stage to run. StageDone once the run is complete.
	Stage Stage

	// History lists the stages that wrote their output, in order.
	History []Stage
}

// Result projects the public fields of the state.
func (s *State) Result() *Result {
	r := &Result{
		Location:        s.Location,
		UserPrefs:       s.UserPrefs.Clone(),
		Attractions:     append([]Attraction(nil), s.Attractions...),
		Foods:           append([]Food(nil), s.Foods...),
		Itinerary:       append([]DayPlan(nil), s.Itinerary...),
		Narration:       append([]string(nil), s.Narration...),
		EvaluationScore: s.EvaluationScore,
	}
	r.Normalize()
	return r
}

// Builder constructs a State incrementally and only permits forward writes.
// A write succeeds only while its stage is the current one; it then advances
// the machine along the single outgoing edge.
type Builder struct {
	state State
}

// NewBuilder seeds a new run at the entry stage.
func NewBuilder(location string, prefs Prefs) *Builder {
	return &Builder{
		state: State{
			Location:  location,
			UserPrefs: prefs.Clone(),
			Stage:     EntryStage,
			History:   make([]Stage, 0, len(transitions)),
		},
	}
}

// Stage returns the stage that must write next.
func (b *Builder) Stage() Stage {
	return b.state.Stage
}

// Location returns the location the run was seeded with.
func (b *Builder) Location() string {
	return b.state.Location
}

// Done reports whether every stage has written.
func (b *Builder) Done() bool {
	return b.state.Stage.Terminal()
}

// Snapshot returns a copy of the state that stages read from.
// Slices are copied so readers cannot mutate fields they do not own.
func (b *Builder) Snapshot() State {
	s := b.state
	s.UserPrefs = b.state.UserPrefs.Clone()
	s.Attractions = append([]Attraction(nil), b.state.Attractions...)
	s.Foods = append([]Food(nil), b.state.Foods...)
	s.Itinerary = append([]DayPlan(nil), b.state.Itinerary...)
	s.Narration = append([]string(nil), b.state.Narration...)
	s.Messages = append([]StageReply(nil), b.state.Messages...)
	s.History = append([]Stage(nil), b.state.History...)
	return s
}

// Record appends a raw reply to the message log.
func (b *Builder) Record(stage Stage, reply Reply) {
	b.state.Messages = append(b.state.Messages, StageReply{Stage: stage, Reply: reply})
}

// SetAttractions writes the explorer output.
func (b *Builder) SetAttractions(v []Attraction) error {
	return b.write(StageExplorer, func(s *State) { s.Attractions = v })
}

// SetFoods writes the foodie output.
func (b *Builder) SetFoods(v []Food) error {
	return b.write(StageFoodie, func(s *State) { s.Foods = v })
}

// SetItinerary writes the guide output.
func (b *Builder) SetItinerary(v []DayPlan) error {
	return b.write(StageGuide, func(s *State) { s.Itinerary = v })
}

// SetNarration writes the vlogger output.
func (b *Builder) SetNarration(v []string) error {
	return b.write(StageVlogger, func(s *State) { s.Narration = v })
}

// SetEvaluation writes the evaluator output.
func (b *Builder) SetEvaluation(score float64, improvements string) error {
	return b.write(StageEvaluator, func(s *State) {
		s.EvaluationScore = score
		s.Improvements = improvements
	})
}

// Build returns the finished state. It fails with ErrIncomplete before StageDone.
func (b *Builder) Build() (*State, error) {
	if !b.Done() {
		return nil, ErrIncomplete
	}
	s := b.Snapshot()
	return &s, nil
}

func (b *Builder) write(owner Stage, apply func(*State)) error {
	if b.state.Stage != owner {
		return &StageOrderError{Expected: b.state.Stage, Got: owner}
	}
	apply(&b.state)
	b.state.History = append(b.state.History, owner)
	b.state.Stage = owner.Next()
	return nil
}
