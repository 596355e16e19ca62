package domain

// Stage identifies a state of the pipeline machine.
type Stage string

const (
	StageExplorer  Stage = "explorer"
	StageFoodie    Stage = "foodie"
	StageGuide     Stage = "guide"
	StageVlogger   Stage = "vlogger"
	StageEvaluator Stage = "evaluator"
	StageDone      Stage = "done"
)

// EntryStage is the fixed initial state of every run.
const EntryStage = StageExplorer

// transitions holds the single forward edge of each state.
// There is no branching and no edge leaves StageDone.
var transitions = map[Stage]Stage{
	StageExplorer:  StageFoodie,
	StageFoodie:    StageGuide,
	StageGuide:     StageVlogger,
	StageVlogger:   StageEvaluator,
	StageEvaluator: StageDone,
}

// Next returns the state that follows s.
// StageDone and unknown stages have no successor and return StageDone.
func (s Stage) Next() Stage {
	if next, ok := transitions[s]; ok {
		return next
	}
	return StageDone
}

// Terminal reports whether s is the sink state.
func (s Stage) Terminal() bool {
	return s == StageDone
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := transitions[s]
	return ok || s == StageDone
}

func (s Stage) String() string {
	return string(s)
}

// Pipeline returns the working stages in execution order, excluding StageDone.
func Pipeline() []Stage {
	stages := make([]Stage, 0, len(transitions))
	for s := EntryStage; !s.Terminal(); s = s.Next() {
		stages = append(stages, s)
	}
	return stages
}
