package domain

// Attraction is a point of interest proposed by the explorer stage.
type Attraction struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Category    string `json:"category" mapstructure:"category"`
}

// Food is a local dish proposed by the foodie stage.
type Food struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Type        string `json:"type" mapstructure:"type"`
}

// Activity is a single slot in a day plan.
type Activity struct {
	Time    string `json:"time" mapstructure:"time"`
	Item    string `json:"item" mapstructure:"item"`
	Details string `json:"details" mapstructure:"details"`
}

// DayPlan is one day of the itinerary composed by the guide stage.
type DayPlan struct {
	Day        int        `json:"day" mapstructure:"day"`
	Activities []Activity `json:"activities" mapstructure:"activities"`
}

// Prefs is the open preference mapping supplied by the caller. It is never validated.
type Prefs map[string]any

// Get returns the value for key, or def when the key is absent.
// A key that is present with a nil value returns nil.
func (p Prefs) Get(key string, def any) any {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Duration returns the "duration" preference, defaulting to DefaultDuration.
func (p Prefs) Duration() any {
	return p.Get(PrefDuration, DefaultDuration)
}

// Style returns the "style" preference, defaulting to DefaultStyle.
func (p Prefs) Style() any {
	return p.Get(PrefStyle, DefaultStyle)
}

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (p Prefs) Clone() Prefs {
	out := make(Prefs, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Request is the input of a pipeline run.
type Request struct {
	Location  string `json:"location"`
	UserPrefs Prefs  `json:"user_prefs"`
}

// Result is the public projection of a finished run.
type Result struct {
	RunID           string       `json:"-"`
	Location        string       `json:"location"`
	UserPrefs       Prefs        `json:"user_prefs"`
	Attractions     []Attraction `json:"attractions"`
	Foods           []Food       `json:"foods"`
	Itinerary       []DayPlan    `json:"itinerary"`
	Narration       []string     `json:"narration"`
	EvaluationScore float64      `json:"evaluation_score"`
}

// Normalize replaces nil collections with empty ones so they encode as [] and {}.
func (r *Result) Normalize() {
	if r.UserPrefs == nil {
		r.UserPrefs = Prefs{}
	}
	if r.Attractions == nil {
		r.Attractions = []Attraction{}
	}
	if r.Foods == nil {
		r.Foods = []Food{}
	}
	if r.Itinerary == nil {
		r.Itinerary = []DayPlan{}
	}
	for i := range r.Itinerary {
		if r.Itinerary[i].Activities == nil {
			r.Itinerary[i].Activities = []Activity{}
		}
	}
	if r.Narration == nil {
		r.Narration = []string{}
	}
}
