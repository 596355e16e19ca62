package domain

// DemoResult is the canned response returned when the pipeline is bypassed.
// Only location and prefs come from the request.
func DemoResult(location string, prefs Prefs) *Result {
	r := &Result{
		Location:  location,
		UserPrefs: prefs.Clone(),
		Attractions: []Attraction{
			{Name: "Central Park", Description: "Iconic urban park", Category: "Park"},
		},
		Foods: []Food{
			{Name: "Bagel", Description: "Classic breakfast", Type: "Street Food"},
		},
		Itinerary: []DayPlan{
			{Day: 1, Activities: []Activity{
				{Time: "Morning", Item: "Central Park Walk", Details: "Start at the south entrance"},
				{Time: "Lunch", Item: "Bagel", Details: "Grab a sesame bagel with cream cheese"},
			}},
		},
		Narration: []string{
			"Kicked off the day with a peaceful stroll through Central Park—sunlight through the trees was just perfect!",
		},
		EvaluationScore: 8.5,
	}
	r.Normalize()
	return r
}
