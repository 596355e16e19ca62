/*
Package vlogger turns a destination into a travel vlog plan.

A run chains five language model stages over one shared record: explorer
(attractions), foodie (local food), guide (day-by-day itinerary), vlogger
(first-person narration, one entry per day) and evaluator (a 1-10 score).
Stages run strictly in that order and each one owns exactly one output field.
Model replies are free text; whatever JSON can be recovered from them is
decoded, and anything else falls back to an empty value instead of failing.

# Usage

	model, err := gemini.New(ctx, os.Getenv("GOOGLE_API_KEY"))
	if err != nil {
		log.Fatal(err)
	}

	eng, err := vlogger.New(vlogger.WithModel(model))
	if err != nil {
		log.Fatal(err)
	}

	result, err := eng.Generate(ctx, domain.Request{
		Location:  "Lisbon",
		UserPrefs: domain.Prefs{"duration": 2, "style": "cinematic"},
	})

# Adapters

  - pkg/adapters/gemini: Gemini model.
  - pkg/adapters/memory: scripted model and in-memory run archive.
  - pkg/adapters/redis: Redis run archive.
  - pkg/adapters/loam: prompt overrides from a directory of Markdown files.
  - pkg/adapters/http: the REST API.
  - pkg/adapters/mcp: the Model Context Protocol tool server.
*/
package vlogger
