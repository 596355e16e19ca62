/*
Package domain contains the core domain models of the itinerary pipeline.

It defines the stages of the state machine, the record threaded through a run,
the reply variant returned by language models, and the public result handed back
to callers. This package is kept pure and free of I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Stage: A state of the pipeline machine (explorer, foodie, guide, vlogger, evaluator, done).
  - State: The per-run record. Each stage owns exactly one output field.
  - Builder: Forward-only writer for State. A stage can only write while it is the current stage.
  - Reply: What a model returned, either structured data or text.
  - Result: The public projection of a finished State.
*/
package domain
