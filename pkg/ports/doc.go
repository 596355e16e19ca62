/*
Package ports defines the driven ports (interfaces) of the itinerary pipeline.

These interfaces decouple the stage logic from external implementations, allowing
the engine to run against a real language model, a scripted one, or an archive
kept in memory or in Redis.

# Key Interfaces

  - Model: Answers one role-tagged request with a text or structured reply.
  - RunStore: Archives finished results so they can be fetched by run ID.
*/
package ports
