/*
Package observability turns pipeline lifecycle events into logs and Prometheus metrics.

Hooks from several sources are merged with Combine and handed to the engine:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))
*/
package observability
