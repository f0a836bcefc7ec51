/*
Package routing is the HTTP client for the external multimodal routing
engine.

The engine builds the street and transit network from the configured OSM
extract and GTFS archive and runs the time-expanded search itself; nothing
in this package computes routes. One TravelTimeMatrix call returns one
TravelTimeRecord per origin/destination/departure-minute with a feasible
trip under the request constraints.

The comparison pipeline calls the engine twice with identical spatial
parameters but different schedule snapshots and departure instants.
*/
package routing
