// Package pipeline wires the run end to end: POI loader, schedule
// preflight, two routing engine calls, aggregation, join, and rendering.
package pipeline
