// Package xapi models xAPI Statements and converts them to and from their
// wire JSON.
//
// Entities are immutable once built. They are produced either by a builder
// (NewStatementBuilder, NewActivityBuilder, NewAgentBuilder, ...) whose Build
// method validates every invariant in one place, or by the decoder
// (StatementFromJSON, ActorFromJSON, UnmarshalStatements), which feeds the
// same builders so both paths normalize identically.
//
// The only mutable field is a Statement's stored timestamp, a write-once
// cell set by the record store after a successful round trip.
//
// Every error is a *dErrors.Error whose Field holds the dotted JSON path of
// the offending value.
package xapi
