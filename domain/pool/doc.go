// Package pool implements the order lifecycle state machine and the
// batch matching engine of a privacy-oriented order matching pool.
// The package is pure: the host supplies caller identity and time as
// plain call inputs, and committed state transitions are reported
// through an Emitter collaborator.
package pool
