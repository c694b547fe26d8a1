// Package service is the only write entry point into the system. It
// reads the host clock once per call, drives the pool state machine,
// persists committed notifications to the outbox and logs outcomes.
package service
