// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// DocumentCall caps a single read or write against the document store.
const DocumentCall = 5 * time.Second

// Prompt caps how long an interactive choice may stay unanswered.
const Prompt = 5 * time.Minute

// SlotCacheMaxTTL bounds how stale a cached slot computation may be.
const SlotCacheMaxTTL = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server or follow-up runner waits for
// in-flight work during graceful shutdown.
const Shutdown = 5 * time.Second
