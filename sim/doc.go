// Package sim provides a discrete-event simulation engine for queueing
// networks: entities flow through a directed network of finite-capacity
// stations, with stochastic inter-arrival and service times and
// probabilistic branching.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - entity.go: Entity lifecycle (arrived → waiting/in service → departed) and visit records
//   - event.go: Event types that drive the simulation (Arrival, EndService)
//   - simulator.go: The event loop, seize/release mechanics, and branch evaluation
//
// # Architecture
//
// The engine is single-threaded and event-driven. "Simultaneous" service
// across stations is simulated by interleaving events in timestamp order on
// one logical thread; an entity waiting for a station is queued state, not a
// suspended goroutine. Each run owns its event heap, station states, and
// entity records exclusively.
//
// Determinism is governed by the master seed (see PartitionedRNG in rng.go)
// and by the event heap's tie-breaking policy: equal timestamps are resolved
// in insertion order. Two runs with the same seed and configuration produce
// identical event traces and identical output tables.
//
// Sub-packages:
//   - sim/scenario/: YAML scenario specifications and conversion to Config
//   - sim/trace/: event-trace recording (pure data types)
package sim
