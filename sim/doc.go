// Package sim provides the discrete-event simulation engine for priosim: a
// finite-capacity, multi-priority queueing network with N sources feeding
// one bounded priority buffer served by M identical devices.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go / eventqueue.go: the two event types and the min-time heap
//     that orders them, with deterministic tie-breaking
//   - buffer.go: bounded priority-ordered admission with class-dependent
//     eviction under capacity pressure
//   - controller.go: the dispatch loop tying arrivals, buffer state, and
//     device occupancy together with statistics accumulation
//
// # Architecture
//
// The Controller exclusively owns the event queue, buffer, and device
// pool. Sources and devices never touch each other: requests flow through
// controller-mediated calls only. Execution is single-threaded and
// cooperative: one event in flight at a time, every handler runs to
// completion, and simulated time advances only by popping the next event.
//
// # Key extension points
//
//   - DurationSampler: the injected randomness capability. Sources and
//     devices draw exponential durations through it; tests substitute
//     FixedSampler for deterministic runs.
//   - RateFunc: the time-of-day arrival-rate function. DiurnalRate is the
//     default sinusoidal day/night cycle; ConstantRate pins it.
//   - PartitionedRNG: per-source and per-device random streams derived
//     from a single seed, so one --seed reproduces a run bit-for-bit.
package sim
