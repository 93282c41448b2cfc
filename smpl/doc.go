// Package smpl provides a discrete-event simulation kernel modeled on
// MacDougall's smpl: simulated-time advancement driven by a priority
// queue of scheduled events, and a facility abstraction (multi-server
// semaphore with priority queueing) through which simulated processes
// contend for shared resources.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go: the event record and the (time, insertion sequence) ordering rule
//   - eventlist.go: the future-event list, a container/heap priority queue
//   - facility.go: server pools, waiter queues, and the request/release protocol
//   - simulator.go: Init/Time/Schedule/Cause, the glue between the event list
//     and the facility table
//
// # Architecture
//
// Simulator is generic over the caller's token type (the opaque handle
// identifying a simulated process). It owns the event list, the facility
// table, the clock, and the "in-flight" event needed to re-schedule a
// blocked request. It does not generate random numbers, parse input, or
// print statistics; callers wanting any of that can use smpl/rng for
// distribution sampling and smpl/scenario for loading a facility/event
// topology from YAML — both optional, neither imported by the kernel.
//
// Thread-safety: every exported Simulator method takes an internal
// mutex, per the spec's "MAY expose thread-safety by wrapping all
// public operations in a single mutex" — no operation suspends
// mid-way across a simulated-time boundary, so the lock is held for
// the duration of the call and never across calls.
package smpl
