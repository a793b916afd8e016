// Package sim provides the shared randomness plumbing for the champagne party
// simulator.
//
// # Reading Guide
//
// The simulation is split across sub-packages, leaves first:
//   - sim/glass/: glass geometry, the piecewise radius profile and the volume integrator
//   - sim/weather/: weather observations, the guest-demand link function and the
//     weather data source (raw JSON and flattened CSV tables)
//   - sim/party/: one simulated party, seeded batches of parties, multi-location
//     sweeps and batch summaries
//   - sim/trace/: optional per-trial sampling records
//
// # Key Interfaces
//
//   - Source: the randomness capability {Uniform, Normal, Poisson} every sampling
//     step draws from. Stream is the gonum-backed implementation; tests may
//     substitute deterministic doubles.
//   - PartitionedRNG: derives one isolated, reproducible Stream per subsystem
//     (a single batch, or one location of a sweep) from a master seed.
package sim
