// Package factorial computes factorials for a stream of integers and writes
// them out in input order, with a bounded computation rate.
//
// Constructor
//   - New(opts ...Option): options-based constructor; options return an error
//     wrapping ErrInvalidConfig on invalid input.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created Pipeline:
//   - PoolSize: 1 (WithPoolSize)
//   - Permits: 100 (WithPermits)
//   - TargetPerSecond: 100 (WithTargetPerSecond)
//   - QueueCapacity: 130000 (WithQueueCapacity)
//   - TasksBufferSize: 1024 (WithTasksBuffer)
//   - ShutdownTimeout: 15 minutes (WithShutdownTimeout)
//   - Logger: zerolog.Nop() (WithLogger)
//   - Metrics: metrics.NoopProvider (WithMetrics)
//
// Stages
// A run is made of three concurrent stages sharing a ResultCache and an OrderQueue:
//   - Ingestor: reads lines from a Source, parses them (ParseValue), appends every
//     value to the OrderQueue and submits the first occurrence of each value to the pool.
//   - Worker pool: PoolSize workers compute factorials; a permit budget and a
//     RateLimiter bound how many computations complete per second.
//   - Emitter: takes values from the OrderQueue in order, waits for their
//     factorials in the ResultCache and writes them to a Sink.
//
// Output
// Each value yields one line "<n> = <n!>", where n! is 1 for n <= 1.
// Lines that are not 32-bit integers are replaced by Invalid (0) and rendered
// as InvalidMessage; note that a literal "0" is rendered the same way.
package factorial
