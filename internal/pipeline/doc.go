// Package pipeline runs a line function over a corpus stream with a
// fixed pool of workers while preserving line order.
//
// Lines are read in outer batches of Workers*ChunkSize and dispatched to
// the pool in chunks of ChunkSize lines, so one channel send amortizes
// over many lines. Workers complete chunks in any order; results land in
// per-batch slots indexed by line position and are emitted strictly in
// corpus order once the batch is done. Only one outer batch of lines and
// results is resident at a time, so arbitrarily large corpora run in
// bounded memory.
//
// Small chunks improve load balancing, large chunks reduce dispatch
// overhead at the cost of peak memory; both knobs are deliberate tuning
// parameters.
package pipeline
