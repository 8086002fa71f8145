// Package export compiles an annotated model into the Data Vault metadata
// relations consumed by the downstream loader: hubs, links, satellites, and
// source registrations, plus a denormalized per-column variant.
//
// Every compiler is a pure function over the model snapshot: no shared
// state, no I/O, idempotent over the same input. Problems are reported by
// omission - a group that fails a precondition contributes no rows - but
// each omission is surfaced as a structured Diagnostic so the caller can
// log it instead of leaving the user guessing.
//
// Row order is part of the contract. Rows follow the table, group, and
// column declaration order of the model; nothing here sorts.
package export
