// Package model defines the annotated table metadata that feeds the export
// compilers: physical columns introspected from a source database, plus the
// user-assigned Data Vault groupings (business-key groups, hashdiff groups,
// business concepts).
//
// The model is the unit of persistence (model.yaml) and the unit of input to
// every export function. Column and group ordering is semantically
// load-bearing: downstream hashing concatenates values in declaration order,
// so the model never re-sorts anything. All sequences are explicit slices.
package model
