// Package processor drives the translation run against a Mealie recipe
// store. It lists recipes, filters out the ones already carrying the
// processed marker, and pushes the rest through the configured
// translation provider in fixed-size batches.
//
// Failures are isolated per recipe: a recipe that cannot be fetched,
// translated or updated is counted as failed and the run continues.
// Successful updates are marked with an extras entry so repeated runs
// are idempotent. In dry-run mode nothing is written to the store; a
// before/after diff is logged for a bounded sample instead.
package processor
