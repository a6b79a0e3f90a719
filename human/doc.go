// Package human implements the two decoded-record renderings spec §4.11
// describes: Print (a labelled multi-line report) and Dump (a hex dump
// interleaved with per-section annotations). Both append onto a
// caller-supplied buffer rather than building and returning a fresh
// allocation, so a caller on a constrained target can reuse one scratch
// slice across many packets.
//
// Print and Dump are each independently excludable at build time (spec
// §6): build with `-tags no_print` or `-tags no_dump` to drop the one a
// constrained node's firmware build has no use for.
package human
