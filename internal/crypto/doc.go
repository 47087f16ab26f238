// Package crypto holds the small memory-hygiene helpers seedpass uses
// around secret material.
//
// Master secrets, composite keys and digests live in byte slices so they
// can be wiped with ClearBytes once a derivation finishes. Strings are
// immutable and cannot be wiped, so secrets are never converted to them.
package crypto
