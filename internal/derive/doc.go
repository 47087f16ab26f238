// Package derive turns a master secret and a service identifier into a
// reproducible service password.
//
// A derivation has two steps:
//   - BuildKey normalises the inputs and joins them into a composite key
//   - Engine.Derive hashes the key and maps the result onto Alphabet
//
// Two schemes exist and they never produce the same passwords:
//   - SchemeV1: secret + "||" + service, one SHA-256 pass, digest bytes
//     reused cyclically and mapped with byte % len(Alphabet). Passwords
//     longer than 32 characters repeat with period 32 and the mapping is
//     slightly biased. Both properties are part of the v1 contract.
//   - SchemeV2: length-prefixed fields, HKDF-SHA256 expand keyed by the
//     output length, rejection sampling onto Alphabet.
//
// Nothing is cached or logged. Every call is independent and safe for
// concurrent use. Intermediate buffers are zeroed before returning.
package derive
