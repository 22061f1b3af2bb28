// Package password provides one-way password hashing and verification for
// Waypoint credentials.
//
// It implements Argon2id hashing using a PHC-style encoded string format:
// a fresh random salt is generated per hash, and the algorithm parameters and
// salt are embedded in the encoded output so verification is self-describing.
//
// Security notes:
//   - Any byte-sequence password is hashable; policy decisions (minimum
//     length and the like) belong to callers, not to the hasher.
//   - Hash strings are treated as untrusted input during Verify and are
//     validated accordingly; verification refuses hashes whose parameters
//     exceed reasonable bounds.
//   - Comparison of derived keys is constant-time.
package password
