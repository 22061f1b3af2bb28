// Package token generates the opaque access and refresh tokens used by the
// session subsystem.
//
// Tokens are fixed-length alphanumeric strings drawn from crypto/rand.
//
// Design goals:
//   - High entropy: the default length of 128 characters over a 62-character
//     alphabet makes collisions astronomically unlikely, so uniqueness is not
//     enforced locally and draws are never retried.
//   - Uniform distribution: random bytes are rejection-sampled so every
//     character of the alphabet is equally likely.
package token
