package token

import "crypto/rand"

const (
	// Alphabet is the character set tokens are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the character count used for both access and refresh
	// tokens unless configured otherwise.
	DefaultLength = 128
)

// rejectAbove is the largest multiple of len(Alphabet) that fits in a byte.
// Bytes at or above it are discarded to keep the modulo draw uniform.
const rejectAbove = 256 - 256%len(Alphabet) // 248

// New returns a random string of exactly length characters from Alphabet,
// sourced from crypto/rand.
func New(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
