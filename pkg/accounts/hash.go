package accounts

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// digestFunc computes one round of a fixed-output digest.
type digestFunc func([]byte) []byte

// digests is the supported algorithm registry. Extendable-output
// functions (the shake family) are excluded: no output-length
// parameter is collected from callers. blake2b and blake2s use their
// default 64- and 32-byte digest sizes.
var digests = map[string]digestFunc{
	"md5":        func(b []byte) []byte { d := md5.Sum(b); return d[:] },
	"sha1":       func(b []byte) []byte { d := sha1.Sum(b); return d[:] },
	"sha224":     func(b []byte) []byte { d := sha256.Sum224(b); return d[:] },
	"sha256":     func(b []byte) []byte { d := sha256.Sum256(b); return d[:] },
	"sha384":     func(b []byte) []byte { d := sha512.Sum384(b); return d[:] },
	"sha512":     func(b []byte) []byte { d := sha512.Sum512(b); return d[:] },
	"sha512_224": func(b []byte) []byte { d := sha512.Sum512_224(b); return d[:] },
	"sha512_256": func(b []byte) []byte { d := sha512.Sum512_256(b); return d[:] },
	"sha3_224":   func(b []byte) []byte { d := sha3.Sum224(b); return d[:] },
	"sha3_256":   func(b []byte) []byte { d := sha3.Sum256(b); return d[:] },
	"sha3_384":   func(b []byte) []byte { d := sha3.Sum384(b); return d[:] },
	"sha3_512":   func(b []byte) []byte { d := sha3.Sum512(b); return d[:] },
	"blake2b":    func(b []byte) []byte { d := blake2b.Sum512(b); return d[:] },
	"blake2s":    func(b []byte) []byte { d := blake2s.Sum256(b); return d[:] },
}

// Algorithms returns the supported digest names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChainHash applies the named digest to the password `iterations`
// times in sequence. Each round's lowercase hex encoding feeds the
// next round; the final hex string is the stored hash.
//
// This is a self-iterated general-purpose digest chain, kept for
// compatibility with existing stored hashes. It is not a salted,
// constant-time password KDF and must not be mistaken for one.
func ChainHash(algorithm string, iterations int, password string) (string, error) {
	digest, ok := digests[algorithm]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	if iterations < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRehashCount, iterations)
	}

	current := password
	for i := 0; i < iterations; i++ {
		current = hex.EncodeToString(digest([]byte(current)))
	}
	return current, nil
}
