// Package digest provides the hashing collaborator used by the digest filters.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm names a supported hash function.
type Algorithm string

const (
	MD5        Algorithm = "md5"
	SHA1       Algorithm = "sha1"
	SHA256     Algorithm = "sha256"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	BLAKE2b256 Algorithm = "blake2b-256"
)

// ErrUnsupported is returned for an algorithm the digester does not know.
var ErrUnsupported = errors.New("unsupported digest algorithm")

// Digester hashes text and returns the lowercase hex digest.
type Digester interface {
	Digest(algo Algorithm, text string) (string, error)
}

// Hashes is the default Digester.
type Hashes struct{}

// Default returns the default Digester.
func Default() Digester {
	return Hashes{}
}

// Digest implements Digester.
func (Hashes) Digest(algo Algorithm, text string) (string, error) {
	data := []byte(text)
	var sum []byte
	switch algo {
	case MD5:
		s := md5.Sum(data)
		sum = s[:]
	case SHA1:
		s := sha1.Sum(data)
		sum = s[:]
	case SHA256:
		s := sha256.Sum256(data)
		sum = s[:]
	case SHA512:
		s := sha512.Sum512(data)
		sum = s[:]
	case SHA3_256:
		s := sha3.Sum256(data)
		sum = s[:]
	case BLAKE2b256:
		s := blake2b.Sum256(data)
		sum = s[:]
	default:
		return "", fmt.Errorf("digest %q: %w", algo, ErrUnsupported)
	}
	return hex.EncodeToString(sum), nil
}
