// Package cookiejar implements the cookie-bound message protocol: opaque,
// signed/encrypted envelopes keyed by short identifiers (MessageCookie<T>,
// SessionCookie, LastUserNameCookie in spec.md section 3).
//
// Every cookie kind derives its own signing/encryption key from a single
// configured master secret via HKDF, so a compromise of one derived key
// does not expose the others.
package cookiejar

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKeys derives a 32-byte hash key and a 32-byte block key for
// gorilla/securecookie from masterSecret, using info (a short,
// cookie-kind-specific label such as "signin-message" or "session") as the
// HKDF info input; no salt is used.
func DeriveKeys(masterSecret []byte, info string) (hashKey, blockKey []byte) {
	hashKey = deriveKey(masterSecret, info+"|hash", 32)
	blockKey = deriveKey(masterSecret, info+"|block", 32)
	return hashKey, blockKey
}

func deriveKey(secret []byte, info string, length int) []byte {
	reader := hkdf.New(sha256.New, secret, nil, []byte(info))
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		panic(err)
	}
	return key
}
