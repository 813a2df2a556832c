package tools

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

var hashers = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// hashText returns the hex digests of text. With an "algorithm" argument only
// that digest is returned.
func hashText(ctx context.Context, args map[string]any) (any, error) {
	text, err := stringArg(args, "text")
	if err != nil {
		return nil, err
	}
	algo, err := optionalString(args, "algorithm", "")
	if err != nil {
		return nil, err
	}

	digest := func(newHash func() hash.Hash) string {
		h := newHash()
		h.Write([]byte(text))
		return hex.EncodeToString(h.Sum(nil))
	}

	if algo != "" {
		newHash, ok := hashers[strings.ToLower(algo)]
		if !ok {
			return nil, invalidArg("unsupported algorithm %q", algo)
		}
		return map[string]string{strings.ToLower(algo): digest(newHash)}, nil
	}

	out := make(map[string]string, len(hashers))
	for name, newHash := range hashers {
		out[name] = digest(newHash)
	}
	return out, nil
}

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{};:,.<>?"

	maxTokenLength = 512
)

// generateToken builds a random string from the selected alphabets.
func generateToken(ctx context.Context, args map[string]any) (any, error) {
	length, err := optionalInt(args, "length", 64)
	if err != nil {
		return nil, err
	}
	if length < 1 || length > maxTokenLength {
		return nil, invalidArg("length must be between 1 and %d", maxTokenLength)
	}

	var alphabet strings.Builder
	for _, set := range []struct {
		key     string
		def     bool
		letters string
	}{
		{"lowercase", true, lowercase},
		{"uppercase", true, uppercase},
		{"numbers", true, digits},
		{"symbols", false, symbols},
	} {
		on, err := optionalBool(args, set.key, set.def)
		if err != nil {
			return nil, err
		}
		if on {
			alphabet.WriteString(set.letters)
		}
	}
	if alphabet.Len() == 0 {
		return nil, invalidArg("at least one character set must be enabled")
	}

	letters := alphabet.String()
	max := big.NewInt(int64(len(letters)))
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		token[i] = letters[n.Int64()]
	}
	return string(token), nil
}

// generateUUIDs returns count random (version 4) UUIDs.
func generateUUIDs(ctx context.Context, args map[string]any) (any, error) {
	count, err := optionalInt(args, "count", 1)
	if err != nil {
		return nil, err
	}
	if count < 1 || count > 100 {
		return nil, invalidArg("count must be between 1 and 100")
	}

	out := make([]string, count)
	for i := range out {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		out[i] = id.String()
	}
	return out, nil
}
