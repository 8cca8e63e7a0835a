package tokenstore

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyLen  = 64
	blockKeyLen = 32
)

// cookieKeys derives the signing and encryption keys from the secret.
// Without a secret the keys are random, so cookies do not survive a restart.
func cookieKeys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		log.Warn().Msg("TokenStore: no session secret configured, using random cookie keys")
		hashKey = securecookie.GenerateRandomKey(hashKeyLen)
		blockKey = securecookie.GenerateRandomKey(blockKeyLen)
		if hashKey == nil || blockKey == nil {
			return nil, nil, fmt.Errorf("generate random cookie keys")
		}
		return hashKey, blockKey, nil
	}

	hashKey, err = deriveKey(secret, "taskflow cookie hash", hashKeyLen)
	if err != nil {
		return nil, nil, err
	}
	blockKey, err = deriveKey(secret, "taskflow cookie block", blockKeyLen)
	if err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func deriveKey(secret, info string, n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}
