package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/chacha20poly1305"
)

// redisSettingsStore keeps the sealed connection config in Redis under the
// fixed settings key. The payload is encrypted with XChaCha20-Poly1305; the
// nonce is prepended to the ciphertext.
type redisSettingsStore struct {
	client *redis.Client
	key    []byte
}

// NewRedisSettingsStore derives the sealing key from the configured secret.
func NewRedisSettingsStore(client *redis.Client, sealingSecret string) SettingsStore {
	key := sha256.Sum256([]byte(sealingSecret))
	return &redisSettingsStore{
		client: client,
		key:    key[:],
	}
}

func (s *redisSettingsStore) seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *redisSettingsStore) open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("sealed settings payload too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

func (s *redisSettingsStore) Save(ctx context.Context, config *requests.EHRConnectionConfig) error {
	plaintext, err := json.Marshal(config)
	if err != nil {
		return err
	}
	sealed, err := s.seal(plaintext)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, constvars.SettingsStoreKey, sealed, 0).Err()
}

func (s *redisSettingsStore) Load(ctx context.Context) (*requests.EHRConnectionConfig, error) {
	sealed, err := s.client.Get(ctx, constvars.SettingsStoreKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	plaintext, err := s.open(sealed)
	if err != nil {
		return nil, err
	}

	config := new(requests.EHRConnectionConfig)
	if err := json.Unmarshal(plaintext, config); err != nil {
		return nil, err
	}
	return config, nil
}

func (s *redisSettingsStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, constvars.SettingsStoreKey).Err()
}
