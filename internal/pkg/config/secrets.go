// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManager resolves sensitive configuration values from an
// external source.
type SecretsManager interface {
	GetSecret(ctx context.Context, key string) (string, error)
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
	RefreshSecrets(ctx context.Context) error
}

const secretCacheTTL = 5 * time.Minute

// AWSSecretsManager reads a single JSON secret from AWS Secrets Manager
// and caches the decoded key/value pairs for a short window.
type AWSSecretsManager struct {
	client     *secretsmanager.Client
	secretName string
	logger     *slog.Logger

	mu       sync.RWMutex
	values   map[string]string
	cachedAt time.Time
}

// NewAWSSecretsManager builds a client for the named secret in the
// given region.
func NewAWSSecretsManager(region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &AWSSecretsManager{
		client:     secretsmanager.NewFromConfig(cfg),
		secretName: secretName,
		values:     make(map[string]string),
		logger:     logger,
	}, nil
}

// GetSecret returns one value from the secret.
func (sm *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	values, err := sm.GetSecrets(ctx, []string{key})
	if err != nil {
		return "", err
	}
	val, ok := values[key]
	if !ok {
		return "", fmt.Errorf("secret %s has no key %q", sm.secretName, key)
	}
	return val, nil
}

// GetSecrets returns the requested keys, fetching from AWS when the
// cache is stale. Keys absent from the secret are logged and skipped.
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	if values, ok := sm.fromCache(keys); ok {
		return values, nil
	}

	decoded, err := sm.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return sm.pick(decoded, keys), nil
}

// RefreshSecrets drops the cache so the next read hits AWS again.
func (sm *AWSSecretsManager) RefreshSecrets(ctx context.Context) error {
	sm.mu.Lock()
	sm.values = make(map[string]string)
	sm.cachedAt = time.Time{}
	sm.mu.Unlock()

	_, err := sm.fetch(ctx)
	return err
}

func (sm *AWSSecretsManager) fromCache(keys []string) (map[string]string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.values) == 0 || time.Since(sm.cachedAt) >= secretCacheTTL {
		return nil, false
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		val, ok := sm.values[key]
		if !ok {
			return nil, false
		}
		values[key] = val
	}
	return values, true
}

func (sm *AWSSecretsManager) fetch(ctx context.Context) (map[string]string, error) {
	sm.logger.Info("fetching secret from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	out, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("reading secret %s: %w", sm.secretName, err)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &decoded); err != nil {
		return nil, fmt.Errorf("decoding secret %s: %w", sm.secretName, err)
	}

	sm.mu.Lock()
	sm.values = decoded
	sm.cachedAt = time.Now()
	sm.mu.Unlock()

	return decoded, nil
}

func (sm *AWSSecretsManager) pick(decoded map[string]string, keys []string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		val, ok := decoded[key]
		if !ok {
			sm.logger.Warn("secret key missing", slog.String("key", key))
			continue
		}
		values[key] = val
	}
	return values
}

// ApplySecrets overlays secret values onto the loaded configuration.
// Only keys present in the secret replace existing values.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretsManager) error {
	secrets, err := sm.GetSecrets(ctx, []string{
		"DB_PASSWORD",
		"REDIS_PASSWORD",
		"AWS_SECRET_ACCESS_KEY",
	})
	if err != nil {
		return fmt.Errorf("resolving secrets: %w", err)
	}

	if v, ok := secrets["DB_PASSWORD"]; ok {
		c.Database.Password = v
	}
	if v, ok := secrets["REDIS_PASSWORD"]; ok {
		c.Redis.Password = v
		c.Asynq.RedisPassword = v
	}
	if v, ok := secrets["AWS_SECRET_ACCESS_KEY"]; ok {
		c.AWS.SecretAccessKey = v
	}

	return nil
}
