package cdp

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/pkg/errors"
)

const (
	SourceKeyFile = "keyfile"
	SourceEnv     = "env"

	keyNamePrefix = "organizations/"
)

// Credentials identify a CDP API key. PrivateKey holds PEM or bare base64 key material.
type Credentials struct {
	ProjectID  string
	KeyID      string
	PrivateKey string `json:"-"`
	KeyName    string
}

// Configured reports whether the credentials carry both a key id and key material.
func (c *Credentials) Configured() bool {
	return c != nil && len(c.KeyID) > 0 && len(c.PrivateKey) > 0
}

// String never prints the private key.
func (c *Credentials) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Credentials{ProjectID: %q, KeyID: %q, KeyName: %q, PrivateKey: [REDACTED]}", c.ProjectID, c.KeyID, c.KeyName)
}

// CredentialSource loads credentials from one place. Load returns ErrSourceAbsent if the
// source holds nothing at all, any other error if it holds something unusable.
type CredentialSource interface {
	Name() string
	Load(ctx context.Context) (*Credentials, error)
}

// KeyResourceName builds "organizations/<org>/apiKeys/<key id>". Key ids that already are
// full resource names, or keys without a known organization, are returned unchanged.
func KeyResourceName(organizationID string, keyID string) string {
	if strings.HasPrefix(keyID, keyNamePrefix) || len(organizationID) == 0 {
		return keyID
	}
	return fmt.Sprintf("%s%s/apiKeys/%s", keyNamePrefix, organizationID, keyID)
}

// keyFile is the JSON layout of a downloaded CDP API key. Older downloads use "name"
// instead of "id".
type keyFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PrivateKey string `json:"privateKey"`
}

type KeyFileSource struct {
	Path           string
	ProjectID      string
	OrganizationID string
}

func (s *KeyFileSource) Name() string {
	return SourceKeyFile
}

func (s *KeyFileSource) Load(_ context.Context) (*Credentials, error) {
	if len(s.Path) == 0 {
		return nil, ErrSourceAbsent
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSourceAbsent
		}
		return nil, errors.Wrapf(err, "failed to read key file %s", s.Path)
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, errors.Wrapf(ErrKeyFileMalformed, "invalid JSON: %v", err)
	}

	keyID := kf.ID
	if len(keyID) == 0 {
		keyID = kf.Name
	}

	if len(keyID) == 0 || len(kf.PrivateKey) == 0 {
		return nil, errors.Wrap(ErrKeyFileMalformed, "id and privateKey are required")
	}

	return &Credentials{
		ProjectID:  s.ProjectID,
		KeyID:      keyID,
		PrivateKey: NormalizePrivateKey(kf.PrivateKey),
		KeyName:    KeyResourceName(s.OrganizationID, keyID),
	}, nil
}

// EnvSource reads credentials from the service configuration, which is populated from
// CDP_PROJECT_ID, CDP_API_KEY, CDP_API_SECRET, CDP_KEY_NAME and CDP_ORGANIZATION_ID.
type EnvSource struct {
	ProjectID      string
	OrganizationID string
	APIKeyID       string
	APISecret      string
	KeyName        string
}

func (s *EnvSource) Name() string {
	return SourceEnv
}

func (s *EnvSource) Load(_ context.Context) (*Credentials, error) {
	if len(s.APIKeyID) == 0 && len(s.APISecret) == 0 {
		return nil, ErrSourceAbsent
	}

	if len(s.APIKeyID) == 0 || len(s.APISecret) == 0 {
		return nil, ErrIncompleteCredentials
	}

	keyName := s.KeyName
	if len(keyName) == 0 {
		keyName = KeyResourceName(s.OrganizationID, s.APIKeyID)
	}

	return &Credentials{
		ProjectID:  s.ProjectID,
		KeyID:      s.APIKeyID,
		PrivateKey: NormalizePrivateKey(s.APISecret),
		KeyName:    keyName,
	}, nil
}

// CredentialResolver asks its sources in order and returns the first usable credentials.
// Nothing is cached, every call re-reads all sources.
type CredentialResolver struct {
	sources []CredentialSource
}

func NewCredentialResolver(sources ...CredentialSource) *CredentialResolver {
	return &CredentialResolver{
		sources: sources,
	}
}

// NewCredentialResolverFromConfig resolves from the key file first, then from the environment.
func NewCredentialResolverFromConfig(cfg config.CDP) *CredentialResolver {
	return NewCredentialResolver(
		&KeyFileSource{
			Path:           cfg.KeyFile,
			ProjectID:      cfg.ProjectID,
			OrganizationID: cfg.OrganizationID,
		},
		&EnvSource{
			ProjectID:      cfg.ProjectID,
			OrganizationID: cfg.OrganizationID,
			APIKeyID:       cfg.APIKeyID,
			APISecret:      cfg.APISecret,
			KeyName:        cfg.KeyName,
		},
	)
}

// Resolve returns the credentials of the first source that yields a key id and key material.
// If none does, the returned *UnconfiguredError lists what every source reported.
func (r *CredentialResolver) Resolve(ctx context.Context) (*Credentials, error) {
	log := util.LogFromContext(ctx)

	unconfigured := &UnconfiguredError{}
	for _, source := range r.sources {
		creds, err := source.Load(ctx)
		if err == nil && !creds.Configured() {
			err = ErrIncompleteCredentials
		}

		if err == nil {
			log.Debug().Str("credential_source", source.Name()).Str("key_name", creds.KeyName).Msg("Resolved CDP credentials")
			return creds, nil
		}

		if !errors.Is(err, ErrSourceAbsent) {
			log.Warn().Err(err).Str("credential_source", source.Name()).Msg("CDP credential source is unusable, trying next source")
		}

		unconfigured.Attempts = append(unconfigured.Attempts, &SourceError{Source: source.Name(), Err: err})
	}

	return nil, unconfigured
}

// NormalizePrivateKey turns the various encodings key material shows up in into a PEM block:
// literal "\n" escapes from env files, PEM blocks flattened onto one line and bare base64
// bodies without any delimiters.
func NormalizePrivateKey(raw string) string {
	key := strings.TrimSpace(strings.ReplaceAll(raw, `\n`, "\n"))
	if len(key) == 0 {
		return ""
	}

	label := "EC PRIVATE KEY"
	body := key

	const beginPrefix = "-----BEGIN "
	if strings.HasPrefix(key, beginPrefix) {
		rest := key[len(beginPrefix):]
		end := strings.Index(rest, "-----")
		if end < 0 {
			return key
		}
		label = rest[:end]
		body = rest[end+len("-----"):]

		if endIdx := strings.Index(body, "-----END "+label+"-----"); endIdx >= 0 {
			body = body[:endIdx]
		}
	}

	body = strings.Join(strings.Fields(body), "")

	var b strings.Builder
	b.WriteString("-----BEGIN " + label + "-----\n")
	for i := 0; i < len(body); i += 64 {
		b.WriteString(body[i:min(i+64, len(body))])
		b.WriteByte('\n')
	}
	b.WriteString("-----END " + label + "-----\n")

	return b.String()
}
