package cdp

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// AssertionTTL is the lifetime of every signed assertion. It is not configurable.
	AssertionTTL = 2 * time.Minute

	assertionIssuer = "cdp"
)

// AssertionClaims bind an assertion to one key, one request target and one use.
// They follow the CDP API key authentication convention: iss is the fixed string "cdp",
// while sub and the kid header carry the key resource name (organizations/.../apiKeys/...).
type AssertionClaims struct {
	jwt.RegisteredClaims
	Nonce string `json:"nonce"`
	// URI is "<METHOD> <host><path>" of the only request the assertion authorizes.
	URI string `json:"uri"`
}

// SignedAssertion is a compact ES256 JWT, valid for a single request.
type SignedAssertion struct {
	Token     string
	Nonce     string
	URI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Signer struct {
	clock time2.Clock
}

func NewSigner(clock time2.Clock) *Signer {
	return &Signer{
		clock: clock,
	}
}

// Sign creates a fresh assertion for method and path (host plus path, no scheme).
// All failures are returned as *SigningError.
func (s *Signer) Sign(method string, path string, keyName string, privateKey string) (*SignedAssertion, error) {
	if len(keyName) == 0 {
		return nil, &SigningError{Err: ErrMissingKeyName}
	}
	if len(privateKey) == 0 {
		return nil, &SigningError{Err: ErrMissingPrivateKey}
	}
	if len(method) == 0 || len(path) == 0 {
		return nil, &SigningError{Err: ErrMissingRequestTarget}
	}

	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	// NumericDate has second precision, truncate so that exp - iat is exactly the TTL.
	now := s.clock.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(AssertionTTL)
	uri := FormatURI(method, path)

	claims := AssertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    assertionIssuer,
			Subject:   keyName,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Nonce: nonce,
		URI:   uri,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = keyName
	token.Header["nonce"] = nonce

	signed, err := token.SignedString(key)
	if err != nil {
		return nil, &SigningError{Err: errors.Wrap(err, "failed to sign token")}
	}

	return &SignedAssertion{
		Token:     signed,
		Nonce:     nonce,
		URI:       uri,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// FormatURI renders the request target claim, e.g. "POST api.developer.coinbase.com/onramp/v1/token".
func FormatURI(method string, path string) string {
	return strings.ToUpper(method) + " " + path
}

// ParsePrivateKey decodes SEC1 or PKCS#8 encoded P-256 key material.
func ParsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	normalized := NormalizePrivateKey(privateKey)
	if len(normalized) == 0 {
		return nil, ErrMissingPrivateKey
	}

	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(normalized))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse EC private key")
	}

	if key.Curve == nil || key.Curve.Params().Name != "P-256" {
		return nil, ErrUnsupportedCurve
	}

	return key, nil
}

func newNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}
	return hex.EncodeToString(id[:]), nil
}
