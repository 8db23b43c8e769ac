package test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/SafeMPC/onramp-service/internal/config"
)

const (
	TestCDPProjectID      = "3f1c5a5e-8c0b-4a54-9a8e-4d2b8a5f0c11"
	TestCDPOrganizationID = "0d6b3e02-5e7c-4c6d-8b91-2f0a6c1e7d35"
	TestCDPKeyID          = "8a2f4d61-93b0-4e5a-a7c2-1b9e6f3d0c84"
)

// CDPRequest is one request received by a CDPFake.
type CDPRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// CDPFake stands in for the CDP token endpoint. It answers every request with the configured
// status code and body and records what it received.
type CDPFake struct {
	Server *httptest.Server

	mu         sync.Mutex
	statusCode int
	body       string
	requests   []CDPRequest
}

// NewCDPFake starts a fake token endpoint, closed automatically when the test ends.
func NewCDPFake(t *testing.T, statusCode int, body string) *CDPFake {
	t.Helper()

	f := &CDPFake{
		statusCode: statusCode,
		body:       body,
	}

	f.Server = httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(f.Server.Close)

	return f
}

func (f *CDPFake) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, CDPRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	statusCode := f.statusCode
	responseBody := f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, responseBody)
}

// Respond changes the answer for all following requests.
func (f *CDPFake) Respond(statusCode int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statusCode = statusCode
	f.body = body
}

func (f *CDPFake) Requests() []CDPRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]CDPRequest(nil), f.requests...)
}

// URL is the base URL to configure as config.CDP.BaseURL.
func (f *CDPFake) URL() string {
	return f.Server.URL
}

// GenerateECKey creates a key on curve and returns it with its SEC1 PEM encoding.
// Curves other than P-256 are only useful to provoke signing failures.
func GenerateECKey(t *testing.T, curve elliptic.Curve) (*ecdsa.PrivateKey, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate EC key: %v", err)
	}

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal EC key: %v", err)
	}

	return key, string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

// WriteKeyFile writes a CDP key file {id, privateKey} into a temporary directory and returns its path.
func WriteKeyFile(t *testing.T, keyID string, privateKeyPEM string) string {
	t.Helper()

	data, err := json.Marshal(map[string]string{
		"id":         keyID,
		"privateKey": privateKeyPEM,
	})
	if err != nil {
		t.Fatalf("failed to encode key file: %v", err)
	}

	path := filepath.Join(t.TempDir(), "cdp_api_key.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	return path
}

// ConfigureCDP points cfg at fake and provisions a freshly generated P-256 key through a key
// file. The generated key is returned to verify assertions with.
func ConfigureCDP(t *testing.T, cfg *config.Server, fake *CDPFake) *ecdsa.PrivateKey {
	t.Helper()

	key, keyPEM := GenerateECKey(t, elliptic.P256())

	cfg.CDP.BaseURL = fake.URL()
	cfg.CDP.ProjectID = TestCDPProjectID
	cfg.CDP.OrganizationID = TestCDPOrganizationID
	cfg.CDP.KeyFile = WriteKeyFile(t, TestCDPKeyID, keyPEM)

	return key
}
