package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"flag"
	"fmt"
	"os"

	"github.com/SafeMPC/onramp-service/internal/cdp"
	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
)

// Writes a throwaway P-256 key file in the layout of a downloaded CDP API key and prints an
// assertion signed with it. CDP rejects the key, it only exercises the local signing path.
func main() {
	out := flag.String("out", "cdp_api_key.json", "Path of the key file to write")
	org := flag.String("org", "00000000-0000-0000-0000-000000000000", "Organization id used for the key name")
	target := flag.String("target", "api.developer.coinbase.com/onramp/v1/token", "Host and path the assertion is bound to")
	flag.Parse()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		panic(err)
	}

	keyID := uuid.NewString()
	privateKey := string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))

	data, err := json.MarshalIndent(map[string]string{
		"id":         keyID,
		"privateKey": privateKey,
	}, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile(*out, data, 0o600); err != nil {
		panic(err)
	}

	assertion, err := cdp.NewSigner(time2.DefaultClock).Sign("POST", *target, cdp.KeyResourceName(*org, keyID), privateKey)
	if err != nil {
		panic(err)
	}

	fmt.Println(assertion.Token)
}
