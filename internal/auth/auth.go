// Package auth signs Kalshi portfolio requests with RSA-PSS.
//
// Each signed request carries three headers: the key ID, a millisecond
// timestamp, and a base64 signature over timestamp + METHOD + path, where
// path excludes the query string.
package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Header names set on signed requests.
const (
	HeaderKey       = "KALSHI-ACCESS-KEY"
	HeaderTimestamp = "KALSHI-ACCESS-TIMESTAMP"
	HeaderSignature = "KALSHI-ACCESS-SIGNATURE"
)

// ErrNoCredentials means the key ID or private key was not configured.
var ErrNoCredentials = errors.New("kalshi credentials not configured")

// placeholderPrefix marks values copied unchanged from an example .env file.
const placeholderPrefix = "your_"

// Credentials holds the API key and private key for signing requests.
// The key lives only in process memory.
type Credentials struct {
	KeyID      string
	PrivateKey *rsa.PrivateKey

	now func() time.Time
}

// FromEnv builds credentials from raw configuration values, typically
// KALSHI_KEY_ID and KALSHI_PRIVATE_KEY. It returns ErrNoCredentials when
// either is empty or still a "your_..." placeholder.
func FromEnv(keyID, rawPEM string) (*Credentials, error) {
	keyID = strings.TrimSpace(keyID)
	rawPEM = strings.TrimSpace(rawPEM)
	if isUnset(keyID) || isUnset(rawPEM) {
		return nil, ErrNoCredentials
	}
	return NewCredentials(keyID, rawPEM)
}

func isUnset(v string) bool {
	return v == "" || strings.HasPrefix(strings.ToLower(v), placeholderPrefix)
}

// NewCredentials parses PEM text held in a string. Literal "\n" sequences,
// as produced by single-line environment variables, become real newlines.
func NewCredentials(keyID, pemText string) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("API key ID is required")
	}
	key, err := ParsePrivateKey([]byte(strings.ReplaceAll(pemText, `\n`, "\n")))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Credentials{KeyID: keyID, PrivateKey: key}, nil
}

// LoadCredentials loads credentials from key ID and private key file path.
func LoadCredentials(keyID, privateKeyPath string) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("API key ID is required")
	}
	if privateKeyPath == "" {
		return nil, fmt.Errorf("private key path is required")
	}

	privateKey, err := LoadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}

	return &Credentials{
		KeyID:      keyID,
		PrivateKey: privateKey,
	}, nil
}

// LoadPrivateKey loads an RSA private key from a PEM file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return ParsePrivateKey(data)
}

// ParsePrivateKey decodes a PEM-encoded RSA key in PKCS#8 or PKCS#1 form.
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	// PKCS#8 first (newer format)
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return rsaKey, nil
}

// SignRequest returns the authentication headers for a request. path is the
// full URL path including the API prefix, e.g. /trade-api/v2/portfolio/balance;
// any query string is dropped before signing.
func (c *Credentials) SignRequest(method, path string) (map[string]string, error) {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	ts := now().UnixMilli()

	signature, err := c.Sign(ts, method, path)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		HeaderKey:       c.KeyID,
		HeaderTimestamp: strconv.FormatInt(ts, 10),
		HeaderSignature: signature,
	}, nil
}

// Sign creates the base64 RSA-PSS signature for one request.
func (c *Credentials) Sign(timestampMs int64, method, path string) (string, error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	hashed := sha256.Sum256([]byte(Message(timestampMs, method, path)))

	signature, err := rsa.SignPSS(
		rand.Reader,
		c.PrivateKey,
		crypto.SHA256,
		hashed[:],
		&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash},
	)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}

// Message is the exact string that is hashed and signed.
func Message(timestampMs int64, method, path string) string {
	return strconv.FormatInt(timestampMs, 10) + strings.ToUpper(method) + path
}
