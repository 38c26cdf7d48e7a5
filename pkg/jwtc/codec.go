package jwtc

import (
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithms.
const (
	AlgorithmHS256 = "HS256"
	AlgorithmHS512 = "HS512"
	AlgorithmRS256 = "RS256"
	AlgorithmEdDSA = "EdDSA"
)

// DefaultGeneratorName is the registry name of the codec itself.
const DefaultGeneratorName = "jwt"

// Codec encodes claim sets into signed tokens and decodes them back. It is
// the default token generator; substitutes can be registered by name.
type Codec struct {
	alg       string
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

// New builds a Codec for the named algorithm. HMAC algorithms take the
// shared secret directly; RS256 and EdDSA expect a PEM-encoded private key.
func New(alg string, key []byte) (*Codec, error) {
	switch alg {
	case AlgorithmHS256, AlgorithmHS512:
		if len(key) == 0 {
			return nil, fmt.Errorf("jwtc: empty secret for %s", alg)
		}
		method := jwt.SigningMethodHS256
		if alg == AlgorithmHS512 {
			method = jwt.SigningMethodHS512
		}
		return &Codec{alg: alg, method: method, signKey: key, verifyKey: key}, nil
	case AlgorithmRS256:
		return newRS256(key)
	case AlgorithmEdDSA:
		return newEdDSA(key)
	default:
		return nil, fmt.Errorf("jwtc: unsupported algorithm %q", alg)
	}
}

// newRS256 loads an RSA private key from PEM bytes. Handles both PKCS1 and
// PKCS8 encodings.
func newRS256(pemKey []byte) (*Codec, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtc: invalid PEM for RSA key")
	}

	var key *rsa.PrivateKey
	switch block.Type {
	case "RSA PRIVATE KEY":
		k, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtc: parse PKCS1: %w", err)
		}
		key = k
	case "PRIVATE KEY":
		priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtc: parse PKCS8: %w", err)
		}
		rk, ok := priv.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("jwtc: not an RSA private key")
		}
		key = rk
	default:
		return nil, fmt.Errorf("jwtc: unsupported PEM type %q", block.Type)
	}

	return &Codec{
		alg:       AlgorithmRS256,
		method:    jwt.SigningMethodRS256,
		signKey:   key,
		verifyKey: &key.PublicKey,
	}, nil
}

// newEdDSA loads an Ed25519 private key from PKCS8 PEM bytes.
func newEdDSA(pemKey []byte) (*Codec, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, errors.New("jwtc: invalid PEM for Ed25519 key")
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtc: parse PKCS8: %w", err)
	}
	edKey, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtc: not an Ed25519 private key")
	}

	return &Codec{
		alg:       AlgorithmEdDSA,
		method:    jwt.SigningMethodEdDSA,
		signKey:   edKey,
		verifyKey: edKey.Public(),
	}, nil
}

// Alg returns the configured algorithm name.
func (c *Codec) Alg() string { return c.alg }

// Encode serializes claims into a compact signed token string.
func (c *Codec) Encode(claims Claims) (string, error) {
	s, err := jwt.NewWithClaims(c.method, claims).SignedString(c.signKey)
	if err != nil {
		return "", fmt.Errorf("jwtc: sign: %w", err)
	}
	return s, nil
}

// Decode parses and verifies a token string. It fails with ErrMalformed,
// ErrBadSignature or ErrExpired; no partial decoding is ever attempted.
func (c *Codec) Decode(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{c.method.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.verifyKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}
	return *claims, nil
}

/* Generator interface */

func (c *Codec) Name() string { return DefaultGeneratorName }

func (c *Codec) Generate(claims Claims) (string, error) { return c.Encode(claims) }

// Validate sanity-checks that the codec actually holds key material.
func (c *Codec) Validate() error {
	if c.signKey == nil || c.verifyKey == nil {
		return errors.New("jwtc: nil key material")
	}
	return nil
}
