package service

import "errors"

// Grant-stage errors, one per refresh-grant validation stage. The boundary
// layer maps them to protocol-level response codes.
var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidGrant   = errors.New("invalid_grant")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrInvalidScope   = errors.New("invalid_scope")
)

// ErrTokenReuse signals an attempted double-use of a refresh token. It is
// deliberately distinct from ErrInvalidGrant and must never be downgraded:
// a replayed refresh token may indicate credential leakage and deserves
// heightened logging.
var ErrTokenReuse = errors.New("invalid_token_reuse")

// ErrValidation reports input to the revocation registry that is empty or
// not shaped like a signed token.
var ErrValidation = errors.New("invalid_token_value")
