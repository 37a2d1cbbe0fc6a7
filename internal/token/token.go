// Package token decodes bearer credentials into identity claims without
// verifying them. The decode is advisory: it answers "who does this token
// claim to be" for routing and rendering decisions, while the GraphQL
// backend remains the sole authority on whether the token is actually
// valid. Do not treat anything in this package as a security boundary.
package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/internmatch/portal/internal/domain"
)

// Claims are the identity attributes carried in the credential payload
type Claims struct {
	SubjectID string      `json:"subject_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IssuedAt  int64       `json:"issued_at,omitempty"`
	ExpiresAt int64       `json:"expires_at,omitempty"`
}

// payload mirrors the raw JSON of the second token segment. Issuers are
// inconsistent about the subject key, so all observed spellings are
// accepted.
type payload struct {
	Sub    string `json:"sub"`
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Iat    int64  `json:"iat"`
	Exp    int64  `json:"exp"`
}

// Decode extracts claims from a dot-separated bearer token. The payload is
// the second segment: URL-safe base64 of UTF-8 JSON. The signature segment
// is never inspected. All failures wrap domain.ErrDecode and must be
// treated by callers as "no session", never surfaced as an error.
func Decode(raw string) (*Claims, error) {
	segments := strings.Split(raw, ".")
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: expected at least 2 segments, got %d", domain.ErrDecode, len(segments))
	}

	data, err := decodeSegment(segments[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: payload is not valid JSON: %v", domain.ErrDecode, err)
	}

	role, err := domain.ParseRole(p.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: missing or unknown role", domain.ErrDecode)
	}

	return &Claims{
		SubjectID: subjectOf(&p),
		Email:     p.Email,
		Role:      role,
		IssuedAt:  p.Iat,
		ExpiresAt: p.Exp,
	}, nil
}

// decodeSegment translates the URL-safe base64 alphabet to the standard
// one, restores padding, and decodes.
func decodeSegment(segment string) ([]byte, error) {
	translated := strings.NewReplacer("-", "+", "_", "/").Replace(segment)
	if pad := len(translated) % 4; pad != 0 {
		translated += strings.Repeat("=", 4-pad)
	}
	return base64.StdEncoding.DecodeString(translated)
}

func subjectOf(p *payload) string {
	switch {
	case p.Sub != "":
		return p.Sub
	case p.UserID != "":
		return p.UserID
	default:
		return p.ID
	}
}
