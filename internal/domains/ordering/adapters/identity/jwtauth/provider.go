package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var _ ports.IdentityProvider = (*Provider)(nil)

// Claims is the subset of a Supabase access token the API relies on.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Provider verifies HS256 access tokens signed with the auth server's shared secret.
type Provider struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
	now      func() time.Time
}

type Option func(*Provider)

// WithIssuer requires the iss claim to match.
func WithIssuer(issuer string) Option {
	return func(p *Provider) {
		p.issuer = strings.TrimSpace(issuer)
	}
}

// WithAudience requires the aud claim to contain audience.
func WithAudience(audience string) Option {
	return func(p *Provider) {
		p.audience = strings.TrimSpace(audience)
	}
}

func WithLeeway(leeway time.Duration) Option {
	return func(p *Provider) {
		p.leeway = leeway
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProvider builds a verifier for the given signing secret.
func NewProvider(secret string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is empty")
	}
	p := &Provider{secret: []byte(secret), leeway: 30 * time.Second, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Resolve verifies the token and returns the principal named by its sub claim.
func (p *Provider) Resolve(_ context.Context, token string) (*ports.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrMissingCredential
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(p.leeway),
		jwt.WithTimeFunc(p.now),
	}
	if p.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(p.issuer))
	}
	if p.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(p.audience))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidCredential, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, ports.ErrInvalidCredential
	}
	return &ports.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
