package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/config"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAPIKeyNotConfigured = apperr.Misconfigured("API key not configured on server")
	ErrAPIKeyMissing       = apperr.Unauthorized("API key missing. Please provide X-API-Key header")
	ErrAPIKeyInvalid       = apperr.Unauthorized("Invalid API key")
	ErrAdminNotConfigured  = apperr.Misconfigured("Admin login not configured on server")
	ErrInvalidCredentials  = apperr.Unauthorized("Incorrect username or password")
	ErrInvalidToken        = apperr.Unauthorized("Could not validate credentials")
	ErrAuthRequired        = apperr.Unauthorized("Authentication required. Provide either X-API-Key header or Authorization: Bearer token")
)

// Scheme names one way a request can authenticate.
type Scheme string

const (
	SchemeAPIKey Scheme = "api_key"
	SchemeBearer Scheme = "bearer"
)

// SchemeResult is the outcome of evaluating one scheme. A scheme whose
// credential was absent is reported with Attempted=false.
type SchemeResult struct {
	Scheme    Scheme
	Attempted bool
	Subject   string
	Err       error
}

func (r SchemeResult) OK() bool {
	return r.Attempted && r.Err == nil
}

// AuthConfig is the credential material the service is built from. It is
// copied at construction and never changed afterwards.
type AuthConfig struct {
	APIKey            string
	JWTSecret         string
	JWTAlgorithm      string
	TokenLifetime     time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

// AuthConfigFrom builds an AuthConfig, hashing ADMIN_PASSWORD when no
// precomputed hash is configured.
func AuthConfigFrom(cfg *config.Config) (AuthConfig, error) {
	ac := AuthConfig{
		APIKey:            cfg.APIKey,
		JWTSecret:         cfg.JWTSecret,
		JWTAlgorithm:      cfg.JWTAlgorithm,
		TokenLifetime:     cfg.JWTAccessExpiry,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
	}
	if ac.AdminPasswordHash == "" && cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return AuthConfig{}, fmt.Errorf("failed to hash admin password: %w", err)
		}
		ac.AdminPasswordHash = string(hash)
	}
	return ac, nil
}

type AuthService struct {
	cfg    AuthConfig
	method jwt.SigningMethod
	now    func() time.Time
}

func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	method, ok := jwt.GetSigningMethod(cfg.JWTAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.JWTAlgorithm)
	}
	if cfg.TokenLifetime <= 0 {
		cfg.TokenLifetime = 30 * time.Minute
	}
	return &AuthService{cfg: cfg, method: method, now: time.Now}, nil
}

// WithClock replaces the time source used to issue and verify tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) TokenLifetime() time.Duration { return s.cfg.TokenLifetime }
func (s *AuthService) Algorithm() string            { return s.method.Alg() }
func (s *AuthService) Secret() []byte               { return []byte(s.cfg.JWTSecret) }

// CheckAPIKey validates a value from the X-API-Key header.
func (s *AuthService) CheckAPIKey(key string) error {
	if s.cfg.APIKey == "" {
		return ErrAPIKeyNotConfigured
	}
	if key == "" {
		return ErrAPIKeyMissing
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
		return ErrAPIKeyInvalid
	}
	return nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.cfg.AdminPasswordHash == "" {
		return nil, ErrAdminNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) == 1
	// The hash is checked even for a wrong username so both failures cost the same.
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.IssueToken(req.Username)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.cfg.TokenLifetime.Seconds()),
	}, nil
}

// IssueToken signs a token for subject that expires after the configured
// lifetime.
func (s *AuthService) IssueToken(subject string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenLifetime)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken checks signature, algorithm and expiry and returns the claims.
func (s *AuthService) VerifyToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(s.cfg.JWTSecret), nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Evaluate runs every scheme in order: API key first, then bearer token.
func (s *AuthService) Evaluate(apiKey, authorization string) []SchemeResult {
	results := make([]SchemeResult, 0, 2)

	keyResult := SchemeResult{Scheme: SchemeAPIKey, Attempted: apiKey != ""}
	if keyResult.Attempted {
		if err := s.CheckAPIKey(apiKey); err != nil {
			keyResult.Err = err
		} else {
			keyResult.Subject = "api-key"
		}
	}
	results = append(results, keyResult)

	token, hasBearer := BearerToken(authorization)
	bearerResult := SchemeResult{Scheme: SchemeBearer, Attempted: hasBearer}
	if hasBearer {
		if claims, err := s.VerifyToken(token); err != nil {
			bearerResult.Err = err
		} else {
			bearerResult.Subject = claims.Subject
		}
	}
	results = append(results, bearerResult)

	return results
}

// Authorize accepts the first successful scheme. Scheme errors are logged
// and replaced by one generic rejection.
func Authorize(results []SchemeResult) (SchemeResult, error) {
	for _, r := range results {
		if r.OK() {
			return r, nil
		}
	}
	for _, r := range results {
		if r.Attempted {
			slog.Debug("authentication scheme rejected", "scheme", r.Scheme, "error", r.Err)
		}
	}
	return SchemeResult{}, ErrAuthRequired
}

// Authenticate is Evaluate followed by Authorize.
func (s *AuthService) Authenticate(apiKey, authorization string) (SchemeResult, error) {
	return Authorize(s.Evaluate(apiKey, authorization))
}

// BearerToken extracts the token from an "Authorization: Bearer" value.
func BearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// APIKeyInfo reports whether a key is configured without revealing it.
func (s *AuthService) APIKeyInfo() dto.APIKeyInfoResponse {
	return APIKeyInfo(s.cfg.APIKey)
}

func APIKeyInfo(key string) dto.APIKeyInfoResponse {
	if key == "" {
		return dto.APIKeyInfoResponse{
			APIKey:  "NOT_CONFIGURED",
			Message: "API key is not configured. Set API_KEY environment variable.",
		}
	}
	masked := "***"
	if len(key) > 6 {
		masked = key[:3] + "..." + key[len(key)-3:]
	}
	return dto.APIKeyInfoResponse{
		APIKey:  masked,
		Message: "API key is configured. Use X-API-Key header with requests.",
	}
}
