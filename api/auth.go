package api

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"wealthtracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	serviceRole = "service_role"
	callerKey   = "caller"
)

type SupabaseJWT struct {
	Audience  string  `json:"aud"`
	Email     *string `json:"email"`
	ExpiresAt int64   `json:"exp"`
	IssuedAt  int64   `json:"iat"`
	Issuer    string  `json:"iss"`
	Role      string  `json:"role"`
	SessionID string  `json:"session_id"`
	Subject   string  `json:"sub"`
}

type jwksResponse struct {
	Keys []jwkKey `json:"keys"`
}

// Minimal subset of JWK fields needed for ES256 verification.
type jwkKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	X   string `json:"x"`
	Y   string `json:"y"`
	Alg string `json:"alg"`
}

var (
	jwksCacheMu sync.RWMutex
	// cache key: jwksURL + "|" + kid
	jwksKeyCache = map[string]*ecdsa.PublicKey{}

	jwksClient = &http.Client{Timeout: 5 * time.Second}
)

func base64URLDecodeToBigInt(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func getES256PublicKey(jwksURL string, kid string) (*ecdsa.PublicKey, error) {
	cacheKey := jwksURL + "|" + kid
	jwksCacheMu.RLock()
	if k, ok := jwksKeyCache[cacheKey]; ok {
		jwksCacheMu.RUnlock()
		return k, nil
	}
	jwksCacheMu.RUnlock()

	resp, err := jwksClient.Get(jwksURL) // #nosec G107 - JWKS URL built from the configured issuer
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch JWKS: http %d", resp.StatusCode)
	}

	var jwks jwksResponse
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	for _, k := range jwks.Keys {
		if k.Kid != kid {
			continue
		}
		if k.Kty != "EC" || k.Crv != "P-256" {
			return nil, fmt.Errorf("unsupported JWK key type/curve: kty=%s crv=%s", k.Kty, k.Crv)
		}
		x, err := base64URLDecodeToBigInt(k.X)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK x: %w", err)
		}
		y, err := base64URLDecodeToBigInt(k.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK y: %w", err)
		}
		pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}

		jwksCacheMu.Lock()
		jwksKeyCache[cacheKey] = pub
		jwksCacheMu.Unlock()

		return pub, nil
	}

	return nil, fmt.Errorf("kid not found in JWKS: %s", kid)
}

func decodeJWTHeaderAndClaimsUnverified(jwtStr string) (map[string]any, *SupabaseJWT, error) {
	parts := strings.Split(jwtStr, ".")
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("invalid JWT format")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT header: %w", err)
	}
	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWT header: %w", err)
	}

	claimsBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT claims: %w", err)
	}
	var parsedJWT SupabaseJWT
	if err := json.Unmarshal(claimsBytes, &parsedJWT); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}

	return header, &parsedJWT, nil
}

func normalizeIssuer(iss string) string {
	return strings.TrimRight(strings.TrimSpace(iss), "/")
}

// parseSupabaseJWT verifies HS256 tokens with decodeToken. ES256 tokens are
// only verified when trustedIssuer is set, against that issuer's JWKS.
func parseSupabaseJWT(jwtStr string, decodeToken string, trustedIssuer string, now time.Time) (*SupabaseJWT, error) {
	// legacy HS256 with the project's shared secret first
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(decodeToken), nil
	})

	// then ES256 against the issuer's JWKS
	if err != nil {
		header, unverifiedClaims, decodeErr := decodeJWTHeaderAndClaimsUnverified(jwtStr)
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		alg, _ := header["alg"].(string)
		if alg != "ES256" {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		kid, _ := header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("failed to parse token: missing kid")
		}
		if normalizeIssuer(trustedIssuer) == "" {
			return nil, fmt.Errorf("failed to parse token: no trusted issuer configured for ES256")
		}
		if normalizeIssuer(unverifiedClaims.Issuer) != normalizeIssuer(trustedIssuer) {
			return nil, fmt.Errorf("failed to parse token: untrusted issuer %q", unverifiedClaims.Issuer)
		}

		jwksURL := normalizeIssuer(trustedIssuer) + "/.well-known/jwks.json"
		esToken, esErr := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return getES256PublicKey(jwksURL, kid)
		})
		if esErr != nil {
			return nil, fmt.Errorf("failed to parse token: %w", esErr)
		}
		token = esToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claims: %w", err)
	}

	var parsedJWT SupabaseJWT
	if err := json.Unmarshal(claimsJSON, &parsedJWT); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claims: %w", err)
	}

	// jwt-go only checks exp when present
	if parsedJWT.ExpiresAt == 0 || now.UTC().Unix() > parsedJWT.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}

	return &parsedJWT, nil
}

func callerFromClaims(claims *SupabaseJWT) (domain.Caller, error) {
	if claims.Role == serviceRole {
		caller := domain.ElevatedCaller()
		if id, err := uuid.Parse(claims.Subject); err == nil {
			caller.UserID = id
		}
		return caller, nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return domain.Caller{}, fmt.Errorf("token has no valid subject")
	}
	return domain.Caller{UserID: userID}, nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func (m ApiHandler) authMiddleware(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		returnErrorJson(fmt.Errorf("%w: missing bearer token", errUnauthorized), c)
		return
	}

	claims, err := parseSupabaseJWT(token, m.JwtDecodeToken, m.JwtIssuer, time.Now())
	if err != nil {
		returnErrorJson(fmt.Errorf("%w: %s", errUnauthorized, err.Error()), c)
		return
	}

	caller, err := callerFromClaims(claims)
	if err != nil {
		returnErrorJson(fmt.Errorf("%w: %s", errUnauthorized, err.Error()), c)
		return
	}

	c.Set(callerKey, caller)
	c.Next()
}

func callerFromContext(c *gin.Context) (domain.Caller, error) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.Caller{}, fmt.Errorf("%w: must be logged in", errUnauthorized)
	}
	caller, ok := v.(domain.Caller)
	if !ok {
		return domain.Caller{}, fmt.Errorf("misformatted caller")
	}
	return caller, nil
}

// targetUser resolves whose portfolio a read request is about. Elevated
// callers may pass ?userID=.
func targetUser(c *gin.Context, caller domain.Caller) (uuid.UUID, error) {
	if caller.Elevated {
		if q := c.Query("userID"); q != "" {
			id, err := uuid.Parse(q)
			if err != nil {
				return uuid.Nil, domain.NewValidationError("userID", "must be a uuid")
			}
			return id, nil
		}
	}
	if caller.UserID == uuid.Nil {
		return uuid.Nil, domain.NewValidationError("userID", "is required")
	}
	return caller.UserID, nil
}
