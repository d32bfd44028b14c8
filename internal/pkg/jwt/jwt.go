package jwt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	perms := make([]string, 0, len(p.Permissions))
	for _, perm := range p.Permissions {
		perms = append(perms, string(perm))
	}

	claims := map[string]interface{}{
		"user_id":     j.returnValueOrNil(p.UserID),
		"email":       p.UserEmail,
		"name":        p.DisplayName,
		"role":        string(p.UserRole),
		"permissions": perms,
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) returnValueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// IsAccessToken reports whether claims belong to an access token.
func IsAccessToken(claims map[string]interface{}) bool {
	tokenType, ok := claims["type"].(string)
	return ok && tokenType == tokenTypeAccess
}

// PrincipalFromClaims builds the actor of a verified token. Missing or
// malformed claims yield zero values rather than an error; legacy tokens
// carry numeric user ids, which are kept in their decimal form.
func PrincipalFromClaims(claims map[string]interface{}) user.Principal {
	p := user.Principal{
		UserID:      claimID(claims["user_id"]),
		UserEmail:   claimString(claims["email"]),
		DisplayName: claimString(claims["name"]),
		UserRole:    user.NormalizeRole(claimString(claims["role"])),
	}

	switch perms := claims["permissions"].(type) {
	case []interface{}:
		for _, v := range perms {
			if s, ok := v.(string); ok && s != "" {
				p.Permissions = append(p.Permissions, user.Permission(s))
			}
		}
	case []string:
		for _, s := range perms {
			if s != "" {
				p.Permissions = append(p.Permissions, user.Permission(s))
			}
		}
	}
	return p
}

func claimString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func claimID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return ""
		}
		return strconv.FormatFloat(id, 'f', 0, 64)
	case int64:
		return strconv.FormatInt(id, 10)
	case int:
		return strconv.Itoa(id)
	case fmt.Stringer:
		return strings.TrimSpace(id.String())
	default:
		return ""
	}
}
