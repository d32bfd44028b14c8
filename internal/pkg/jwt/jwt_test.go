package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(user.Principal{
		UserID:      "u-1",
		UserEmail:   "ana@example.com",
		DisplayName: "Ana",
		UserRole:    user.RoleStaff,
		Permissions: []user.Permission{user.PermissionAttendanceManage},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.True(t, IsAccessToken(claims))
	p := PrincipalFromClaims(claims)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "ana@example.com", p.Email())
	assert.Equal(t, "Ana", p.Name())
	assert.Equal(t, user.RoleStaff, p.Role())
	assert.True(t, p.Granted(user.PermissionAttendanceManage))
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	_, _, err := NewJWTService("secret", "soon").GenerateAccessToken(user.Principal{UserID: "u-1"})
	assert.Error(t, err)
}

func TestPrincipalFromClaims_Defaults(t *testing.T) {
	p := PrincipalFromClaims(map[string]interface{}{
		"user_id":     float64(42),
		"role":        " Manager ",
		"permissions": []interface{}{"leave.manage", 7, ""},
	})
	id, ok := p.ID()
	assert.True(t, ok)
	assert.Equal(t, "42", id)
	assert.Equal(t, user.RoleManager, p.Role())
	assert.Equal(t, []user.Permission{user.PermissionLeaveManage}, p.Permissions)

	empty := PrincipalFromClaims(map[string]interface{}{"user_id": 1.5, "email": 3})
	_, ok = empty.ID()
	assert.False(t, ok)
	assert.Empty(t, empty.Email())
}

func TestIsAccessToken(t *testing.T) {
	assert.True(t, IsAccessToken(map[string]interface{}{"type": "access"}))
	assert.False(t, IsAccessToken(map[string]interface{}{"type": "refresh"}))
	assert.False(t, IsAccessToken(map[string]interface{}{}))
}
