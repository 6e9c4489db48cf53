package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/ctxutil"
)

func newAuth(f *fixture) AuthService {
	return NewAuthService(f.db, f.log, f.users, "test-secret", time.Hour)
}

func TestRegisterLoginAndResolveToken(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "  Ann@Example.com ", Password: "pw123", PseudoName: "ann", Teacher: "Adams", Year: 2})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.NotEqual(t, "pw123", u.Password)

	_, err = svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "x"})
	ae, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Email already registered", ae.Error())

	_, err = svc.Login(ctx, "ann@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
	assert.EqualError(t, err, "Invalid credentials")
	_, err = svc.Login(ctx, "nobody@example.com", "pw123")
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))

	tok, err := svc.Login(ctx, "ANN@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.EqualValues(t, 3600, tok.ExpiresIn)

	claims := &JWTClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok.AccessToken, claims)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "ann@example.com", claims.Email)

	authed, err := svc.SetContextFromToken(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, ctxutil.UserID(authed))

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", me.PseudoName)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	f := newFixture(t)
	_, err := newAuth(f).Register(context.Background(), RegisterInput{Email: " "})
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
}

func TestSetContextFromTokenRejects(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f)
	ctx := context.Background()

	sign := func(secret string, sub string, exp time.Time, method jwt.SigningMethod) string {
		tok := jwt.NewWithClaims(method, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		}})
		s, err := tok.SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": sign("other", uuid.NewString(), time.Now().Add(time.Hour), jwt.SigningMethodHS256),
		"expired":      sign("test-secret", uuid.NewString(), time.Now().Add(-time.Hour), jwt.SigningMethodHS256),
		"bad subject":  sign("test-secret", "42", time.Now().Add(time.Hour), jwt.SigningMethodHS256),
		"unknown user": sign("test-secret", uuid.NewString(), time.Now().Add(time.Hour), jwt.SigningMethodHS256),
		"wrong alg":    sign("test-secret", uuid.NewString(), time.Now().Add(time.Hour), jwt.SigningMethodHS512),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SetContextFromToken(ctx, tok)
			assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
		})
	}
}

func TestMeMissingUser(t *testing.T) {
	f := newFixture(t)
	_, err := newAuth(f).Me(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
}
