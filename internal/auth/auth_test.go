package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-dev/moneta/internal/auth"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, subject string, secret []byte, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	return signed
}

func protectedHandler(gotOwner *uuid.UUID) http.Handler {
	mw := auth.Middleware(testSecret)

	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotOwner = auth.OwnerID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestMiddleware_ValidToken(t *testing.T) {
	ownerID := uuid.New()
	token := signedToken(t, ownerID.String(), testSecret, time.Now().Add(time.Hour))

	var gotOwner uuid.UUID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedHandler(&gotOwner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ownerID, gotOwner)
}

func TestMiddleware_Rejections(t *testing.T) {
	testCases := map[string]struct {
		header string
	}{
		"MissingHeader": {
			header: "",
		},
		"NotBearer": {
			header: "Basic abc",
		},
		"Garbage": {
			header: "Bearer not.a.token",
		},
		"WrongSecret": {
			header: "Bearer " + signedTokenRaw(uuid.New().String(), []byte("other-secret"), time.Now().Add(time.Hour)),
		},
		"Expired": {
			header: "Bearer " + signedTokenRaw(uuid.New().String(), testSecret, time.Now().Add(-time.Hour)),
		},
		"SubjectNotUUID": {
			header: "Bearer " + signedTokenRaw("not-a-uuid", testSecret, time.Now().Add(time.Hour)),
		},
	}

	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			var gotOwner uuid.UUID

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protectedHandler(&gotOwner).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, uuid.Nil, gotOwner)
		})
	}
}

func signedTokenRaw(subject string, secret []byte, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, _ := token.SignedString(secret)

	return signed
}

func TestOwnerID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, uuid.Nil, auth.OwnerID(req.Context()))
}
