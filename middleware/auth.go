package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mindwell/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Identity is the caller a bearer token belongs to.
type Identity struct {
	UserID string
	Email  string
}

// TokenVerifier turns a bearer token into an Identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// FirebaseVerifier accepts Firebase Auth ID tokens issued to the web client.
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v FirebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	t, err := v.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	email, _ := t.Claims["email"].(string)
	return Identity{UserID: t.UID, Email: email}, nil
}

// JWTVerifier accepts HS256 tokens signed with Secret, for local development.
type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	sub, email, err := utils.ExtractClaims(v.Secret, token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: sub, Email: email}, nil
}

var errNoBearer = errors.New("missing bearer token")

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errNoBearer
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", errNoBearer
	}
	return token, nil
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set("userID", id.UserID)
	c.Set("email", id.Email)
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			c.Set("logger", logger.With(zap.String("userID", id.UserID)))
		}
	}
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// userID and email in the gin context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Code: "unauthorized", Message: "Insufficient authorization"})
			return
		}
		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil || id.UserID == "" {
			zap.L().Debug("Token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Code: "unauthorized", Message: "Invalid token"})
			return
		}
		setIdentity(c, id)
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a valid token is present
// and lets anonymous requests through.
func OptionalAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := bearerToken(c); err == nil {
			if id, err := verifier.Verify(c.Request.Context(), token); err == nil && id.UserID != "" {
				setIdentity(c, id)
			}
		}
		c.Next()
	}
}
