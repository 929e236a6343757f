package middleware

import (
	"context"
	"errors"
	"strings"

	"travelagency/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	userIDKey  = "user_id"
	isAdminKey = "is_admin"
)

var ErrBadToken = errors.New("invalid token")

var errAdminRequired = domain.ForbiddenError{Msg: "akses admin diperlukan"}

// Claims are issued by the external auth provider. Subject holds the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AdminChecker reads the is_admin flag of a user record.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type Auth struct {
	Secret string
	Admins AdminChecker
}

// ParseToken verifies an HS256 token and returns its claims. The subject must
// be a UUID.
func ParseToken(raw, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrBadToken
	}
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	if _, err := uuid.Parse(c.Subject); err != nil {
		return nil, ErrBadToken
	}
	return c, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(header[7:])
	return tok, tok != ""
}

// RequireAuthorization rejects requests without an Authorization header. The
// credential itself is left to the service the request is forwarded to.
func RequireAuthorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			AbortDomainError(c, domain.UnauthorizedError{Msg: "header Authorization wajib diisi"})
			return
		}
		c.Next()
	}
}

// Optional attaches the caller when a valid token is present and never rejects.
func (a Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		claims, err := ParseToken(raw, a.Secret)
		if err != nil {
			c.Next()
			return
		}
		c.Set(userIDKey, claims.Subject)
		if a.Admins != nil {
			admin, err := a.Admins.IsAdmin(c.Request.Context(), claims.Subject)
			if err != nil {
				log.WithError(err).WithField("request_id", GetRequestID(c)).Warn("admin lookup failed")
			}
			c.Set(isAdminKey, admin)
		}
		c.Next()
	}
}

// Required rejects requests without a valid token.
func (a Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.authenticate(c) {
			c.Next()
		}
	}
}

// RequireAdmin admits only callers whose user record has is_admin set.
func (a Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}
		if a.Admins == nil {
			AbortDomainError(c, errAdminRequired)
			return
		}
		admin, err := a.Admins.IsAdmin(c.Request.Context(), UserID(c))
		if err != nil {
			AbortDomainError(c, domain.InternalError{Msg: "admin lookup failed", Err: err})
			return
		}
		if !admin {
			AbortDomainError(c, errAdminRequired)
			return
		}
		c.Set(isAdminKey, true)
		c.Next()
	}
}

func (a Auth) authenticate(c *gin.Context) bool {
	raw, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		AbortDomainError(c, domain.UnauthorizedError{Msg: "token tidak ditemukan"})
		return false
	}
	claims, err := ParseToken(raw, a.Secret)
	if err != nil {
		AbortDomainError(c, domain.UnauthorizedError{Msg: "token tidak valid", Err: err})
		return false
	}
	c.Set(userIDKey, claims.Subject)
	return true
}

// UserID returns the authenticated user id or "".
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// IsAdmin reports whether the caller was verified as admin.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}

// Caller returns the authenticated caller attached by Auth.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{UserID: UserID(c), IsAdmin: IsAdmin(c)}
}
