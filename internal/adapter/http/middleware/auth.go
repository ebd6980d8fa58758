package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
	"taskflow/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token into a principal and aborts with 401 otherwise.
func AuthMiddleware(identityService ports.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c, lang)
			return
		}

		principal, err := identityService.CurrentPrincipal(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				zap.L().Error("failed to resolve principal", zap.Error(err))
				c.AbortWithStatusJSON(
					http.StatusInternalServerError,
					apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInternal, lang).WithRequestID(GetRequestID(c)),
				)
				return
			}
			abortUnauthenticated(c, lang)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal stored by AuthMiddleware.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthenticated(c *gin.Context, lang string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, lang).WithRequestID(GetRequestID(c)),
	)
}
