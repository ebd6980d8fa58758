package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/adapter/http/middleware"
	"taskflow/internal/core/domain"
	"taskflow/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	status int
	msgKey string
}

var domainErrors = []errorMapping{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, apierrors.MsgUnauthenticated},
	{domain.ErrForbidden, http.StatusForbidden, apierrors.MsgForbidden},
	{domain.ErrTaskNotFoundOrUnauthorized, http.StatusNotFound, apierrors.MsgTaskNotFoundOrNotYour},
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, apierrors.MsgUserNotFound},
	{domain.ErrManagerNotFound, http.StatusNotFound, apierrors.MsgManagerNotFound},
	{domain.ErrInvalidAssignment, http.StatusBadRequest, apierrors.MsgInvalidAssignment},
	{domain.ErrConflictingAssignment, http.StatusConflict, apierrors.MsgConflictingAssignment},
	{domain.ErrUserAlreadyExists, http.StatusConflict, apierrors.MsgUserAlreadyExists},
}

// respondError maps a service error to its status and message. ErrValidation
// uses validationKey so each endpoint keeps its own payload message; anything
// unmapped is logged and answered with failKey.
func respondError(c *gin.Context, err error, validationKey, failKey string) {
	lang := middleware.GetLang(c)
	requestID := middleware.GetRequestID(c)

	if errors.Is(err, domain.ErrValidation) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, validationKey, lang).WithRequestID(requestID),
		)
		return
	}

	for _, mapping := range domainErrors {
		if errors.Is(err, mapping.target) {
			c.JSON(
				mapping.status,
				apierrors.CreateError(mapping.status, mapping.msgKey, lang).WithRequestID(requestID),
			)
			return
		}
	}

	zap.L().Error(failKey,
		zap.String("request_id", requestID),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failKey, lang).WithRequestID(requestID),
	)
}

func respondBadRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)).WithRequestID(middleware.GetRequestID(c)),
	)
}

// currentPrincipal aborts with 401 when the route was mounted without AuthMiddleware.
func currentPrincipal(c *gin.Context) (domain.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, middleware.GetLang(c)).WithRequestID(middleware.GetRequestID(c)),
		)
		return domain.Principal{}, false
	}
	return principal, true
}
