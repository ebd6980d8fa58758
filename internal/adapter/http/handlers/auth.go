package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/mapper"
	"taskflow/internal/adapter/http/middleware"
	"taskflow/internal/adapter/http/validation"
	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
	"taskflow/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	identityService ports.IdentityService
}

func NewAuthHandler(identityService ports.IdentityService) *AuthHandler {
	return &AuthHandler{identityService: identityService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if _, err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidLoginPayload)
		return
	}

	credentials, err := validation.BuildCredentials(req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidLoginPayload)
		return
	}

	token, err := h.identityService.Login(c.Request.Context(), credentials)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, middleware.GetLang(c)).
					WithRequestID(middleware.GetRequestID(c)),
			)
			return
		}
		respondError(c, err, apierrors.MsgInvalidLoginPayload, apierrors.MsgFailLogin)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTokenResponse(token))
}

func (h *AuthHandler) Register(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.RegisterRequest
	if _, err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidUserPayload)
		return
	}

	input, err := validation.BuildRegisterUserInput(req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidUserPayload)
		return
	}

	user, err := h.identityService.RegisterUser(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidUserPayload, apierrors.MsgFailRegisterUser)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToUserItem(user))
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.identityService.Profile(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidUserPayload, apierrors.MsgFailLoadProfile)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProfileResponse(profile))
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidUserPayload)
		return
	}

	input, err := validation.BuildUpdateProfileInput(req, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidUserPayload)
		return
	}

	user, err := h.identityService.UpdateProfile(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidUserPayload, apierrors.MsgFailUpdateProfile)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}
