package handler

import (
	"errors"
	"log/slog"
	"net/http"

	. "doneapp/internal/adapter/http/helper"
	"doneapp/internal/adapter/http/middleware"
	. "doneapp/internal/adapter/http/validation"
	"doneapp/internal/core/model/request"
	"doneapp/internal/core/model/response"
	"doneapp/internal/core/port"
	"doneapp/internal/core/service"
	"doneapp/internal/core/util"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) RegisterByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	sess, err := a.svc.SignUp(ctx, params.Email, params.Password)

	if err != nil {
		slog.Error("RegisterByEmailAndPassword", "error", err)

		if errors.Is(err, service.ErrLocalStore) {
			SendInternalError(c, "Could not prepare local data")
			return
		}

		SendBadRequestError(c, "registration", err.Error())
		return
	}

	authResponse := response.AuthResponse{
		Token: sess.Token,
		User: response.UserResponse{
			UUID:  sess.UID,
			Email: sess.Email,
		},
	}

	SendSuccess(c, http.StatusCreated, authResponse)
}

func (a *AuthHandler) AuthByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	sess, err := a.svc.SignIn(ctx, params.Email, params.Password)

	if err != nil {
		slog.Error("AuthByEmailAndPassword", "error", err)

		if errors.Is(err, service.ErrLocalStore) {
			SendInternalError(c, "Could not load your data")
			return
		}

		SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	authResponse := response.AuthResponse{
		Token: sess.Token,
		User: response.UserResponse{
			UUID:  sess.UID,
			Email: sess.Email,
		},
	}

	c.JSON(http.StatusOK, authResponse)
}

// SignOut ends the session the request authenticated as: that user's local
// data is wiped before the provider ends the session. Other sessions held by
// the process are untouched.
func (a *AuthHandler) SignOut(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	if err := a.svc.SignOut(ctx, sess); err != nil {
		slog.Error("SignOut", "error", err)

		if errors.Is(err, service.ErrLocalStore) {
			SendInternalError(c, "Could not clear local data")
			return
		}

		SendBadRequestError(c, "signout", err.Error())
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Signed out")
}
