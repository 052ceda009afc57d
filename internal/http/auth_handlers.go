package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-api/internal/service"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) register(c *gin.Context) {
	if !h.opts.RegisterEnabled {
		routeNotFound(c)
		return
	}

	req, ok := bindJSON[registerRequest](h, c)
	if !ok {
		return
	}

	_, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			fail(c, http.StatusBadRequest, "User already exists", nil)
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Successfully registered"})
}

func (h *Handler) login(c *gin.Context) {
	req, ok := bindJSON[loginRequest](h, c)
	if !ok {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(c, http.StatusBadRequest, "Email or password is incorrect", nil)
			return
		}
		h.internalError(c, err)
		return
	}

	token, err := h.users.IssueToken(user)
	if err != nil {
		h.internalError(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully logged in", tokenResponse{Token: token})
}
