package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmbook/internal/core/auth"
	"farmbook/internal/domain"
	resp "farmbook/internal/transport/http/response"
)

type AuthHandler struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthHandler(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt, log: log}
}

// Signup creates a user after validation and a uniqueness check.
// The stored password hash never appears in the response.
func (h *AuthHandler) Signup(c *gin.Context) {
	var in SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error("invalid request body"))
		return
	}
	if fieldErrs := in.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, resp.ValidationError(fieldErrs))
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.log.Error("password hash", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Unable to create user"))
		return
	}

	created, err := h.users.Create(&domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		Gender:       in.Gender,
		Address:      in.Address,
		Role:         in.RoleOrDefault(),
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			c.JSON(http.StatusConflict, resp.Error(err.Error()))
			return
		}
		h.log.Error("create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Unable to create user"))
		return
	}

	h.log.Info("new user created",
		zap.String("id", created.ID),
		zap.String("email", created.Email),
		zap.Stringer("role", created.Role),
	)
	c.JSON(http.StatusCreated, created)
}

type userSummary struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Mobile string      `json:"mobile"`
	Role   domain.Role `json:"role"`
}

func summarize(u *domain.User) userSummary {
	return userSummary{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile, Role: u.Role}
}

// Login verifies credentials and issues a bearer token. A lookup miss and a
// wrong password are indistinguishable in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error("invalid request body"))
		return
	}
	if fieldErrs := in.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, resp.ValidationError(fieldErrs))
		return
	}

	var (
		u   *domain.User
		err error
	)
	if in.IsMobile() {
		u, err = h.users.FindByMobile(in.EmailOrMobile)
	} else {
		u, err = h.users.FindByEmail(in.EmailOrMobile)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, resp.Error("Invalid credentials"))
			return
		}
		h.log.Error("credential lookup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("internal error"))
		return
	}
	if !u.IsActive {
		c.JSON(http.StatusUnauthorized, resp.Error("Invalid credentials"))
		return
	}

	match, err := auth.VerifyPassword(in.Password, u.PasswordHash)
	if err != nil {
		if errors.Is(err, auth.ErrCorruptCredential) {
			h.log.Error("corrupt stored credential", zap.String("id", u.ID))
			c.JSON(http.StatusInternalServerError, resp.Error("corrupt stored credential"))
			return
		}
		h.log.Error("password verify", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("internal error"))
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, resp.Error("Invalid credentials"))
		return
	}

	token, err := h.jwt.Issue(u)
	if err != nil {
		h.log.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.TokenBody{Token: token, User: summarize(u)})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString("userId")
	u, err := h.users.FindByID(uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, resp.Error("user not found"))
			return
		}
		h.log.Error("me lookup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("internal error"))
		return
	}
	c.JSON(http.StatusOK, summarize(u))
}
