package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmbook/internal/domain"
	resp "farmbook/internal/transport/http/response"
)

// AdminHandler backs the user-administration surface. Password hashes stay
// out of every payload via the model's json tag.
type AdminHandler struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewAdminHandler(users domain.UserRepository, log *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: log}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.users.List(offset, limit)
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to fetch users"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": users})
}

// Deactivate clears the active flag; the user's next login fails with the
// generic invalid-credentials response.
func (h *AdminHandler) Deactivate(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.Deactivate(id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, resp.Error("user not found"))
			return
		}
		h.log.Error("deactivate user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error("Failed to deactivate user"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
