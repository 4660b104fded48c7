package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/pkg/helpers"
	"github.com/oksasatya/users-api/pkg/response"
	"github.com/oksasatya/users-api/pkg/validation"
)

// UserHandler maps the /users routes onto the user service. It holds no business logic.
type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}
	req.normalize()
	if err := validation.Struct(req); err != nil {
		h.invalid(c, err)
		return
	}

	res, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, res)
}

func (h *UserHandler) FindAll(c *gin.Context) {
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.invalid(c, err)
		return
	}
	if err := validation.Struct(q); err != nil {
		h.invalid(c, err)
		return
	}

	res, err := h.Svc.FindAll(c.Request.Context(), q.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) FindOne(c *gin.Context) {
	res, err := h.Svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}
	req.normalize()
	if err := validation.Struct(req); err != nil {
		h.invalid(c, err)
		return
	}

	res, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search finds users by name or email via the search index.
func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.invalid(c, err)
		return
	}
	q.Q = strings.TrimSpace(q.Q)
	if err := validation.Struct(q); err != nil {
		h.invalid(c, err)
		return
	}

	res, err := h.Svc.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"data": res})
}

func (h *UserHandler) invalid(c *gin.Context, err error) {
	response.Abort(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	if response.StatusOf(err) >= http.StatusInternalServerError {
		helpers.LogError(h.Logger, "user request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
	}
	response.Fail(c, err)
}
