package class

import (
	"errors"
	"net/http"
	"strconv"

	"gymlite/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create class type
// @Tags         classes,admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body class.CreateClassTypeRequest true "Class type payload"
// @Success      201 {object} class.ClassType
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/class-types [post]
func (h *Handler) CreateType(c *gin.Context) {
	var req CreateClassTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ct, err := h.service.CreateType(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateTypeName):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrSessionInvalid):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class type data"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class type"})
		}
		return
	}

	c.JSON(http.StatusCreated, ct)
}

// @Summary      List class types
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} class.ClassType
// @Failure      500 {object} api.ErrorResponse
// @Router       /class-types [get]
func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch class types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

// @Summary      Delete class type
// @Description  Fails while the type still has scheduled sessions.
// @Tags         classes,admin
// @Produce      json
// @Security     BearerAuth
// @Param        typeID path int true "Class type ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/class-types/{typeID} [delete]
func (h *Handler) DeleteType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class type ID"})
		return
	}

	if err := h.service.DeleteType(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class type not found"})
		case errors.Is(err, ErrTypeInUse):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete class type"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class type deleted"})
}

// @Summary      Schedule a class session
// @Tags         classes,admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body class.CreateSessionRequest true "Session payload"
// @Success      201 {object} class.Session
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.ValidateStruct(req); len(details) > 0 {
			api.RespondWithValidationErrors(c, details)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionInvalid):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session data"})
		case errors.Is(err, ErrBadReference), errors.Is(err, ErrTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create session"})
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// @Summary      List class sessions
// @Description  Filter with ?filter=all|upcoming|past|available (default all).
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        filter query string false "Session filter"
// @Success      200 {array} class.SessionDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions(c.Request.Context(), c.Query("filter"))
	if err != nil {
		if errors.Is(err, ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// @Summary      Fetch one class session
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path int true "Class session ID"
// @Success      200 {object} class.Session
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) GetSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	session, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch session"})
		return
	}

	c.JSON(http.StatusOK, session)
}
