package member

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

// Register godoc
// @Summary      Register member
// @Description  Creates a new gym member.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateMemberRequest  true  "Member payload"
// @Success      201      {object}  Member
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /members [post]
func (h *Handler) Register(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.ValidateStruct(req); len(details) > 0 {
			api.RespondWithValidationErrors(c, details)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidTaxID), errors.Is(err, ErrInvalidBirthDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicateTaxID):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create member"})
		}
		return
	}

	c.JSON(http.StatusCreated, m)
}

// List godoc
// @Summary      List active members
// @Description  Returns active members ordered by last name, first name.
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Member
// @Failure      500  {object}  api.ErrorResponse
// @Router       /members [get]
func (h *Handler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// Search godoc
// @Summary      Find member by tax ID
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        tax_id  query     string  true  "Tax ID"
// @Success      200     {object}  Member
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /members/search [get]
func (h *Handler) Search(c *gin.Context) {
	taxID := c.Query("tax_id")

	m, err := h.service.SearchByTaxID(c.Request.Context(), taxID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "tax_id query param is required"})
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to search member"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// Get godoc
// @Summary      Get member
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  Member
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /members/{memberID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// Update godoc
// @Summary      Update member
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int                  true  "Member ID"
// @Param        request   body      UpdateMemberRequest  true  "Member payload"
// @Success      200       {object}  Member
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Failure      409       {object}  api.ErrorResponse
// @Router       /members/{memberID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.ValidateStruct(req); len(details) > 0 {
			api.RespondWithValidationErrors(c, details)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidTaxID), errors.Is(err, ErrInvalidBirthDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrDuplicateTaxID):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// Deactivate godoc
// @Summary      Deactivate member
// @Description  Soft-deletes a member; subscriptions and payments remain queryable.
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  api.MessageResponse
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /members/{memberID} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to deactivate member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deactivated"})
}
