package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"registryshop.com/app/internal/http/middleware"
	"registryshop.com/app/internal/http/validation"
	"registryshop.com/app/internal/modules/rsvp"
	"registryshop.com/app/internal/shared/apperr"
)

type RSVPHandler struct {
	Logger *slog.Logger
	Svc    *rsvp.Service
}

func NewRSVPHandler(logger *slog.Logger, svc *rsvp.Service) *RSVPHandler {
	return &RSVPHandler{Logger: logger, Svc: svc}
}

type createRSVPRequest struct {
	Name           string `json:"name"`
	IsAttending    bool   `json:"is_attending"`
	AmountOfGuests int    `json:"amount_of_guests" binding:"min=0"`
	CustomerID     string `json:"customer_id"`
}

type updateRSVPRequest struct {
	Name           *string `json:"name"`
	IsAttending    *bool   `json:"is_attending"`
	AmountOfGuests *int    `json:"amount_of_guests" binding:"omitempty,min=0"`
}

// POST /guests/rsvp
func (h *RSVPHandler) Create(c *gin.Context) {
	var req createRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid RSVP.", validation.FromBindError(err, &req)))
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), rsvp.CreateInput{
		Name:           req.Name,
		IsAttending:    req.IsAttending,
		AmountOfGuests: req.AmountOfGuests,
		CustomerID:     req.CustomerID,
	})
	if err != nil {
		if errors.Is(err, rsvp.ErrNameRequired) {
			middleware.Fail(c, apperr.InvalidErr("Name is required.", map[string]string{"name": "This field is required."}))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": created})
}

// GET /guests/rsvp/:id
func (h *RSVPHandler) Retrieve(c *gin.Context) {
	r, err := h.Svc.Retrieve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("RSVP not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": r})
}

// POST /guests/rsvp/:id
func (h *RSVPHandler) Update(c *gin.Context) {
	var req updateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid RSVP.", validation.FromBindError(err, &req)))
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), rsvp.UpdateInput{
		Name:           req.Name,
		IsAttending:    req.IsAttending,
		AmountOfGuests: req.AmountOfGuests,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("RSVP not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": updated})
}
