package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripsync/tripsync/internal/models"
	"github.com/tripsync/tripsync/internal/service"
	"github.com/tripsync/tripsync/internal/storage"
)

// validationSentinels are the expense write-time rejections that map to 400.
var validationSentinels = []error{
	models.ErrEmptyTitle,
	models.ErrAmountNotPositive,
	models.ErrNoPayer,
	models.ErrPayerNotParticipant,
	models.ErrNoSharers,
	models.ErrNegativeCustomAmount,
	models.ErrSplitSumMismatch,
}

// writeError maps service errors onto HTTP statuses: unknown IDs are 404,
// validation rejections are 400, everything else is 500.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, service.ErrNoCurrentTrip) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type tripRequest struct {
	Name        string             `json:"name" binding:"required,notblank"`
	Destination models.Destination `json:"destination"`
	StartDate   time.Time          `json:"startDate" binding:"required"`
	EndDate     time.Time          `json:"endDate" binding:"required"`
}

func (s *Server) listTrips(c *gin.Context) {
	trips, err := s.trips.ListTrips(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func (s *Server) createTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip := &models.Trip{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.trips.CreateTrip(c.Request.Context(), trip); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (s *Server) getTrip(c *gin.Context) {
	trip, err := s.trips.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) updateTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.trips.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	trip.Name = req.Name
	trip.Destination = req.Destination
	trip.StartDate = req.StartDate
	trip.EndDate = req.EndDate
	if err := s.trips.UpdateTrip(c.Request.Context(), trip); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) deleteTrip(c *gin.Context) {
	if err := s.trips.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) selectTrip(c *gin.Context) {
	if err := s.trips.SelectTrip(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) currentTrip(c *gin.Context) {
	trip, err := s.trips.CurrentTrip(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type participantRequest struct {
	Name string `json:"name" binding:"required,notblank"`
	// Email is free text ("whatsapp only", a phone number); no format check.
	Email string `json:"email"`
}

func (s *Server) addParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.trips.AddParticipant(c.Request.Context(), c.Param("id"), models.Participant{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) updateParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.trips.UpdateParticipant(c.Request.Context(), c.Param("id"), models.Participant{
		ID:    c.Param("pid"),
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) removeParticipant(c *gin.Context) {
	trip, err := s.trips.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("pid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type activityRequest struct {
	Title          string    `json:"title" binding:"required,notblank"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date" binding:"required"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	ParticipantIDs []string  `json:"participantIds"`
	Location       string    `json:"location"`
	Emoji          string    `json:"emoji"`
	Notes          string    `json:"notes"`
}

func (r *activityRequest) toModel(id string) models.Activity {
	return models.Activity{
		ID:             id,
		Title:          r.Title,
		Description:    r.Description,
		Date:           r.Date,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		ParticipantIDs: r.ParticipantIDs,
		Location:       r.Location,
		Emoji:          r.Emoji,
		Notes:          r.Notes,
	}
}

func (s *Server) addActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.trips.AddActivity(c.Request.Context(), c.Param("id"), req.toModel(""))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) updateActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.trips.UpdateActivity(c.Request.Context(), c.Param("id"), req.toModel(c.Param("aid")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) deleteActivity(c *gin.Context) {
	trip, err := s.trips.DeleteActivity(c.Request.Context(), c.Param("id"), c.Param("aid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type itemRequest struct {
	Name       string            `json:"name" binding:"required,notblank"`
	Quantity   int               `json:"quantity" binding:"omitempty,gte=1"`
	AssignedTo string            `json:"assignedTo"`
	Status     models.ItemStatus `json:"status" binding:"omitempty,oneof=needed packed purchased"`
}

func (s *Server) addItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	trip, err := s.trips.AddItem(c.Request.Context(), c.Param("id"), models.Item{
		Name:       req.Name,
		Quantity:   req.Quantity,
		AssignedTo: req.AssignedTo,
		Status:     req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) updateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.trips.UpdateItem(c.Request.Context(), c.Param("id"), models.Item{
		ID:         c.Param("iid"),
		Name:       req.Name,
		Quantity:   req.Quantity,
		AssignedTo: req.AssignedTo,
		Status:     req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) deleteItem(c *gin.Context) {
	trip, err := s.trips.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("iid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
