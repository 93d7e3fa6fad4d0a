// Package server exposes the trip ledger over a JSON REST API.
package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tripsync/tripsync/internal/service"
)

// Server wires the HTTP routes to the trip and expense services.
type Server struct {
	trips    *service.TripService
	expenses *service.ExpenseService
}

// New creates a Server backed by the given services.
func New(trips *service.TripService, expenses *service.ExpenseService) *Server {
	return &Server{trips: trips, expenses: expenses}
}

// Router builds the gin engine with middleware, custom validations and all
// API routes registered.
func (s *Server) Router() *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "notblank" rejects strings that are empty after trimming, which
		// "required" alone does not.
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), corsHeaders(), httpMetrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler())

	api := r.Group("/api")
	{
		api.GET("/trips", s.listTrips)
		api.POST("/trips", s.createTrip)
		api.GET("/trips/current", s.currentTrip)
		api.GET("/trips/:id", s.getTrip)
		api.PUT("/trips/:id", s.updateTrip)
		api.DELETE("/trips/:id", s.deleteTrip)
		api.POST("/trips/:id/select", s.selectTrip)

		api.POST("/trips/:id/participants", s.addParticipant)
		api.PUT("/trips/:id/participants/:pid", s.updateParticipant)
		api.DELETE("/trips/:id/participants/:pid", s.removeParticipant)

		api.POST("/trips/:id/activities", s.addActivity)
		api.PUT("/trips/:id/activities/:aid", s.updateActivity)
		api.DELETE("/trips/:id/activities/:aid", s.deleteActivity)

		api.POST("/trips/:id/items", s.addItem)
		api.PUT("/trips/:id/items/:iid", s.updateItem)
		api.DELETE("/trips/:id/items/:iid", s.deleteItem)

		api.POST("/trips/:id/expenses", s.addExpense)
		api.PUT("/trips/:id/expenses/:eid", s.updateExpense)
		api.DELETE("/trips/:id/expenses/:eid", s.deleteExpense)

		api.GET("/trips/:id/balances", s.balances)
		api.GET("/trips/:id/settlements", s.settlements)
	}

	return r
}
