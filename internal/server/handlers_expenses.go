package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripsync/tripsync/internal/ledger"
	"github.com/tripsync/tripsync/internal/models"
)

type expenseRequest struct {
	Title              string                 `json:"title"`
	Amount             float64                `json:"amount"`
	Date               time.Time              `json:"date"`
	PaidBy             string                 `json:"paidBy"`
	SplitAmong         []string               `json:"splitAmong"`
	CustomSplitAmounts map[string]float64     `json:"customSplitAmounts"`
	Category           models.ExpenseCategory `json:"category" binding:"omitempty,oneof=accommodation transportation food activities other"`
	Notes              string                 `json:"notes"`
	Receipt            []byte                 `json:"receipt"`
}

// toModel builds the expense; the descriptive write-time validation happens
// in the service against the current trip participants.
func (r *expenseRequest) toModel(id string) *models.Expense {
	date := r.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &models.Expense{
		ID:                 id,
		Title:              r.Title,
		Amount:             r.Amount,
		Date:               date,
		PaidBy:             r.PaidBy,
		SplitAmong:         r.SplitAmong,
		CustomSplitAmounts: r.CustomSplitAmounts,
		Category:           r.Category,
		Notes:              r.Notes,
		Receipt:            r.Receipt,
	}
}

func (s *Server) addExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.expenses.AddExpense(c.Request.Context(), c.Param("id"), req.toModel(""))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) updateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := s.expenses.UpdateExpense(c.Request.Context(), c.Param("id"), req.toModel(c.Param("eid")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) deleteExpense(c *gin.Context) {
	trip, err := s.expenses.DeleteExpense(c.Request.Context(), c.Param("id"), c.Param("eid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) balances(c *gin.Context) {
	balances, err := s.expenses.Balances(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

func (s *Server) settlements(c *gin.Context) {
	plan, err := s.expenses.Settlements(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      plan.Status,
		"balances":    plan.Balances,
		"suggestions": plan.Suggestions,
		"summary":     summarize(plan),
	})
}

// summarize renders the plan as human-readable lines, one per payment.
func summarize(plan ledger.Plan) []string {
	switch plan.Status {
	case ledger.StatusNoExpenses:
		return []string{"No expenses to settle."}
	case ledger.StatusSettled:
		return []string{"All expenses are balanced."}
	}
	if len(plan.Suggestions) == 0 {
		return []string{"No clear one-to-one settlements. Review balances."}
	}
	lines := make([]string, len(plan.Suggestions))
	for i, sg := range plan.Suggestions {
		lines[i] = fmt.Sprintf("%s pays %s: %.2f", sg.FromName, sg.ToName, sg.Amount)
	}
	return lines
}
