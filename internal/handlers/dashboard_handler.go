package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/period"
	"catatuang/internal/services"
)

// DashboardHandler serves the read-only aggregate views backing the
// companion dashboard: balances, period summaries, category breakdowns,
// and the weekly cashflow chart.
type DashboardHandler struct {
	accountService services.AccountServicer
	summaryService services.SummaryServicer
	clock          *period.Clock
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(accountService services.AccountServicer, summaryService services.SummaryServicer, clock *period.Clock) *DashboardHandler {
	return &DashboardHandler{
		accountService: accountService,
		summaryService: summaryService,
		clock:          clock,
	}
}

// periodQuery holds the month and date-field selectors shared by the
// summary endpoints. An empty month means the current civil month.
type periodQuery struct {
	Month     string `form:"month" binding:"omitempty,month"`
	DateField string `form:"date_field" binding:"omitempty,date_field"`
}

func (q *periodQuery) resolve(clock *period.Clock) (year, month int, field services.DateField, err error) {
	if q.Month == "" {
		local := clock.Now().In(clock.Location())
		year, month = local.Year(), int(local.Month())
	} else {
		year, month, err = period.ParseMonth(q.Month)
		if err != nil {
			return 0, 0, "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
	}

	field = services.DateFieldEffective
	if q.DateField == string(services.DateFieldCreated) {
		field = services.DateFieldCreated
	}
	return year, month, field, nil
}

// GetBalance returns the per-account balances and their total.
func (h *DashboardHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.accountService.TotalBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSummary returns income/expense totals for one month.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query periodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	year, month, field, err := query.resolve(h.clock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.MonthSummary(userID, year, month, field)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"month":   month,
		"summary": summary,
	})
}

// GetCategoryBreakdown returns the month's expense totals per category,
// largest first.
func (h *DashboardHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query periodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	year, month, _, err := query.resolve(h.clock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.summaryService.CategoryBreakdown(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":      year,
		"month":     month,
		"breakdown": breakdown,
	})
}

// cashflowQuery selects the week to chart: either an explicit date, or a
// 1-based week of a month. Out-of-range week indexes are clamped.
type cashflowQuery struct {
	Date  string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Month string `form:"month" binding:"omitempty,month"`
	Week  int    `form:"week" binding:"omitempty,min=0"`
}

// GetWeekCashflow returns the Monday-to-Sunday daily series for the week
// containing the given date, or for week N of a month (default: the week
// containing today).
func (h *DashboardHandler) GetWeekCashflow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query cashflowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reference := h.clock.Now()
	switch {
	case query.Date != "":
		parsed, err := time.ParseInLocation("2006-01-02", query.Date, h.clock.Location())
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date, want YYYY-MM-DD"))
			return
		}
		reference = parsed
	case query.Month != "":
		year, month, err := period.ParseMonth(query.Month)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		reference = h.clock.WeekStartForIndex(year, month, query.Week)
	}

	cashflow, err := h.summaryService.WeekCashflow(userID, reference)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cashflow)
}
