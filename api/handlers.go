/*
handlers.go - HTTP API handlers for the working-time engine

PURPOSE:
  Exposes the calculation engine via REST. Handlers parse and validate
  input, load records from the store, hand plain values to the engine
  and serialize the result. No calculation happens here.

ENDPOINTS:
  Shifts:
    GET    /api/shifts                 List (user + month or from/to)
    POST   /api/shifts                 Record a shift
    GET    /api/shifts/{id}            Get one shift
    DELETE /api/shifts/{id}            Delete a shift

  Non-accounting days:
    GET    /api/leaves                 List (user + from/to)
    POST   /api/leaves                 Record a leave (single day or range)
    GET    /api/leaves/{id}            Get one leave
    DELETE /api/leaves/{id}            Delete a leave

  Stats (recomputed on every query):
    GET    /api/stats/month            ?user=&ref=YYYY-MM
    GET    /api/stats/quarter          ?user=&year=&q=
    GET    /api/stats/period           ?user=&start=&end=

  Holidays:
    GET    /api/holidays               ?year=

ERROR HANDLING:
  400: validation errors, malformed timestamps, inverted ranges
  404: unknown record ids
  500: store failures
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ponto/worktime-engine/calendar"
	"github.com/ponto/worktime-engine/store"
	"github.com/ponto/worktime-engine/worktime"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    store.Store
	Calc     *worktime.Calculator
	Calendar *calendar.Calendar

	// IncludeHolidays merges expanded public holidays into the leave list
	// of every stats query.
	IncludeHolidays bool

	Logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a handler with the given dependencies. Calendar may be
// nil when no holiday rules are configured.
func NewHandler(st store.Store, calc *worktime.Calculator, cal *calendar.Calendar, includeHolidays bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:           st,
		Calc:            calc,
		Calendar:        cal,
		IncludeHolidays: includeHolidays,
		Logger:          logger,
		validate:        validator.New(),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// CreateShift records a new shift.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	start, err := parseDateTime(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time", err)
		return
	}
	end, err := parseDateTime(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_time", err)
		return
	}

	shift := worktime.Shift{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
	}
	if err := shift.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	if err := h.Store.SaveShift(r.Context(), shift); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}

	h.Logger.Info("shift recorded",
		zap.String("shift_id", shift.ID),
		zap.String("user_id", shift.UserID))
	writeJSON(w, http.StatusCreated, toShiftDTO(shift, h.Calc.Duration(shift.StartTime, shift.EndTime)))
}

// GetShift returns a single shift with its computed duration.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	shift, err := h.Store.GetShift(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftDTO(*shift, h.Calc.Duration(shift.StartTime, shift.EndTime)))
}

// DeleteShift removes a shift entirely. Shifts are never edited in place.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteShift(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// ListShifts returns shifts for a user in a month (?month=YYYY-MM) or an
// explicit range (?from=&to=).
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing user parameter", nil)
		return
	}

	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	shifts, err := h.Store.ListShifts(r.Context(), userID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s, h.Calc.Duration(s.StartTime, s.EndTime))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// NON-ACCOUNTING DAY HANDLERS
// =============================================================================

// CreateLeave records a non-accounting day or range. The single-date form
// is normalized to a one-day range before validation.
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	leave, err := leaveFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave", err)
		return
	}
	leave.ID = uuid.NewString()

	if err := leave.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave", err)
		return
	}

	if err := h.Store.SaveNonAccountingDay(r.Context(), leave); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave", err)
		return
	}

	h.Logger.Info("leave recorded",
		zap.String("leave_id", leave.ID),
		zap.String("user_id", leave.UserID),
		zap.String("type", string(leave.Type)))
	writeJSON(w, http.StatusCreated, toLeaveDTO(leave))
}

// leaveFromRequest normalizes the two accepted payload shapes into the
// range-based record.
func leaveFromRequest(req CreateLeaveRequest) (worktime.NonAccountingDay, error) {
	typ := worktime.LeaveType(req.Type)

	if req.Date != "" {
		if req.StartDate != "" || req.EndDate != "" {
			return worktime.NonAccountingDay{}, fmt.Errorf("use either date or start_date/end_date, not both")
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return worktime.NonAccountingDay{}, fmt.Errorf("invalid date: %w", err)
		}
		return worktime.SingleDay(req.UserID, typ, req.Reason, date), nil
	}

	if req.StartDate == "" || req.EndDate == "" {
		return worktime.NonAccountingDay{}, fmt.Errorf("either date or both start_date and end_date are required")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return worktime.NonAccountingDay{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return worktime.NonAccountingDay{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return worktime.NonAccountingDay{
		UserID:    req.UserID,
		Type:      typ,
		Reason:    req.Reason,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// GetLeave returns a single non-accounting day record.
func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	leave, err := h.Store.GetNonAccountingDay(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Leave not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get leave", err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveDTO(*leave))
}

// DeleteLeave removes a non-accounting day record.
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteNonAccountingDay(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Leave not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete leave", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// ListLeaves returns leaves overlapping the queried period.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing user parameter", nil)
		return
	}

	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	leaves, err := h.Store.ListNonAccountingDays(r.Context(), userID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}

	dtos := make([]LeaveDTO, len(leaves))
	for i, d := range leaves {
		dtos[i] = toLeaveDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// STATS HANDLERS
// =============================================================================

// MonthStats computes one month's expected/worked/balance figures.
// GET /api/stats/month?user=&ref=YYYY-MM
func (h *Handler) MonthStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing user parameter", nil)
		return
	}
	ref, err := parseMonth(r.URL.Query().Get("ref"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ref month", err)
		return
	}

	month := worktime.MonthOf(ref)
	shifts, leaves, err := h.loadRecords(r, userID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	writeJSON(w, http.StatusOK, toMonthlyStatsDTO(h.Calc.MonthlyStats(ref, shifts, leaves)))
}

// QuarterStats computes a quarter's totals.
// GET /api/stats/quarter?user=&year=&q=
func (h *Handler) QuarterStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing user parameter", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	quarter, err := strconv.Atoi(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quarter", err)
		return
	}

	period, err := worktime.QuarterPeriod(year, quarter)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quarter", err)
		return
	}

	h.servePeriodStats(w, r, userID, period)
}

// PeriodStats computes totals over an arbitrary date range.
// GET /api/stats/period?user=&start=&end=
func (h *Handler) PeriodStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing user parameter", nil)
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}

	period, err := worktime.NewPeriod(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	h.servePeriodStats(w, r, userID, period)
}

func (h *Handler) servePeriodStats(w http.ResponseWriter, r *http.Request, userID string, period worktime.Period) {
	shifts, leaves, err := h.loadRecords(r, userID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	stats, err := h.Calc.PeriodStats(period, shifts, leaves)
	if err != nil {
		status := http.StatusInternalServerError
		if worktime.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to compute stats", err)
		return
	}

	writeJSON(w, http.StatusOK, toPeriodStatsDTO(stats))
}

// loadRecords fetches a user's shifts and leaves for the period, merging
// expanded public holidays when configured.
func (h *Handler) loadRecords(r *http.Request, userID string, p worktime.Period) ([]worktime.Shift, []worktime.NonAccountingDay, error) {
	ctx := r.Context()

	shifts, err := h.Store.ListShifts(ctx, userID, p)
	if err != nil {
		return nil, nil, err
	}
	leaves, err := h.Store.ListNonAccountingDays(ctx, userID, p)
	if err != nil {
		return nil, nil, err
	}
	if h.IncludeHolidays && h.Calendar != nil {
		leaves = append(leaves, h.Calendar.NonAccountingDays(userID, p)...)
	}
	return shifts, leaves, nil
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays expands the configured holiday rules for a year.
// GET /api/holidays?year=
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	dtos := []HolidayDTO{}
	if h.Calendar != nil {
		p := worktime.Period{Start: worktime.Date(year, 1, 1), End: worktime.Date(year, 12, 31)}
		for _, holiday := range h.Calendar.HolidaysBetween(p) {
			dtos = append(dtos, HolidayDTO{Date: holiday.Date.Format(dateLayout), Name: holiday.Name})
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// periodFromQuery builds a period from ?month=YYYY-MM or ?from=&to=.
func periodFromQuery(r *http.Request) (worktime.Period, error) {
	q := r.URL.Query()
	if month := q.Get("month"); month != "" {
		ref, err := parseMonth(month)
		if err != nil {
			return worktime.Period{}, err
		}
		return worktime.MonthOf(ref), nil
	}

	from, err := parseDate(q.Get("from"))
	if err != nil {
		return worktime.Period{}, fmt.Errorf("invalid from: %w", err)
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		return worktime.Period{}, fmt.Errorf("invalid to: %w", err)
	}
	return worktime.NewPeriod(from, to)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
