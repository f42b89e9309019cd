package api

import (
	"encoding/json"
	"net/http"
	"time"

	"studiobooking/internal/entities"
	apperrors "studiobooking/internal/errors"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/service"
)

type ScheduleHandler struct {
	Service *service.ScheduleService
}

func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req entities.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}
	weekdays, rangeStart, rangeEnd, dailyStart, dailyEnd, err := parseScheduleFields(req)
	if err != nil {
		writeError(w, err)
		return
	}

	schedule, err := h.Service.Create(req.Name, weekdays, rangeStart, rangeEnd, dailyStart, dailyEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewScheduleResponse(*schedule))
}

func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Service.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewScheduleResponses(schedules))
}

func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}
	weekdays, rangeStart, rangeEnd, dailyStart, dailyEnd, err := parseScheduleFields(req)
	if err != nil {
		writeError(w, err)
		return
	}

	schedule, err := h.Service.Update(id, req.Name, weekdays, rangeStart, rangeEnd, dailyStart, dailyEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewScheduleResponse(*schedule))
}

func (h *ScheduleHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}
	if err := h.Service.SetActive(id, req.IsActive); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Schedule updated"})
}

func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Schedule deleted, materialized bookings kept"})
}

func parseScheduleFields(req entities.ScheduleRequest) ([]time.Weekday, time.Time, time.Time, recurrence.TimeOfDay, recurrence.TimeOfDay, error) {
	var zeroTime recurrence.TimeOfDay
	weekdays, err := recurrence.ParseWeekdays(req.Weekdays)
	if err != nil {
		return nil, time.Time{}, time.Time{}, zeroTime, zeroTime, err
	}
	rangeStart, err := parseDate("range_start", req.RangeStart)
	if err != nil {
		return nil, time.Time{}, time.Time{}, zeroTime, zeroTime, err
	}
	rangeEnd, err := parseDate("range_end", req.RangeEnd)
	if err != nil {
		return nil, time.Time{}, time.Time{}, zeroTime, zeroTime, err
	}
	dailyStart, err := parseTime("daily_start", req.DailyStart)
	if err != nil {
		return nil, time.Time{}, time.Time{}, zeroTime, zeroTime, err
	}
	dailyEnd, err := parseTime("daily_end", req.DailyEnd)
	if err != nil {
		return nil, time.Time{}, time.Time{}, zeroTime, zeroTime, err
	}
	return weekdays, rangeStart, rangeEnd, dailyStart, dailyEnd, nil
}
