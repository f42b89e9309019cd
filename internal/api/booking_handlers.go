package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"studiobooking/internal/entities"
	apperrors "studiobooking/internal/errors"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}
	startDate, startTime, endDate, endTime, err := parseBookingFields(req)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.Service.Create(startDate, startTime, endDate, endTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewBookingResponse(*booking))
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewBookingResponses(bookings))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.Service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewBookingResponse(*booking))
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}
	startDate, startTime, endDate, endTime, err := parseBookingFields(req)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.Service.Update(id, startDate, startTime, endDate, endTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewBookingResponse(*booking))
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Booking deleted"})
}

func parseBookingFields(req entities.BookingRequest) (time.Time, recurrence.TimeOfDay, time.Time, recurrence.TimeOfDay, error) {
	var zeroTime recurrence.TimeOfDay
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return time.Time{}, zeroTime, time.Time{}, zeroTime, err
	}
	startTime, err := parseTime("start_time", req.StartTime)
	if err != nil {
		return time.Time{}, zeroTime, time.Time{}, zeroTime, err
	}
	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return time.Time{}, zeroTime, time.Time{}, zeroTime, err
	}
	endTime, err := parseTime("end_time", req.EndTime)
	if err != nil {
		return time.Time{}, zeroTime, time.Time{}, zeroTime, err
	}
	return startDate, startTime, endDate, endTime, nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, apperrors.BadRequest("Invalid ID")
	}
	return id, nil
}
