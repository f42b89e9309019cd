package api

import (
	"encoding/json"
	"net/http"

	"studiobooking/internal/entities"
	apperrors "studiobooking/internal/errors"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/service"
)

type GroupHandler struct {
	Service *service.GroupService
	Sender  *service.SenderService
}

func NewGroupHandler(svc *service.GroupService, sender *service.SenderService) *GroupHandler {
	return &GroupHandler{Service: svc, Sender: sender}
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req entities.RecurringGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}

	weekdays, err := recurrence.ParseWeekdays(req.Weekdays)
	if err != nil {
		writeError(w, err)
		return
	}
	rangeStart, err := parseDate("range_start", req.RangeStart)
	if err != nil {
		writeError(w, err)
		return
	}
	rangeEnd, err := parseDate("range_end", req.RangeEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	dailyStart, err := parseTime("daily_start", req.DailyStart)
	if err != nil {
		writeError(w, err)
		return
	}
	dailyEnd, err := parseTime("daily_end", req.DailyEnd)
	if err != nil {
		writeError(w, err)
		return
	}

	group, count, err := h.Service.CreateGroup(weekdays, rangeStart, rangeEnd, dailyStart, dailyEnd)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.Sender != nil {
		if members, err := h.Service.GetMembers(group.ID); err == nil {
			h.Sender.SendGroupCreatedEmail(*group, members)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"group":         entities.NewRecurringGroupResponse(*group),
		"booking_count": count,
	})
}

func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.List()
	if err != nil {
		writeError(w, err)
		return
	}
	responses := make([]entities.RecurringGroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, entities.NewRecurringGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *GroupHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	members, err := h.Service.GetMembers(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewBookingResponses(members))
}

// UpdateGroupTimes edits the daily window of a group and cascades it to every
// member. The form layer computes the duration; rollover is allowed because
// the window is a template.
func (h *GroupHandler) UpdateGroupTimes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.UpdateTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.BadRequest("Invalid request body"))
		return
	}
	dailyStart, err := parseTime("daily_start", req.DailyStart)
	if err != nil {
		writeError(w, err)
		return
	}
	dailyEnd, err := parseTime("daily_end", req.DailyEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	minutes, err := recurrence.DailyDuration(dailyStart, dailyEnd, true)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.UpdateGroupTimes(id, dailyStart, dailyEnd, minutes); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Group times updated"})
}

// DeleteMember removes one booking from a group. When the last member goes,
// the group goes with it and remaining_count is 0.
func (h *GroupHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeError(w, err)
		return
	}

	remaining, err := h.Service.DeleteMember(bookingID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "Member deleted",
		"remaining_count": remaining,
	})
}

func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.DeleteGroup(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Group deleted"})
}
