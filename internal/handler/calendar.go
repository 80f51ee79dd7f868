package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hr-ops/internal/calendar"
)

type holidayResponse struct {
	Date    openapi_types.Date `json:"date"`
	Display string             `json:"display"`
}

type holidaysResponse struct {
	Year     int               `json:"year"`
	Known    bool              `json:"known"`
	Holidays []holidayResponse `json:"holidays"`
}

// listHolidays handles GET /calendar/holidays?year=YYYY. The year defaults
// to the current one. Known is false when the calendar has no table for the
// year, in which case only weekends count as days off.
func (s *Server) listHolidays(w http.ResponseWriter, r *http.Request) {
	var param *int
	if !queryParam(w, r, "year", false, &param) {
		return
	}
	year := s.now().Year()
	if param != nil {
		year = *param
	}
	if year < 1 || year > 9999 {
		writeRequestError(w, "year must be between 1 and 9999")
		return
	}
	days := s.Calendar.Holidays(year)
	resp := holidaysResponse{Year: year, Known: len(days) > 0, Holidays: make([]holidayResponse, len(days))}
	for i, d := range days {
		resp.Holidays[i] = holidayResponse{Date: openapi_types.Date{Time: d}, Display: calendar.FormatFullDate(d)}
	}
	writeJSON(w, http.StatusOK, resp)
}
