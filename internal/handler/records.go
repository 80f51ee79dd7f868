// records.go implements GET /records.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/hr-ops/internal/domain"
)

// csvHeaders defines the column names written as the first row of the CSV export.
var csvHeaders = []string{
	"employee_id", "full_name", "position",
	"trip_count", "trip_days", "vacation_count", "vacation_days",
	"on_trip", "on_vacation",
}

type recordResponse struct {
	Employee      employeeResponse `json:"employee"`
	TripCount     int              `json:"trip_count"`
	TripDays      int              `json:"trip_days"`
	VacationCount int              `json:"vacation_count"`
	VacationDays  int              `json:"vacation_days"`
	OnTrip        bool             `json:"on_trip"`
	OnVacation    bool             `json:"on_vacation"`
}

// getRecords handles GET /records.
func (s *Server) getRecords(w http.ResponseWriter, r *http.Request) {
	var param *string
	if !queryParam(w, r, "format", false, &param) {
		return
	}
	format := "json"
	if param != nil {
		format = *param
	}
	if format != "json" && format != "csv" {
		writeRequestError(w, "format must be json or csv")
		return
	}

	records, err := s.Records.Records(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	if format == "csv" {
		writeRecordsCSV(w, records)
		return
	}
	out := make([]recordResponse, len(records))
	for i, rec := range records {
		out[i] = recordResponse{
			Employee:      employeeToResponse(rec.Employee),
			TripCount:     rec.TripCount,
			TripDays:      rec.TripDays,
			VacationCount: rec.VacationCount,
			VacationDays:  rec.VacationDays,
			OnTrip:        rec.OnTrip,
			OnVacation:    rec.OnVacation,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// writeRecordsCSV encodes the summary into a buffer first so the length is
// known before the status line goes out.
func writeRecordsCSV(w http.ResponseWriter, records []domain.EmployeeRecord) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, rec := range records {
		//nolint:errcheck
		cw.Write(recordToCSV(rec))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func recordToCSV(rec domain.EmployeeRecord) []string {
	return []string{
		strconv.FormatInt(rec.Employee.ID, 10),
		rec.Employee.FullName(),
		rec.Employee.Position,
		strconv.Itoa(rec.TripCount),
		strconv.Itoa(rec.TripDays),
		strconv.Itoa(rec.VacationCount),
		strconv.Itoa(rec.VacationDays),
		strconv.FormatBool(rec.OnTrip),
		strconv.FormatBool(rec.OnVacation),
	}
}
