package domain

// EmployeeRecord summarises one employee's trips and vacations.
type EmployeeRecord struct {
	Employee      Employee
	TripCount     int
	TripDays      int
	VacationCount int
	VacationDays  int
	// OnTrip and OnVacation describe the employee's status on the day the
	// summary was computed.
	OnTrip     bool
	OnVacation bool
}
