package gormrepo

import (
	"time"

	"github.com/pkordes/hr-ops/internal/domain"
)

// Dates are stored as YYYY-MM-DD text so that range predicates compare
// lexicographically and no timezone ever leaks into a calendar day.

type employeeModel struct {
	ID         int64  `gorm:"primaryKey"`
	LastName   string `gorm:"not null;uniqueIndex:idx_employees_full_name"`
	FirstName  string `gorm:"not null;uniqueIndex:idx_employees_full_name"`
	Patronymic string `gorm:"not null;default:'';uniqueIndex:idx_employees_full_name"`
	Position   string `gorm:"not null;default:''"`
}

func (employeeModel) TableName() string { return "employees" }

type organizationModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
	City string `gorm:"not null;default:''"`
}

func (organizationModel) TableName() string { return "organizations" }

type tripModel struct {
	ID             int64   `gorm:"primaryKey"`
	Destination    string  `gorm:"not null"`
	OrganizationID *int64  `gorm:"index"`
	StartDate      string  `gorm:"type:text;not null;index"`
	EndDate        string  `gorm:"type:text;not null"`
	Transport      *string `gorm:"type:text"`

	Participants []participantModel `gorm:"foreignKey:TripID"`
}

func (tripModel) TableName() string { return "trips" }

type participantModel struct {
	TripID     int64 `gorm:"primaryKey;autoIncrement:false"`
	EmployeeID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (participantModel) TableName() string { return "trip_participants" }

type vacationModel struct {
	ID         int64  `gorm:"primaryKey"`
	EmployeeID int64  `gorm:"not null;index"`
	StartDate  string `gorm:"type:text;not null"`
	EndDate    string `gorm:"type:text;not null"`
}

func (vacationModel) TableName() string { return "vacations" }

type equipmentModel struct {
	ID           int64   `gorm:"primaryKey"`
	Name         string  `gorm:"not null"`
	SerialNumber *string `gorm:"uniqueIndex"`
	Location     string  `gorm:"not null;default:''"`
	StartDate    string  `gorm:"type:text;not null"`

	Services []serviceModel `gorm:"foreignKey:EquipmentID"`
}

func (equipmentModel) TableName() string { return "equipment" }

type serviceModel struct {
	ID          int64  `gorm:"primaryKey"`
	EquipmentID int64  `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Frequency   string `gorm:"not null"`
}

func (serviceModel) TableName() string { return "maintenance_services" }

type signatureModel struct {
	ID        int64  `gorm:"primaryKey"`
	FullName  string `gorm:"not null"`
	Position  string `gorm:"not null;default:''"`
	INN       string `gorm:"column:inn;not null;default:''"`
	ECPNumber string `gorm:"column:ecp_number;not null;uniqueIndex"`
	ValidFrom string `gorm:"type:text;not null"`
	ValidTo   string `gorm:"type:text;not null;index"`
}

func (signatureModel) TableName() string { return "digital_signatures" }

type instrumentModel struct {
	ID               int64   `gorm:"primaryKey"`
	Name             string  `gorm:"not null"`
	Type             string  `gorm:"not null;default:''"`
	SerialNumber     *string `gorm:"uniqueIndex"`
	InventoryNumber  string  `gorm:"not null;default:''"`
	LastVerification string  `gorm:"type:text;not null"`
	NextVerification string  `gorm:"type:text;not null;index"`
	Notes            string  `gorm:"not null;default:''"`
}

func (instrumentModel) TableName() string { return "measuring_instruments" }

func allModels() []any {
	return []any{
		&employeeModel{},
		&organizationModel{},
		&tripModel{},
		&participantModel{},
		&vacationModel{},
		&equipmentModel{},
		&serviceModel{},
		&signatureModel{},
		&instrumentModel{},
	}
}

func formatDay(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.UTC)
}

func fromEmployee(e domain.Employee) employeeModel {
	return employeeModel{
		ID:         e.ID,
		LastName:   e.LastName,
		FirstName:  e.FirstName,
		Patronymic: e.Patronymic,
		Position:   e.Position,
	}
}

func (m employeeModel) toDomain() domain.Employee {
	return domain.Employee{
		ID:         m.ID,
		LastName:   m.LastName,
		FirstName:  m.FirstName,
		Patronymic: m.Patronymic,
		Position:   m.Position,
	}
}

func (m organizationModel) toDomain() domain.Organization {
	return domain.Organization{ID: m.ID, Name: m.Name, City: m.City}
}

func fromTrip(t domain.Trip) tripModel {
	m := tripModel{
		ID:             t.ID,
		Destination:    t.Destination,
		OrganizationID: t.OrganizationID,
		StartDate:      formatDay(t.StartDate),
		EndDate:        formatDay(t.EndDate),
	}
	if t.Transport != domain.TransportNone {
		s := string(t.Transport)
		m.Transport = &s
	}
	return m
}

func (m tripModel) toDomain() (domain.Trip, error) {
	start, err := parseDay(m.StartDate)
	if err != nil {
		return domain.Trip{}, err
	}
	end, err := parseDay(m.EndDate)
	if err != nil {
		return domain.Trip{}, err
	}
	t := domain.Trip{
		ID:             m.ID,
		Destination:    m.Destination,
		OrganizationID: m.OrganizationID,
		StartDate:      start,
		EndDate:        end,
		ParticipantIDs: make([]int64, 0, len(m.Participants)),
	}
	if m.Transport != nil {
		t.Transport = domain.Transport(*m.Transport)
	}
	for _, p := range m.Participants {
		t.ParticipantIDs = append(t.ParticipantIDs, p.EmployeeID)
	}
	return t, nil
}

func fromVacation(v domain.Vacation) vacationModel {
	return vacationModel{
		ID:         v.ID,
		EmployeeID: v.EmployeeID,
		StartDate:  formatDay(v.StartDate),
		EndDate:    formatDay(v.EndDate),
	}
}

func (m vacationModel) toDomain() (domain.Vacation, error) {
	start, err := parseDay(m.StartDate)
	if err != nil {
		return domain.Vacation{}, err
	}
	end, err := parseDay(m.EndDate)
	if err != nil {
		return domain.Vacation{}, err
	}
	return domain.Vacation{ID: m.ID, EmployeeID: m.EmployeeID, StartDate: start, EndDate: end}, nil
}

func fromEquipment(e domain.Equipment) equipmentModel {
	m := equipmentModel{
		ID:        e.ID,
		Name:      e.Name,
		Location:  e.Location,
		StartDate: formatDay(e.StartDate),
	}
	if e.SerialNumber != "" {
		s := e.SerialNumber
		m.SerialNumber = &s
	}
	return m
}

func (m equipmentModel) toDomain() (domain.Equipment, error) {
	start, err := parseDay(m.StartDate)
	if err != nil {
		return domain.Equipment{}, err
	}
	e := domain.Equipment{
		ID:        m.ID,
		Name:      m.Name,
		Location:  m.Location,
		StartDate: start,
		Services:  make([]domain.ServiceDefinition, 0, len(m.Services)),
	}
	if m.SerialNumber != nil {
		e.SerialNumber = *m.SerialNumber
	}
	for _, s := range m.Services {
		e.Services = append(e.Services, domain.ServiceDefinition{
			ID:          s.ID,
			EquipmentID: s.EquipmentID,
			Name:        s.Name,
			Frequency:   domain.Frequency(s.Frequency),
		})
	}
	return e, nil
}

func fromSignature(sig domain.DigitalSignature) signatureModel {
	return signatureModel{
		ID:        sig.ID,
		FullName:  sig.FullName,
		Position:  sig.Position,
		INN:       sig.INN,
		ECPNumber: sig.ECPNumber,
		ValidFrom: formatDay(sig.ValidFrom),
		ValidTo:   formatDay(sig.ValidTo),
	}
}

func (m signatureModel) toDomain() (domain.DigitalSignature, error) {
	from, err := parseDay(m.ValidFrom)
	if err != nil {
		return domain.DigitalSignature{}, err
	}
	to, err := parseDay(m.ValidTo)
	if err != nil {
		return domain.DigitalSignature{}, err
	}
	return domain.DigitalSignature{
		ID:        m.ID,
		FullName:  m.FullName,
		Position:  m.Position,
		INN:       m.INN,
		ECPNumber: m.ECPNumber,
		ValidFrom: from,
		ValidTo:   to,
	}, nil
}

func fromInstrument(in domain.MeasuringInstrument) instrumentModel {
	m := instrumentModel{
		ID:               in.ID,
		Name:             in.Name,
		Type:             in.Type,
		InventoryNumber:  in.InventoryNumber,
		LastVerification: formatDay(in.LastVerification),
		NextVerification: formatDay(in.NextVerification),
		Notes:            in.Notes,
	}
	if in.SerialNumber != "" {
		s := in.SerialNumber
		m.SerialNumber = &s
	}
	return m
}

func (m instrumentModel) toDomain() (domain.MeasuringInstrument, error) {
	last, err := parseDay(m.LastVerification)
	if err != nil {
		return domain.MeasuringInstrument{}, err
	}
	next, err := parseDay(m.NextVerification)
	if err != nil {
		return domain.MeasuringInstrument{}, err
	}
	in := domain.MeasuringInstrument{
		ID:               m.ID,
		Name:             m.Name,
		Type:             m.Type,
		InventoryNumber:  m.InventoryNumber,
		LastVerification: last,
		NextVerification: next,
		Notes:            m.Notes,
	}
	if m.SerialNumber != nil {
		in.SerialNumber = *m.SerialNumber
	}
	return in, nil
}
