package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
)

// SchoolServiceProvider defines the interface for school services.
type SchoolServiceProvider interface {
	GetAllSchools() ([]models.School, error)
	GetSchoolByID(id string) (models.School, error)
	CreateSchool(school models.School) (models.School, error)
	UpdateSchool(id string, school models.School) (models.School, error)
	DeleteSchool(id string) error
}

// SchoolService provides business logic for school management.
type SchoolService struct {
	db *sql.DB
}

// NewSchoolService creates a new SchoolService.
func NewSchoolService(db *sql.DB) *SchoolService {
	return &SchoolService{db: db}
}

// scanSchool is a helper to scan a school from a row or rows object.
func scanSchool(scanner interface{ Scan(...interface{}) error }) (models.School, error) {
	var school models.School
	var desc sql.NullString
	err := scanner.Scan(&school.ID, &school.Name, &desc, &school.CreatedAt)
	if err != nil {
		return school, err
	}
	school.Description = desc.String
	return school, nil
}

// GetAllSchools retrieves all schools, alphabetically.
func (s *SchoolService) GetAllSchools() ([]models.School, error) {
	rows, err := s.db.Query("SELECT id, name, description, created_at FROM schools ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []models.School
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, school)
	}
	return schools, rows.Err()
}

// GetSchoolByID retrieves a single school by its ID.
func (s *SchoolService) GetSchoolByID(id string) (models.School, error) {
	row := s.db.QueryRow("SELECT id, name, description, created_at FROM schools WHERE id = ?", id)
	school, err := scanSchool(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.School{}, apperrors.NotFound("school not found")
		}
		return models.School{}, err
	}
	return school, nil
}

// CreateSchool persists a new school.
func (s *SchoolService) CreateSchool(school models.School) (models.School, error) {
	if strings.TrimSpace(school.Name) == "" {
		return models.School{}, apperrors.Validation("school name is required")
	}

	school.ID = uuid.New().String()
	stmt, err := s.db.Prepare("INSERT INTO schools(id, name, description) VALUES(?, ?, ?)")
	if err != nil {
		return models.School{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(school.ID, school.Name, school.Description); err != nil {
		return models.School{}, err
	}
	return s.GetSchoolByID(school.ID)
}

// UpdateSchool updates a school's name and description.
func (s *SchoolService) UpdateSchool(id string, school models.School) (models.School, error) {
	if strings.TrimSpace(school.Name) == "" {
		return models.School{}, apperrors.Validation("school name is required")
	}
	if _, err := s.GetSchoolByID(id); err != nil {
		return models.School{}, err
	}

	_, err := s.db.Exec("UPDATE schools SET name = ?, description = ? WHERE id = ?",
		school.Name, school.Description, id)
	if err != nil {
		return models.School{}, err
	}
	return s.GetSchoolByID(id)
}

// DeleteSchool removes a school. The delete and the referential check share
// one transaction: a school stays while any member account references it.
func (s *SchoolService) DeleteSchool(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(1) FROM schools WHERE id = ?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return apperrors.NotFound("school not found")
	}

	var members int
	err = tx.QueryRow("SELECT COUNT(1) FROM users WHERE school_id = ? AND role = ?",
		id, models.RoleUser).Scan(&members)
	if err != nil {
		return err
	}
	if members > 0 {
		return apperrors.Reference("school is referenced by member accounts")
	}

	if _, err = tx.Exec("DELETE FROM schools WHERE id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}
