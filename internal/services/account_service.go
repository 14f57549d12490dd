package services

import (
	"database/sql"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
)

// dummyHash is compared against when a login targets an unknown email, so
// the unknown-email and wrong-password paths cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	SchoolID       string  `json:"schoolId"`
	GraduationYear *int    `json:"graduationYear"`
	Degree         string  `json:"degree"`
	Position       string  `json:"position"`
	Company        string  `json:"company"`
	Bio            string  `json:"bio"`
	Website        string  `json:"website"`
	PhotoURL       string  `json:"photoUrl"`
	IsPublic       bool    `json:"isPublic"`
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched. Email, password and role are not reachable through a patch.
type ProfilePatch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	SchoolID       *string `json:"schoolId"`
	GraduationYear *int    `json:"graduationYear"`
	Degree         *string `json:"degree"`
	Position       *string `json:"position"`
	Company        *string `json:"company"`
	Bio            *string `json:"bio"`
	Website        *string `json:"website"`
	PhotoURL       *string `json:"photoUrl"`
	IsPublic       *bool   `json:"isPublic"`
}

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	Register(input RegisterInput) (models.Account, error)
	Authenticate(email, password string) (models.Account, error)
	GetAccountByID(id string) (models.Account, error)
	ListAccounts() ([]models.Account, error)
	ListPending() ([]models.Account, error)
	ApproveAccount(id string) (models.Account, error)
	RejectAccount(id string) error
	UpdateProfile(id string, patch ProfilePatch) (models.Account, error)
	ChangePassword(id, currentPassword, newPassword string) error
	DeleteAccount(id string) error
}

// AccountService provides business logic for the account lifecycle.
type AccountService struct {
	db                *sql.DB
	minPasswordLength int
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sql.DB, minPasswordLength int) *AccountService {
	return &AccountService{db: db, minPasswordLength: minPasswordLength}
}

const accountColumns = `
	u.id, u.first_name, u.last_name, u.email, u.role, u.school_id,
	u.graduation_year, u.degree, u.position, u.company, u.bio, u.website,
	u.photo_url, u.is_public, u.created_at, u.updated_at, u.last_login, s.name`

const accountFrom = ` FROM users u LEFT JOIN schools s ON s.id = u.school_id`

// scanAccount is a helper to scan an account from a row or rows object.
func scanAccount(scanner interface{ Scan(...interface{}) error }) (models.Account, error) {
	var acc models.Account
	var schoolID, degree, position, company, bio, website, photoURL, schoolName sql.NullString
	var gradYear sql.NullInt64
	var lastLogin sql.NullTime

	err := scanner.Scan(
		&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.Role, &schoolID,
		&gradYear, &degree, &position, &company, &bio, &website,
		&photoURL, &acc.IsPublic, &acc.CreatedAt, &acc.UpdatedAt, &lastLogin, &schoolName,
	)
	if err != nil {
		return acc, err
	}

	if schoolID.Valid {
		acc.SchoolID = &schoolID.String
	}
	if gradYear.Valid {
		year := int(gradYear.Int64)
		acc.GraduationYear = &year
	}
	if lastLogin.Valid {
		acc.LastLogin = &lastLogin.Time
	}
	acc.Degree = degree.String
	acc.Position = position.String
	acc.Company = company.String
	acc.Bio = bio.String
	acc.Website = website.String
	acc.PhotoURL = photoURL.String
	acc.SchoolName = schoolName.String
	return acc, nil
}

// Register validates the input and persists a new account in the pending
// state. The password is stored only as a bcrypt hash.
func (s *AccountService) Register(input RegisterInput) (models.Account, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return models.Account{}, apperrors.Validation("first and last name are required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return models.Account{}, apperrors.Validation("email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return models.Account{}, apperrors.Validation("email address is malformed")
	}
	if len(input.Password) < s.minPasswordLength {
		return models.Account{}, apperrors.Validation(fmt.Sprintf("password must be at least %d characters", s.minPasswordLength))
	}
	if input.SchoolID == "" {
		return models.Account{}, apperrors.Validation("school is required")
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return models.Account{}, err
	}
	if exists > 0 {
		return models.Account{}, apperrors.Conflict("an account with this email already exists")
	}

	if err := s.db.QueryRow("SELECT COUNT(1) FROM schools WHERE id = ?", input.SchoolID).Scan(&exists); err != nil {
		return models.Account{}, err
	}
	if exists == 0 {
		return models.Account{}, apperrors.Reference("referenced school does not exist")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.New().String()
	stmt, err := s.db.Prepare(`
		INSERT INTO users(id, first_name, last_name, email, password_hash, role, school_id,
			graduation_year, degree, position, company, bio, website, photo_url, is_public)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Account{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(id, input.FirstName, input.LastName, email, string(hashedPassword),
		models.RolePending, input.SchoolID, input.GraduationYear, input.Degree, input.Position,
		input.Company, input.Bio, input.Website, input.PhotoURL, input.IsPublic)
	if err != nil {
		return models.Account{}, err
	}

	return s.GetAccountByID(id)
}

// getAccountByEmail retrieves an account including the password hash.
func (s *AccountService) getAccountByEmail(email string) (models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+`, u.password_hash`+accountFrom+` WHERE u.email = ?`,
		strings.ToLower(strings.TrimSpace(email)))

	var acc models.Account
	var schoolID, degree, position, company, bio, website, photoURL, schoolName sql.NullString
	var gradYear sql.NullInt64
	var lastLogin sql.NullTime
	err := row.Scan(
		&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.Role, &schoolID,
		&gradYear, &degree, &position, &company, &bio, &website,
		&photoURL, &acc.IsPublic, &acc.CreatedAt, &acc.UpdatedAt, &lastLogin, &schoolName,
		&acc.PasswordHash,
	)
	if err != nil {
		return models.Account{}, err
	}
	if schoolID.Valid {
		acc.SchoolID = &schoolID.String
	}
	if gradYear.Valid {
		year := int(gradYear.Int64)
		acc.GraduationYear = &year
	}
	if lastLogin.Valid {
		acc.LastLogin = &lastLogin.Time
	}
	acc.Degree = degree.String
	acc.Position = position.String
	acc.Company = company.String
	acc.Bio = bio.String
	acc.Website = website.String
	acc.PhotoURL = photoURL.String
	acc.SchoolName = schoolName.String
	return acc, nil
}

// Authenticate verifies credentials and records the login time. Unknown
// emails and wrong passwords return the identical error; the password is
// checked before the role so a pending account is only revealed to a
// caller holding the correct password.
func (s *AccountService) Authenticate(email, password string) (models.Account, error) {
	acc, err := s.getAccountByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return models.Account{}, apperrors.ErrInvalidCredentials
		}
		return models.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, apperrors.ErrInvalidCredentials
	}

	if acc.Role == models.RolePending {
		return models.Account{}, apperrors.ErrPendingApproval
	}

	if _, err := s.db.Exec("UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?", acc.ID); err != nil {
		return models.Account{}, err
	}

	// Don't send the password hash to the client
	acc.PasswordHash = ""
	return acc, nil
}

// GetAccountByID retrieves a single account by its ID, without the hash.
func (s *AccountService) GetAccountByID(id string) (models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+accountFrom+` WHERE u.id = ?`, id)
	acc, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Account{}, apperrors.NotFound("account not found")
		}
		return models.Account{}, err
	}
	return acc, nil
}

// ListAccounts retrieves all accounts, newest first.
func (s *AccountService) ListAccounts() ([]models.Account, error) {
	return s.listByQuery(`SELECT ` + accountColumns + accountFrom + ` ORDER BY u.created_at DESC`)
}

// ListPending retrieves the accounts awaiting administrator approval, with
// the school name denormalized for display.
func (s *AccountService) ListPending() ([]models.Account, error) {
	return s.listByQuery(`SELECT `+accountColumns+accountFrom+` WHERE u.role = ? ORDER BY u.created_at ASC`,
		models.RolePending)
}

func (s *AccountService) listByQuery(query string, args ...interface{}) ([]models.Account, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// ApproveAccount transitions a pending account to the user role. The role
// precondition is re-read and the update committed inside one transaction,
// so two concurrent approvals cannot both succeed.
func (s *AccountService) ApproveAccount(id string) (models.Account, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Account{}, err
	}
	defer tx.Rollback()

	var role string
	if err := tx.QueryRow("SELECT role FROM users WHERE id = ?", id).Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return models.Account{}, apperrors.NotFound("account not found")
		}
		return models.Account{}, err
	}
	if role != models.RolePending {
		return models.Account{}, apperrors.InvalidState(fmt.Sprintf("account is %s, not pending", role))
	}

	_, err = tx.Exec("UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		models.RoleUser, id)
	if err != nil {
		return models.Account{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Account{}, err
	}

	return s.GetAccountByID(id)
}

// RejectAccount permanently deletes a pending application. Rejection is
// destructive and leaves no record.
func (s *AccountService) RejectAccount(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var role string
	if err := tx.QueryRow("SELECT role FROM users WHERE id = ?", id).Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return apperrors.NotFound("account not found")
		}
		return err
	}
	if role != models.RolePending {
		return apperrors.InvalidState(fmt.Sprintf("account is %s, not pending", role))
	}

	if _, err = tx.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateProfile applies a partial update. Only the fields present in the
// patch are touched; the caller authorizes via the policy package.
func (s *AccountService) UpdateProfile(id string, patch ProfilePatch) (models.Account, error) {
	if _, err := s.GetAccountByID(id); err != nil {
		return models.Account{}, err
	}

	if patch.SchoolID != nil {
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(1) FROM schools WHERE id = ?", *patch.SchoolID).Scan(&exists); err != nil {
			return models.Account{}, err
		}
		if exists == 0 {
			return models.Account{}, apperrors.Reference("referenced school does not exist")
		}
	}

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.SchoolID != nil {
		add("school_id", *patch.SchoolID)
	}
	if patch.GraduationYear != nil {
		add("graduation_year", *patch.GraduationYear)
	}
	if patch.Degree != nil {
		add("degree", *patch.Degree)
	}
	if patch.Position != nil {
		add("position", *patch.Position)
	}
	if patch.Company != nil {
		add("company", *patch.Company)
	}
	if patch.Bio != nil {
		add("bio", *patch.Bio)
	}
	if patch.Website != nil {
		add("website", *patch.Website)
	}
	if patch.PhotoURL != nil {
		add("photo_url", *patch.PhotoURL)
	}
	if patch.IsPublic != nil {
		add("is_public", *patch.IsPublic)
	}

	if len(sets) > 0 {
		query := "UPDATE users SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
		args = append(args, id)
		if _, err := s.db.Exec(query, args...); err != nil {
			return models.Account{}, err
		}
	}

	return s.GetAccountByID(id)
}

// ChangePassword verifies the current password, then hashes and sets a new
// password for an account.
func (s *AccountService) ChangePassword(id, currentPassword, newPassword string) error {
	if len(newPassword) < s.minPasswordLength {
		return apperrors.Validation(fmt.Sprintf("password must be at least %d characters", s.minPasswordLength))
	}

	var hash string
	if err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return apperrors.NotFound("account not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(hashedPassword), id)
	return err
}

// DeleteAccount removes an account. Admin accounts cannot be deleted
// through this path.
func (s *AccountService) DeleteAccount(id string) error {
	acc, err := s.GetAccountByID(id)
	if err != nil {
		return err
	}
	if acc.Role == models.RoleAdmin {
		return apperrors.Forbidden("administrator accounts cannot be deleted")
	}

	_, err = s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// EnsureAdmin idempotently seeds the administrator account from
// configuration. Admins are provisioned only this way; no runtime
// transition promotes an account to admin.
func (s *AccountService) EnsureAdmin(email, password, firstName, lastName string) error {
	if email == "" || password == "" {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO users(id, first_name, last_name, email, password_hash, role, is_public)
		VALUES(?, ?, ?, ?, ?, ?, 0)`,
		uuid.New().String(), firstName, lastName, email, string(hashedPassword), models.RoleAdmin)
	return err
}
