package services

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/database"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func seedSchool(t *testing.T, db *sql.DB, name string) models.School {
	t.Helper()
	school, err := NewSchoolService(db).CreateSchool(models.School{Name: name})
	require.NoError(t, err)
	return school
}

func validInput(schoolID string) RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "abcdef",
		SchoolID:  schoolID,
	}
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	assert.Equal(t, models.RolePending, acc.Role)
	assert.Equal(t, "ada@example.com", acc.Email)
	assert.Equal(t, "Athens Tech", acc.SchoolName)
	assert.Empty(t, acc.PasswordHash, "hash must never leave the service")
	assert.Nil(t, acc.LastLogin)

	// The stored credential is a bcrypt hash, not the plaintext.
	var stored string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE id = ?", acc.ID).Scan(&stored))
	assert.NotEqual(t, "abcdef", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("abcdef")))
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	tests := []struct {
		name       string
		mutate     func(*RegisterInput)
		wantStatus int
	}{
		{"missing first name", func(in *RegisterInput) { in.FirstName = " " }, http.StatusBadRequest},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }, http.StatusBadRequest},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, http.StatusBadRequest},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }, http.StatusBadRequest},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }, http.StatusBadRequest},
		{"missing school", func(in *RegisterInput) { in.SchoolID = "" }, http.StatusBadRequest},
		{"unknown school", func(in *RegisterInput) { in.SchoolID = "nope" }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(school.ID)
			tt.mutate(&input)
			_, err := svc.Register(input)
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apperrors.StatusOf(err))
		})
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	_, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	dup := validInput(school.ID)
	dup.Email = "ADA@Example.com"
	_, err = svc.Register(dup)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestAuthenticateDoesNotRevealRegisteredEmails(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	_, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate("ada@example.com", "wrong-pass")
	_, unknownEmail := svc.Authenticate("ghost@example.com", "wrong-pass")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword, unknownEmail, "wrong password and unknown email must be indistinguishable")
}

func TestAuthenticatePendingAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	_, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	// Correct credentials, but the account awaits approval.
	_, err = svc.Authenticate("ada@example.com", "abcdef")
	assert.ErrorIs(t, err, apperrors.ErrPendingApproval)

	// A wrong password on a pending account must not reveal the pending
	// state; it reads exactly like any failed login.
	_, err = svc.Authenticate("ada@example.com", "wrong-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestApproveTransitionsAndGuards(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	approved, err := svc.ApproveAccount(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, approved.Role)

	// A second approve must fail and leave the role untouched.
	_, err = svc.ApproveAccount(acc.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	got, err := svc.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)

	// Login now succeeds and records the time.
	logged, err := svc.Authenticate("ada@example.com", "abcdef")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, logged.Role)
	assert.Empty(t, logged.PasswordHash)

	got, err = svc.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLogin)
}

func TestApproveUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, 6)

	_, err := svc.ApproveAccount("missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestRejectDeletesPendingAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	require.NoError(t, svc.RejectAccount(acc.ID))

	// Rejection leaves no record.
	_, err = svc.GetAccountByID(acc.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))

	// Rejecting again reports not found, not invalid state.
	err = svc.RejectAccount(acc.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestRejectRefusesApprovedAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)
	_, err = svc.ApproveAccount(acc.ID)
	require.NoError(t, err)

	err = svc.RejectAccount(acc.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	_, err = svc.GetAccountByID(acc.ID)
	assert.NoError(t, err, "a failed reject must not delete the account")
}

func TestUpdateProfileIsPartial(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	company := "Analytical Engines Ltd"
	isPublic := true
	updated, err := svc.UpdateProfile(acc.ID, ProfilePatch{Company: &company, IsPublic: &isPublic})
	require.NoError(t, err)

	assert.Equal(t, "Analytical Engines Ltd", updated.Company)
	assert.True(t, updated.IsPublic)

	// Omitted fields stay untouched.
	assert.Equal(t, acc.FirstName, updated.FirstName)
	assert.Equal(t, acc.Email, updated.Email)
	assert.Equal(t, acc.Role, updated.Role)
}

func TestUpdateProfileUnknownSchool(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	bogus := "nope"
	_, err = svc.UpdateProfile(acc.ID, ProfilePatch{SchoolID: &bogus})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)
	_, err = svc.ApproveAccount(acc.ID)
	require.NoError(t, err)

	require.Error(t, svc.ChangePassword(acc.ID, "wrong", "newsecret"))
	require.Error(t, svc.ChangePassword(acc.ID, "abcdef", "tiny"))
	require.NoError(t, svc.ChangePassword(acc.ID, "abcdef", "newsecret"))

	_, err = svc.Authenticate("ada@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestDeleteAccountProtectsAdmins(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, 6)
	require.NoError(t, svc.EnsureAdmin("root@example.com", "rootpass", "Root", "Admin"))

	admins, err := svc.ListAccounts()
	require.NoError(t, err)
	require.Len(t, admins, 1)

	err = svc.DeleteAccount(admins[0].ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.StatusOf(err))
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, 6)

	require.NoError(t, svc.EnsureAdmin("root@example.com", "rootpass", "Root", "Admin"))
	require.NoError(t, svc.EnsureAdmin("root@example.com", "rootpass", "Root", "Admin"))

	accounts, err := svc.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, models.RoleAdmin, accounts[0].Role)

	logged, err := svc.Authenticate("root@example.com", "rootpass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, logged.Role)
}

func TestListPendingDenormalizesSchool(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, "Athens Tech")
	svc := NewAccountService(db, 6)

	acc, err := svc.Register(validInput(school.ID))
	require.NoError(t, err)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, acc.ID, pending[0].ID)
	assert.Equal(t, "Athens Tech", pending[0].SchoolName)
	assert.Empty(t, pending[0].PasswordHash)

	// Approval removes the account from the pending projection.
	_, err = svc.ApproveAccount(acc.ID)
	require.NoError(t, err)
	pending, err = svc.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}
