package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
)

func TestSchoolCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchoolService(db)

	created, err := svc.CreateSchool(models.School{Name: "Athens Tech", Description: "Engineering school"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Athens Tech", created.Name)

	_, err = svc.CreateSchool(models.School{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	updated, err := svc.UpdateSchool(created.ID, models.School{Name: "Athens Polytechnic"})
	require.NoError(t, err)
	assert.Equal(t, "Athens Polytechnic", updated.Name)

	schools, err := svc.GetAllSchools()
	require.NoError(t, err)
	require.Len(t, schools, 1)

	require.NoError(t, svc.DeleteSchool(created.ID))
	_, err = svc.GetSchoolByID(created.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestDeleteSchoolGuardedByMembers(t *testing.T) {
	db := newTestDB(t)
	schoolSvc := NewSchoolService(db)
	accountSvc := NewAccountService(db, 6)

	school := seedSchool(t, db, "Athens Tech")

	acc, err := accountSvc.Register(validInput(school.ID))
	require.NoError(t, err)

	_, err = accountSvc.ApproveAccount(acc.ID)
	require.NoError(t, err)

	// A member account pins the school.
	err = schoolSvc.DeleteSchool(school.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	// Once no member references it, deletion goes through.
	require.NoError(t, accountSvc.DeleteAccount(acc.ID))
	assert.NoError(t, schoolSvc.DeleteSchool(school.ID))
}
