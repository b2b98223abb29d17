package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLaundries(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "owners"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "laundry_name", "address", "photo_url", "rating"}).
			AddRow(uuid.NewString(), "Bersih Laundry", "Jl. Anggrek 1", "", 4.5).
			AddRow(uuid.NewString(), "Fresh Laundry", "Jl. Melati 3", "/uploads/a.jpg", 0))

	c, w := newTestContext(http.MethodGet, "/laundries", "")
	ListLaundries(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bersih Laundry")
	assert.Contains(t, w.Body.String(), "Fresh Laundry")
	assert.Contains(t, w.Body.String(), `"rating":4.5`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLaundryNotFound(t *testing.T) {
	mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "owners"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "laundry_name", "address", "photo_url", "rating"}))

	c, w := newTestContext(http.MethodGet, "/laundries/"+id.String(), "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	GetLaundry(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLaundryInvalidID(t *testing.T) {
	setupMockDB(t)

	c, w := newTestContext(http.MethodGet, "/laundries/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	GetLaundry(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMyLaundryPartialUpdate(t *testing.T) {
	mock := setupMockDB(t)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "owners"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "laundry_name", "address", "email", "password", "photo_url", "rating"}).
			AddRow(ownerID.String(), "Old Name", "Jl. Anggrek 1", "o@example.com", "x", "", 0))
	mock.ExpectExec(`UPDATE "owners" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newTestContext(http.MethodPut, "/laundries/me", `{"laundry_name":"New Name"}`)
	c.Set("userId", ownerID.String())
	UpdateMyLaundry(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Name")
	assert.Contains(t, w.Body.String(), "Jl. Anggrek 1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMyLaundryNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM "owners"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, w := newTestContext(http.MethodDelete, "/laundries/me", "")
	c.Set("userId", uuid.NewString())
	DeleteMyLaundry(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
