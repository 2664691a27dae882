package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkashyap/college-management/internal/config"
	"github.com/devkashyap/college-management/internal/repository"
	"github.com/devkashyap/college-management/internal/utils"
)

var selectUserByEmail = regexp.QuoteMeta("SELECT id,email,password_hash,full_name,role,can_edit_profile,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1")

func newAuthHarness(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 30, BcryptCost: 4}
	h := NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func loginRequest(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func accountRows(t *testing.T, password string, active bool) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "can_edit_profile", "is_active", "created_at", "updated_at"}).
		AddRow(42, "amit@college.edu", hash, "Amit Rao", "STUDENT", false, active, now, now)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	h, mock, done := newAuthHarness(t)
	defer done()

	mock.ExpectQuery(selectUserByEmail).WithArgs("amit@college.edu").
		WillReturnRows(accountRows(t, "pass1234", true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)")).
		WithArgs(uint64(42), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := loginRequest(`{"email":"amit@college.edu","password":"pass1234"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	h, mock, done := newAuthHarness(t)
	defer done()

	mock.ExpectQuery(selectUserByEmail).WithArgs("amit@college.edu").
		WillReturnRows(accountRows(t, "pass1234", true))

	c, rec := loginRequest(`{"email":"amit@college.edu","password":"nope"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_DisabledAccountRejected(t *testing.T) {
	h, mock, done := newAuthHarness(t)
	defer done()

	mock.ExpectQuery(selectUserByEmail).WithArgs("amit@college.edu").
		WillReturnRows(accountRows(t, "pass1234", false))

	c, rec := loginRequest(`{"email":"amit@college.edu","password":"pass1234"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "account disabled", decodeBody(t, rec)["error"])
	// No refresh token row may be written for a disabled account.
	assert.NoError(t, mock.ExpectationsWereMet())
}
