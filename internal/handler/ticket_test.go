package handler

import (
	"database/sql"
	"encoding/json"
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

	"github.com/devkashyap/college-management/internal/repository"
	"github.com/devkashyap/college-management/internal/service"
)

var (
	selectTicketTx = regexp.QuoteMeta("SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE id=? LIMIT 1")
	updateTicket   = regexp.QuoteMeta("UPDATE tickets SET status=?, response=?, updated_at=? WHERE id=? AND status=?")
	selectOwner    = regexp.QuoteMeta("SELECT id FROM users WHERE id=? LIMIT 1")
	grantOwner     = regexp.QuoteMeta("UPDATE users SET can_edit_profile=TRUE WHERE id=?")
)

func newTicketHarness(t *testing.T) (*TicketHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewTicketHandler(repository.NewTicketRepo(db), service.NewProfileGate(db))
	return h, mock, func() { db.Close() }
}

func resolveRequest(id, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/tickets/"+id+"/resolve", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func ticketRows(id, userID uint64, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "user_id", "description", "status", "response", "created_at", "updated_at"}).
		AddRow(id, userID, "please unlock my profile", status, "", now, now)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestResolve_RejectsBadInputBeforeStoreAccess(t *testing.T) {
	cases := []struct {
		name string
		id   string
		body string
	}{
		{"unknown action", "7", `{"action":"maybe","response":"ok"}`},
		{"empty response", "7", `{"action":"approve","response":"  "}`},
		{"missing response", "7", `{"action":"decline"}`},
		{"non-numeric id", "abc", `{"action":"approve","response":"ok"}`},
		{"zero id", "0", `{"action":"approve","response":"ok"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock, done := newTicketHarness(t)
			defer done()

			c, rec := resolveRequest(tc.id, tc.body)
			require.NoError(t, h.Resolve(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// No expectations were registered: any database call,
			// including a transaction begin, would have failed the
			// handler with a 500 instead of a clean 400.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestResolve_TicketNotFound(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := resolveRequest("99", `{"action":"approve","response":"ok"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ticket not found", decodeBody(t, rec)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_ApproveGrantsAndCommits(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(7)).
		WillReturnRows(ticketRows(7, 42, "PENDING"))
	mock.ExpectExec(updateTicket).
		WithArgs("APPROVED", "granted, go ahead", sqlmock.AnyArg(), uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectOwner).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(grantOwner).WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := resolveRequest("7", `{"action":"approve","response":"granted, go ahead"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ticket approved", body["message"])
	assert.Equal(t, "APPROVED", body["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_DeclineSkipsGrant(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(7)).
		WillReturnRows(ticketRows(7, 42, "PENDING"))
	mock.ExpectExec(updateTicket).
		WithArgs("DECLINED", "not enough detail", sqlmock.AnyArg(), uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := resolveRequest("7", `{"action":"decline","response":"not enough detail"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ticket declined", body["message"])
	assert.Equal(t, "DECLINED", body["status"])
	// No users-table expectations were registered, so a grant attempt
	// would have errored the transaction.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_AlreadyResolvedConflicts(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(7)).
		WillReturnRows(ticketRows(7, 42, "APPROVED"))
	mock.ExpectRollback()

	c, rec := resolveRequest("7", `{"action":"decline","response":"changing my mind"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ticket already resolved", decodeBody(t, rec)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_ConcurrentLoserConflicts(t *testing.T) {
	// The ticket still reads PENDING, but another resolution lands first
	// and the guarded update matches zero rows.
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(7)).
		WillReturnRows(ticketRows(7, 42, "PENDING"))
	mock.ExpectExec(updateTicket).
		WithArgs("APPROVED", "ok", sqlmock.AnyArg(), uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := resolveRequest("7", `{"action":"approve","response":"ok"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_OwnerMissingRollsBack(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(7)).
		WillReturnRows(ticketRows(7, 42, "PENDING"))
	mock.ExpectExec(updateTicket).
		WithArgs("APPROVED", "ok", sqlmock.AnyArg(), uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectOwner).WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := resolveRequest("7", `{"action":"approve","response":"ok"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ticket owner not found", decodeBody(t, rec)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_GrantNotAppliedRollsBack(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(selectTicketTx).WithArgs(uint64(7)).
		WillReturnRows(ticketRows(7, 42, "PENDING"))
	mock.ExpectExec(updateTicket).
		WithArgs("APPROVED", "ok", sqlmock.AnyArg(), uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectOwner).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(grantOwner).WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := resolveRequest("7", `{"action":"approve","response":"ok"}`)
	require.NoError(t, h.Resolve(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTicket_RequiresDescription(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tickets", strings.NewReader(`{"description":"   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(42))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTicket_StartsPending(t *testing.T) {
	h, mock, done := newTicketHarness(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets (user_id, description, status, response) VALUES (?,?,?,'')")).
		WithArgs(uint64(42), "please unlock my profile", "PENDING").
		WillReturnResult(sqlmock.NewResult(11, 1))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tickets", strings.NewReader(`{"description":"please unlock my profile"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(42))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, float64(11), body["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
