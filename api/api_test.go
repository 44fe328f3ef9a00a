package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/dto"
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
	"github.com/dhis2/approval-backend/usecases"
)

var ruleColumns = slices.Concat(dbmodels.SelectApprovalValidationRuleColumn, []string{"datasetids"})

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	pool   pgxmock.PgxPoolIface
	blobs  repositories.BlobRepository
}

func newTestServer(t *testing.T, opts ...usecases.Option) testServer {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	blobs := repositories.NewBlobRepository()
	t.Cleanup(func() {
		pool.Close()
		blobs.Close()
	})

	uc := usecases.NewUsecases(
		repositories.NewRepositories(pool, blobs),
		append([]usecases.Option{usecases.WithApiVersion("test")}, opts...)...,
	)
	router := gin.New()
	addRoutes(router, Configuration{
		DefaultTimeout: 5 * time.Second,
		ExportTimeout:  5 * time.Second,
	}, uc)

	return testServer{router: router, pool: pool, blobs: blobs}
}

func (s testServer) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, body)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(t *testing.T, r *httptest.ResponseRecorder) dto.APIErrorResponse {
	t.Helper()
	var response dto.APIErrorResponse
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &response))
	return response
}

func TestLivenessProbe(t *testing.T) {
	s := newTestServer(t)
	s.pool.ExpectQuery(`SELECT 1`).WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	r := s.do(http.MethodGet, "/liveness", nil)

	assert.Equal(t, http.StatusOK, r.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, r.Body.String())
	assert.NoError(t, s.pool.ExpectationsWereMet())
}

func TestPostApprovalValidationRule_InvalidPayload(t *testing.T) {
	s := newTestServer(t)

	r := s.do(http.MethodPost, "/approval-validation-rules",
		strings.NewReader(`{"period_type":"Fortnightly","data_set_ids":[0]}`))

	assert.Equal(t, http.StatusBadRequest, r.Code)
	response := decodeError(t, r)
	assert.Equal(t, dto.InvalidPayload, response.ErrorCode)
	assert.Contains(t, response.Details, "field `name` is required")
	assert.Contains(t, response.Details,
		"field `period_type` must be one of Daily, Weekly, Monthly, Quarterly, SixMonthly, Yearly")
	assert.NoError(t, s.pool.ExpectationsWereMet())
}

func TestGetApprovalValidationRule(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		s := newTestServer(t)
		s.pool.ExpectQuery(`FROM approvalvalidationrule AS r WHERE r\.approvalvalidationruleid = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(pgxmock.NewRows(ruleColumns))

		r := s.do(http.MethodGet, "/approval-validation-rules/42", nil)

		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.Equal(t, dto.NotFound, decodeError(t, r).ErrorCode)
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})

	t.Run("id is not a number", func(t *testing.T) {
		s := newTestServer(t)

		r := s.do(http.MethodGet, "/approval-validation-rules/abc", nil)

		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	t.Run("invalid uid", func(t *testing.T) {
		s := newTestServer(t)

		r := s.do(http.MethodGet, "/approval-validation-rules/by-uid/1abc", nil)

		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Contains(t, decodeError(t, r).Details,
			"field `uid` should be an 11 characters uid starting with a letter")
	})
}

func TestPostApprovalValidationAudit(t *testing.T) {
	body := `{"data_set_id":7,"period_id":3,"organisation_unit_id":11,"attribute_option_combo_id":15,"audit_type":"VALIDATION"}`

	t.Run("nominal", func(t *testing.T) {
		s := newTestServer(t)
		s.pool.ExpectBegin()
		s.pool.ExpectQuery(`FROM approvalvalidationrule AS r WHERE r\.approvalvalidationruleid = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(pgxmock.NewRows(ruleColumns).
				AddRow(int64(42), "a1B2c3D4e5F", nil, "ANC visits", nil, "Monthly", time.Time{}, time.Time{}, []int64{7}))
		s.pool.ExpectQuery(`INSERT INTO approvalvalidationaudit`).
			WithArgs(int64(42), int64(7), int64(3), int64(11), int64(15), "VALIDATION", "").
			WillReturnRows(pgxmock.NewRows([]string{"approvalvalidationauditid"}).AddRow(int64(5)))
		s.pool.ExpectCommit()

		r := s.do(http.MethodPost, "/approval-validation-rules/42/audits", strings.NewReader(body))

		assert.Equal(t, http.StatusCreated, r.Code)
		var response struct {
			Audit dto.APIApprovalValidationAudit `json:"approval_validation_audit"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &response))
		assert.Equal(t, int64(5), response.Audit.Id)
		assert.Equal(t, int64(42), response.Audit.RuleId)
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})

	t.Run("unknown data set", func(t *testing.T) {
		s := newTestServer(t)
		s.pool.ExpectBegin()
		s.pool.ExpectQuery(`FROM approvalvalidationrule AS r WHERE r\.approvalvalidationruleid = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(pgxmock.NewRows(ruleColumns).
				AddRow(int64(42), "a1B2c3D4e5F", nil, "ANC visits", nil, "Monthly", time.Time{}, time.Time{}, []int64{9}))
		s.pool.ExpectRollback()

		r := s.do(http.MethodPost, "/approval-validation-rules/42/audits", strings.NewReader(body))

		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})

	t.Run("missing fields", func(t *testing.T) {
		s := newTestServer(t)

		r := s.do(http.MethodPost, "/approval-validation-rules/42/audits", strings.NewReader(`{"data_set_id":7}`))

		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Contains(t, decodeError(t, r).Details, "field `audit_type` is required")
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})
}

func TestDeletionCheck(t *testing.T) {
	t.Run("vetoed by audits", func(t *testing.T) {
		s := newTestServer(t)
		s.pool.ExpectQuery(`SELECT COUNT\(\*\) FROM approvalvalidationaudit WHERE datasetid = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

		r := s.do(http.MethodGet, "/deletion-checks?kind=dataSet&id=7", nil)

		assert.Equal(t, http.StatusOK, r.Code)
		var response struct {
			DeletionCheck dto.APIDeletionCheck `json:"deletion_check"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &response))
		assert.False(t, response.DeletionCheck.Allowed)
		assert.Equal(t, "dataSet", response.DeletionCheck.Kind)
		require.Len(t, response.DeletionCheck.Vetoes, 1)
		assert.Equal(t, "ApprovalValidationAudit", response.DeletionCheck.Vetoes[0].Handler)
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})

	t.Run("unknown kind", func(t *testing.T) {
		s := newTestServer(t)

		r := s.do(http.MethodGet, "/deletion-checks?kind=widget&id=7", nil)

		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})
}

func TestRenderApprovalValidationRules(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		s := newTestServer(t)
		s.pool.ExpectQuery(`FROM approvalvalidationrule AS r ORDER BY`).
			WillReturnRows(pgxmock.NewRows(ruleColumns).
				AddRow(int64(42), "a1B2c3D4e5F", nil, "ANC visits", nil, "Monthly", time.Time{}, time.Time{}, []int64{7}))

		r := s.do(http.MethodGet, "/approval-validation-rules/export?format=csv", nil)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, "text/csv; charset=utf-8", r.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="approval-validation-rules.csv"`, r.Header().Get("Content-Disposition"))
		assert.Equal(t, "Id,Uid,Name,Code,Period type,Data sets\n42,a1B2c3D4e5F,ANC visits,,Monthly,7\n", r.Body.String())
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})

	t.Run("format is case insensitive", func(t *testing.T) {
		s := newTestServer(t)
		s.pool.ExpectQuery(`FROM approvalvalidationrule AS r ORDER BY`).
			WillReturnRows(pgxmock.NewRows(ruleColumns).
				AddRow(int64(42), "a1B2c3D4e5F", nil, "ANC visits", nil, "Monthly", time.Time{}, time.Time{}, []int64{7}))

		r := s.do(http.MethodGet, "/approval-validation-rules/export?format=CSV", nil)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, `attachment; filename="approval-validation-rules.csv"`, r.Header().Get("Content-Disposition"))
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})

	t.Run("unknown format", func(t *testing.T) {
		s := newTestServer(t)

		r := s.do(http.MethodGet, "/approval-validation-rules/export?format=docx", nil)

		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Equal(t, dto.UnknownGridFormatCode, decodeError(t, r).ErrorCode)
		assert.NoError(t, s.pool.ExpectationsWereMet())
	})
}

func TestExportApprovalValidationRules_NoBucket(t *testing.T) {
	s := newTestServer(t)

	r := s.do(http.MethodPost, "/approval-validation-rules/export?format=csv", nil)

	assert.Equal(t, http.StatusNotImplemented, r.Code)
	assert.Equal(t, dto.ReportBucketNotSet, decodeError(t, r).ErrorCode)
}

func TestGetExportedReport(t *testing.T) {
	s := newTestServer(t, usecases.WithReportBucketUrl("mem://"))
	_, err := s.blobs.PutBlob(context.Background(), "mem://", "approval-validation-rules/report.csv",
		"text/csv", strings.NewReader("Id,Uid\n"))
	require.NoError(t, err)

	t.Run("nominal", func(t *testing.T) {
		r := s.do(http.MethodGet, "/reports/approval-validation-rules/report.csv", nil)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, `attachment; filename="report.csv"`, r.Header().Get("Content-Disposition"))
		assert.Equal(t, "Id,Uid\n", r.Body.String())
	})

	t.Run("outside of the report folder", func(t *testing.T) {
		r := s.do(http.MethodGet, "/reports/other/report.csv", nil)

		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	t.Run("missing", func(t *testing.T) {
		r := s.do(http.MethodGet, "/reports/approval-validation-rules/missing.csv", nil)

		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

func TestGridsFromHtml_InvalidPayload(t *testing.T) {
	s := newTestServer(t)

	r := s.do(http.MethodPost, "/grids/from-html", strings.NewReader(`{"period_id":3}`))

	assert.Equal(t, http.StatusBadRequest, r.Code)
	response := decodeError(t, r)
	assert.Contains(t, response.Details, "field `html` is required")
	assert.Contains(t, response.Details, "field `organisation_unit_id` is required")
}
