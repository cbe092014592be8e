package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aixiv-api/internal/dto"
	"github.com/noah-isme/aixiv-api/internal/middleware"
	"github.com/noah-isme/aixiv-api/internal/models"
	"github.com/noah-isme/aixiv-api/internal/service"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
)

type submissionServiceMock struct {
	createErr  error
	uploadedBy string
	getErr     error
	filter     models.SubmissionFilter
	version    string
	deleted    int64
}

func (m *submissionServiceMock) Create(ctx context.Context, req dto.CreateSubmissionRequest, uploadedBy string) (*models.Submission, error) {
	m.uploadedBy = uploadedBy
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Submission{ID: 7, AixivID: "aixiv.251014.000001", Version: models.DefaultVersion, Title: req.Title}, nil
}

func (m *submissionServiceMock) CreateVersion(ctx context.Context, aixivID string, req dto.CreateVersionRequest, uploadedBy string) (*models.Submission, error) {
	return &models.Submission{ID: 8, AixivID: aixivID, Version: req.Version}, nil
}

func (m *submissionServiceMock) Get(ctx context.Context, id int64) (*models.Submission, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.Submission{ID: id}, nil
}

func (m *submissionServiceMock) GetPaper(ctx context.Context, aixivID, version string) (*models.Submission, error) {
	m.version = version
	return &models.Submission{AixivID: aixivID, Version: "2.0"}, nil
}

func (m *submissionServiceMock) ListVersions(ctx context.Context, aixivID string) ([]models.Submission, error) {
	return []models.Submission{{AixivID: aixivID, Version: "1.0"}}, nil
}

func (m *submissionServiceMock) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, *models.Pagination, error) {
	m.filter = filter
	return []models.Submission{}, &models.Pagination{Skip: filter.Skip, Limit: filter.Limit}, nil
}

func (m *submissionServiceMock) Update(ctx context.Context, id int64, req dto.UpdateSubmissionRequest) (*models.Submission, error) {
	return &models.Submission{ID: id}, nil
}

func (m *submissionServiceMock) Delete(ctx context.Context, id int64) error {
	m.deleted = id
	return nil
}

func (m *submissionServiceMock) RecordEngagement(ctx context.Context, id int64, req dto.EngagementRequest) (*models.Submission, error) {
	return &models.Submission{ID: id, Views: 1}, nil
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		_ = json.NewEncoder(&buf).Encode(v)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmissionHandlerSubmitUsesBearerSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &submissionServiceMock{}
	handler := NewSubmissionHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/submit", dto.CreateSubmissionRequest{Title: "T"})
	c.Set(middleware.ContextUploaderKey, "user-9")

	handler.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-9", svc.uploadedBy)

	var body struct {
		Data dto.SubmissionCreatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Success)
	assert.Equal(t, "aixiv.251014.000001", body.Data.AixivID)
	assert.Equal(t, int64(7), body.Data.ID)
}

func TestSubmissionHandlerSubmitErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/submit", "invalid")
	NewSubmissionHandler(&submissionServiceMock{}).Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/submit", dto.CreateSubmissionRequest{})
	svc := &submissionServiceMock{createErr: appErrors.Wrap(assert.AnError, appErrors.ErrWriteConflict.Code, appErrors.ErrWriteConflict.Status, appErrors.ErrWriteConflict.Message)}
	NewSubmissionHandler(svc).Submit(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "WRITE_CONFLICT")
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestSubmissionHandlerGetInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/submissions/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	NewSubmissionHandler(&submissionServiceMock{}).Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmissionHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/submissions/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	NewSubmissionHandler(&submissionServiceMock{getErr: appErrors.ErrNotFound}).Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmissionHandlerListQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &submissionServiceMock{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/users/u1/submissions?skip=10&limit=20", nil)
	c.Params = gin.Params{{Key: "uploaded_by", Value: "u1"}}
	NewSubmissionHandler(svc).ListByUploader(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.SubmissionFilter{UploadedBy: "u1", Skip: 10, Limit: 20}, svc.filter)
	assert.Contains(t, w.Body.String(), `"pagination"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/submissions?limit=ten", nil)
	NewSubmissionHandler(svc).List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Details struct {
			Fields []appErrors.FieldViolation `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func TestSubmissionHandlerValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := dto.CreateSubmissionRequest{Title: "T"}
	verr := service.NewValidator().Struct(req)
	require.Error(t, verr)
	svc := &submissionServiceMock{createErr: appErrors.Validation(verr, "invalid submission payload")}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/submit", req)
	NewSubmissionHandler(svc).Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
	assert.Contains(t, env.Error.Details.Fields, appErrors.FieldViolation{Field: "agent_authors", Rule: "required"})
	assert.Contains(t, env.Error.Details.Fields, appErrors.FieldViolation{Field: "s3_url", Rule: "required"})
	assert.NotContains(t, w.Body.String(), "Key: ")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/submit", `{"title": 7}`)
	NewSubmissionHandler(&submissionServiceMock{}).Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env = errorEnvelope{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, []appErrors.FieldViolation{{Field: "title", Rule: "type", Param: "string"}}, env.Error.Details.Fields)
}
