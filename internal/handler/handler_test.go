package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/mobile-api/internal/config"
	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/metrics"
	"github.com/deppfellow/mobile-api/internal/middleware"
	"github.com/deppfellow/mobile-api/internal/model"
	"github.com/deppfellow/mobile-api/internal/param"
	"github.com/deppfellow/mobile-api/internal/response"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	m := metrics.New()

	return &server.Server{
		Config:     &config.Config{Primary: config.Primary{Env: "test"}},
		Logger:     &logger,
		Metrics:    m,
		Normalizer: response.NewNormalizer(&logger, response.WithObserver(m)),
	}
}

// fakeFeedback stores items in memory and records the member id it saw.
type fakeFeedback struct {
	items      map[uuid.UUID]model.Feedback
	lastMember string
	lastQuery  model.ListFeedbackQuery
	createErr  error
}

func newFakeFeedback() *fakeFeedback {
	return &fakeFeedback{items: map[uuid.UUID]model.Feedback{}}
}

func (f *fakeFeedback) Create(_ context.Context, memberID string, payloads []model.CreateFeedbackPayload) ([]model.Feedback, error) {
	f.lastMember = memberID
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := make([]model.Feedback, 0, len(payloads))
	for _, p := range payloads {
		item := model.Feedback{
			ID:        uuid.New(),
			MemberID:  memberID,
			Category:  p.Category,
			Content:   p.Content,
			Contact:   p.Contact,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
		f.items[item.ID] = item
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeFeedback) Get(_ context.Context, memberID string, id uuid.UUID) (*model.Feedback, error) {
	item, ok := f.items[id]
	if !ok || item.MemberID != memberID {
		return nil, errs.NewNotFoundError("Feedback not found")
	}
	return &item, nil
}

func (f *fakeFeedback) List(_ context.Context, memberID string, q model.ListFeedbackQuery) (*model.FeedbackPage, error) {
	f.lastQuery = q
	q = q.WithDefaults()
	return &model.FeedbackPage{Items: []model.Feedback{}, Page: q.Page, Limit: q.Limit}, nil
}

// newTestEcho wires the real error boundary and a fake authenticated user.
func newTestEcho(s *server.Server, fb *fakeFeedback) *echo.Echo {
	global := middleware.NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserIDKey, "user_1")
			return next(c)
		}
	})

	h := NewFeedbackHandler(s, fb)
	e.POST("/feedback", Handle[model.CreateFeedbackPayload, any](h.Handler, h.Create))
	e.GET("/feedback", HandleOptional[model.ListFeedbackQuery, *model.FeedbackPage](h.Handler, model.ListFeedbackQuery{}, h.List))
	e.GET("/feedback/:id", HandleNoParam[*model.Feedback](h.Handler, h.Get))
	return e
}

type envelope struct {
	Code    int             `json:"code"`
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, e *echo.Echo, req *http.Request) envelope {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func postParam(raw string) *http.Request {
	form := url.Values{param.Name: {raw}}
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestCreateFeedback_Single(t *testing.T) {
	fb := newFakeFeedback()
	e := newTestEcho(newTestServer(t), fb)

	raw, err := param.Encode(map[string]any{"category": "bug", "content": "Crash on login"})
	require.NoError(t, err)

	env := do(t, e, postParam(raw))

	assert.Equal(t, 200, env.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "OK", env.Msg)
	assert.Equal(t, "user_1", fb.lastMember)

	var item model.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Crash on login", item.Content)
	assert.Equal(t, model.FeedbackCategoryBug, item.Category)
}

func TestCreateFeedback_List(t *testing.T) {
	e := newTestEcho(newTestServer(t), newFakeFeedback())

	raw := url.QueryEscape(`[{"category":"bug","content":"Crash on login"},{"category":"other","content":"Nice app!"}]`)
	env := do(t, e, postParam(raw))

	assert.Equal(t, 200, env.Code)

	var items []model.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Nice app!", items[1].Content)
}

func TestCreateFeedback_InvalidParam(t *testing.T) {
	e := newTestEcho(newTestServer(t), newFakeFeedback())

	cases := map[string]struct {
		raw string
		msg string
	}{
		"missing":      {raw: "", msg: "param is required"},
		"not json":     {raw: "not%20json", msg: "param is not valid JSON"},
		"bad category": {raw: url.QueryEscape(`{"category":"praise","content":"Great stuff"}`), msg: "Validation failed: category must be one of: bug suggestion complaint other"},
		"list index":   {raw: url.QueryEscape(`[{"category":"bug","content":"Crash on login"},{"category":"bug","content":"x"}]`), msg: "Validation failed: [1].content must be at least 5 characters"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			env := do(t, e, postParam(tc.raw))

			assert.Equal(t, 400, env.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tc.msg, env.Msg)
			assert.Equal(t, "null", string(env.Data))
		})
	}
}

func TestCreateFeedback_ServiceFailureIsGeneric(t *testing.T) {
	fb := newFakeFeedback()
	fb.createErr = errors.New("pool exhausted on 10.0.0.5")
	e := newTestEcho(newTestServer(t), fb)

	raw := url.QueryEscape(`{"category":"bug","content":"Crash on login"}`)
	env := do(t, e, postParam(raw))

	assert.Equal(t, 500, env.Code)
	assert.Equal(t, "Internal Server Error", env.Msg)
	assert.Equal(t, "null", string(env.Data))
}

func TestListFeedback(t *testing.T) {
	fb := newFakeFeedback()
	e := newTestEcho(newTestServer(t), fb)

	env := do(t, e, httptest.NewRequest(http.MethodGet, "/feedback", nil))
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, model.ListFeedbackQuery{}, fb.lastQuery)

	var page model.FeedbackPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)

	target := "/feedback?" + url.Values{param.Name: {url.QueryEscape(`{"page":3,"limit":50}`)}}.Encode()
	env = do(t, e, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, model.ListFeedbackQuery{Page: 3, Limit: 50}, fb.lastQuery)
}

func TestListFeedback_RejectsList(t *testing.T) {
	e := newTestEcho(newTestServer(t), newFakeFeedback())

	target := "/feedback?" + url.Values{param.Name: {`[{"page":1}]`}}.Encode()
	env := do(t, e, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "param must be a single object", env.Msg)
}

func TestListFeedback_HugePageIsBadRequest(t *testing.T) {
	fb := newFakeFeedback()
	e := newTestEcho(newTestServer(t), fb)

	target := "/feedback?" + url.Values{param.Name: {`{"page":9223372036854775807,"limit":100}`}}.Encode()
	env := do(t, e, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, 400, env.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed: page must not exceed 1000000", env.Msg)
	assert.Equal(t, model.ListFeedbackQuery{}, fb.lastQuery)
}

func TestGetFeedback(t *testing.T) {
	fb := newFakeFeedback()
	e := newTestEcho(newTestServer(t), fb)

	stored, err := fb.Create(context.Background(), "user_1", []model.CreateFeedbackPayload{
		{Category: model.FeedbackCategoryComplaint, Content: "Delivery was late"},
	})
	require.NoError(t, err)

	env := do(t, e, httptest.NewRequest(http.MethodGet, "/feedback/"+stored[0].ID.String(), nil))
	assert.Equal(t, 200, env.Code)

	env = do(t, e, httptest.NewRequest(http.MethodGet, "/feedback/"+uuid.NewString(), nil))
	assert.Equal(t, 404, env.Code)
	assert.Equal(t, "Feedback not found", env.Msg)

	env = do(t, e, httptest.NewRequest(http.MethodGet, "/feedback/not-a-uuid", nil))
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "id must be a valid UUID", env.Msg)
}

func TestCheckHealth(t *testing.T) {
	s := newTestServer(t)
	e := echo.New()

	h := &HealthHandler{Handler: NewHandler(s), checks: []healthCheck{
		{name: "database", probe: func(context.Context) error { return nil }},
	}}

	rec := httptest.NewRecorder()
	require.NoError(t, h.CheckHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	h.checks = append(h.checks, healthCheck{name: "redis", probe: func(context.Context) error {
		return errors.New("connection refused")
	}})

	rec = httptest.NewRecorder()
	require.NoError(t, h.CheckHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsHandler(t *testing.T) {
	s := newTestServer(t)
	s.Metrics.ObserveEnvelope(200, true)

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, NewMetricsHandler(s).Serve(e.NewContext(httptest.NewRequest(http.MethodGet, "/metrics", nil), rec)))

	assert.Contains(t, rec.Body.String(), `mobile_api_envelopes_total{code="200",success="true"} 1`)
}
