package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"charitydash/internal"
	"charitydash/internal/storage"
	"charitydash/internal/store"
	"charitydash/internal/upload"
	"charitydash/pkg/types"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "admin"
	testPassword = "s3cret-pass"
)

type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, username, password string) bool {
	return username == testUsername && password == testPassword
}

type testEnv struct {
	service   *Service
	handler   http.Handler
	events    *store.EventRepository
	partners  *store.PartnerRepository
	uploadDir string
}

func newTestEnv(t *testing.T, mutate ...func(*types.Config)) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	root := t.TempDir()
	config := &types.Config{
		Environment:       "development",
		DataDir:           filepath.Join(root, "data"),
		UploadBackend:     types.UploadBackendLocal,
		UploadDir:         filepath.Join(root, "uploads"),
		UploadURLPrefix:   "/uploads/events",
		SessionDir:        filepath.Join(root, "sessions"),
		SessionCookieName: "test_session",
		SessionMaxAgeSec:  3600,
	}
	for _, fn := range mutate {
		fn(config)
	}

	sessions, err := NewSessionManager(config, logger)
	require.NoError(t, err)

	local, err := storage.NewLocalStorage(config.UploadDir, config.UploadURLPrefix)
	require.NoError(t, err)

	eventsRepo := store.NewEventRepository(logger, config.DataDir)
	partnersRepo := store.NewPartnerRepository(logger, config.DataDir)

	service, err := New(
		config,
		logger,
		sessions,
		staticVerifier{},
		eventsRepo,
		partnersRepo,
		store.NewStatsService(eventsRepo, partnersRepo),
		upload.NewHandler(logger, local, upload.DefaultConstraints()),
	)
	require.NoError(t, err)

	return &testEnv{
		service:   service,
		handler:   service.Handler(),
		events:    eventsRepo,
		partners:  partnersRepo,
		uploadDir: config.UploadDir,
	}
}

func (e *testEnv) do(r *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, r)
	return rec
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// login returns the session cookie of a successful login.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := e.do(loginRequest(testUsername, testPassword))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == "test_session" {
			return c
		}
	}

	t.Fatal("login did not set a session cookie")
	return nil
}

type testImage struct {
	name        string
	contentType string
	body        string
}

func addEventRequest(t *testing.T, values map[string]string, images ...testImage) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}

	for _, img := range images {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, img.name))
		header.Set("Content-Type", img.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(img.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/dashboard/add-event", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func validEventValues() map[string]string {
	return map[string]string{
		"title":         "  Winter clothing drive  ",
		"description":   "Distributing coats and blankets to families.",
		"date":          "2024-01-15",
		"people_helped": "120",
		"location":      "Riyadh",
		"budget":        "2500.50",
		"partners":      "Red Crescent",
	}
}

func uploadedFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestAddEvent_UnauthenticatedIsRedirectedAndNothingIsStored(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(addEventRequest(t, validEventValues(), testImage{"a.png", "image/png", "png"}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"))
	assert.Empty(t, env.events.Events(context.Background()))
	assert.Empty(t, uploadedFiles(t, env.uploadDir))
}

func TestDashboard_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/dashboard", "/dashboard/add-event", "/dashboard/api/stats", "/dashboard/api/events"} {
		rec := env.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"), path)
	}
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]struct {
		username, password string
		marker             string
	}{
		"missing username": {"", testPassword, "missing_fields"},
		"missing password": {testUsername, "", "missing_fields"},
		"wrong password":   {testUsername, "nope", "invalid_credentials"},
		"wrong case":       {"Admin", testPassword, "invalid_credentials"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := env.do(loginRequest(tc.username, tc.password))
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login?error="+tc.marker, rec.Header().Get("Location"))
		})
	}
}

func TestLogin_SessionGrantsDashboardAccess(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Log out (admin)")

	rec = env.do(httptest.NewRequest(http.MethodGet, "/login", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLogin_ReturnsToRequestedDashboardPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/add-partner", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var redirect *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == internal.COOKIE_REDIRECT_NAME {
			redirect = c
		}
	}
	require.NotNil(t, redirect)

	rec = env.do(loginRequest(testUsername, testPassword), redirect)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/add-partner", rec.Header().Get("Location"))
}

func TestLogin_RedirectCookieCannotLeaveSite(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(loginRequest(testUsername, testPassword), &http.Cookie{Name: internal.COOKIE_REDIRECT_NAME, Value: "//evil.example"})
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, func(c *types.Config) { c.LoginRateLimit = 2 })

	for i := 0; i < 2; i++ {
		rec := env.do(loginRequest(testUsername, "wrong"))
		require.Equal(t, http.StatusSeeOther, rec.Code)
	}

	rec := env.do(loginRequest(testUsername, "wrong"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLogout_EndsSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/login/logout", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?message=logged_out", rec.Header().Get("Location"))

	// the old cookie points at a session file that no longer exists
	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"))
}

func TestSession_ExpiresAfterMaxAge(t *testing.T) {
	env := newTestEnv(t)

	// logged in two hours ago against a one hour max age
	env.service.sessions.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	cookie := env.login(t)
	env.service.sessions.now = time.Now

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard/api/events", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"))
}

func TestSession_StillValidJustBeforeMaxAge(t *testing.T) {
	env := newTestEnv(t)

	env.service.sessions.now = func() time.Time { return time.Now().Add(-59 * time.Minute) }
	cookie := env.login(t)
	env.service.sessions.now = time.Now

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func sessionFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), sessionFilePrefix) {
			names = append(names, entry.Name())
		}
	}
	return names
}

func TestLogin_RotationErasesPreviousSessionFile(t *testing.T) {
	env := newTestEnv(t)
	dir := env.service.sessions.dir

	first := env.login(t)
	require.Len(t, sessionFiles(t, dir), 1)

	rec := env.do(loginRequest(testUsername, testPassword), first)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var second *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test_session" {
			second = c
		}
	}
	require.NotNil(t, second)
	assert.Len(t, sessionFiles(t, dir), 1)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), first)
	assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_PrunesExpiredSessionFiles(t *testing.T) {
	env := newTestEnv(t)
	dir := env.service.sessions.dir

	stale := filepath.Join(dir, sessionFilePrefix+"STALE")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o600))
	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	recent := filepath.Join(dir, sessionFilePrefix+"RECENT")
	require.NoError(t, os.WriteFile(recent, []byte("x"), 0o600))

	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("x"), 0o600))
	require.NoError(t, os.Chtimes(unrelated, old, old))

	env.login(t)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, recent)
	assert.FileExists(t, unrelated)
}

func TestLogout_WithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/login/logout", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?message=logged_out", rec.Header().Get("Location"))
}

func TestAddEvent_StoresEventAndImages(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(addEventRequest(t, validEventValues(),
		testImage{"coats.png", "image/png", "png-bytes"},
		testImage{"family.jpg", "image/jpeg", "jpeg-bytes"},
	), cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?success=event_added", rec.Header().Get("Location"))

	events := env.events.Events(context.Background())
	require.Len(t, events, 1)

	event := events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "Winter clothing drive", event.Title)
	assert.Equal(t, types.FlexInt(120), event.PeopleHelped)
	assert.Equal(t, types.FlexFloat(2500.50), event.Budget)
	assert.Equal(t, testUsername, event.AddedBy)
	require.Len(t, event.Images, 2)
	assert.Equal(t, "coats.png", event.Images[0].OriginalName)
	assert.True(t, strings.HasPrefix(event.Images[0].Path, "/uploads/events/event-"))

	assert.Len(t, uploadedFiles(t, env.uploadDir), 2)

	rec = env.do(httptest.NewRequest(http.MethodGet, event.Images[0].Path, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestAddEvent_WithoutImages(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	values := validEventValues()
	delete(values, "budget")

	rec := env.do(addEventRequest(t, values), cookie)
	assert.Equal(t, "/dashboard?success=event_added", rec.Header().Get("Location"))

	events := env.events.Events(context.Background())
	require.Len(t, events, 1)
	assert.NotNil(t, events[0].Images)
	assert.Empty(t, events[0].Images)
	assert.Equal(t, types.FlexFloat(0), events[0].Budget)
}

func TestAddEvent_NonImageRejectsWholeBatch(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(addEventRequest(t, validEventValues(),
		testImage{"a.png", "image/png", "png"},
		testImage{"b.jpg", "image/jpeg", "jpg"},
		testImage{"c.pdf", "application/pdf", "pdf"},
	), cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/add-event?error=invalid_file_type", rec.Header().Get("Location"))
	assert.Empty(t, env.events.Events(context.Background()))
	assert.Empty(t, uploadedFiles(t, env.uploadDir))
}

func TestAddEvent_ValidationFailureStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	values := validEventValues()
	values["title"] = "ab"
	values["people_helped"] = "-4"

	rec := env.do(addEventRequest(t, values, testImage{"a.png", "image/png", "png"}), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/add-event", location.Path)
	assert.Contains(t, location.Query().Get("error"), "title")
	assert.Contains(t, location.Query().Get("error"), "people_helped")

	assert.Empty(t, env.events.Events(context.Background()))
	assert.Empty(t, uploadedFiles(t, env.uploadDir))
}

func TestAddEvent_SaveFailureCleansUpImages(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	// a directory where events.json belongs makes the rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(env.service.config.DataDir, "events.json"), 0o755))

	rec := env.do(addEventRequest(t, validEventValues(), testImage{"a.png", "image/png", "png"}), cookie)
	assert.Equal(t, "/dashboard/add-event?error=save_failed", rec.Header().Get("Location"))
	assert.Empty(t, uploadedFiles(t, env.uploadDir))
}

func TestAddPartner(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	form := url.Values{}
	form.Set("name", "Food Bank")
	form.Set("type", "NGO")
	form.Set("description", "Provides weekly food baskets.")
	form.Set("phone", "0551234567")
	form.Set("email", "info@foodbank.org")

	r := httptest.NewRequest(http.MethodPost, "/dashboard/add-partner", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := env.do(r, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?success=partner_added", rec.Header().Get("Location"))

	partners := env.partners.Partners(context.Background())
	require.Len(t, partners, 1)
	assert.Equal(t, "Food Bank", partners[0].Name)
	assert.Equal(t, testUsername, partners[0].AddedBy)
	assert.Equal(t, "", partners[0].Notes)
}

func TestAddPartner_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	form := url.Values{}
	form.Set("name", "Food Bank")
	form.Set("type", "NGO")
	form.Set("description", "Provides weekly food baskets.")
	form.Set("email", "not-an-email")

	r := httptest.NewRequest(http.MethodPost, "/dashboard/add-partner", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := env.do(r, cookie)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/add-partner", location.Path)
	assert.Contains(t, location.Query().Get("error"), "email")
	assert.Empty(t, env.partners.Partners(context.Background()))
}

func TestDeleteEvent_RemovesRecordAndImages(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	env.do(addEventRequest(t, validEventValues(), testImage{"a.png", "image/png", "png"}), cookie)
	events := env.events.Events(context.Background())
	require.Len(t, events, 1)
	require.Len(t, uploadedFiles(t, env.uploadDir), 1)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/dashboard/event/"+events[0].ID+"/delete", nil), cookie)
	assert.Equal(t, "/dashboard?success=event_deleted", rec.Header().Get("Location"))
	assert.Empty(t, env.events.Events(context.Background()))
	assert.Empty(t, uploadedFiles(t, env.uploadDir))

	rec = env.do(httptest.NewRequest(http.MethodPost, "/dashboard/event/"+events[0].ID+"/delete", nil), cookie)
	assert.Equal(t, "/dashboard?error=event_not_found", rec.Header().Get("Location"))
}

func TestDeletePartner(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	partner, err := env.partners.CreatePartner(context.Background(), &types.Partner{Name: "Food Bank"})
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/dashboard/partner/"+partner.ID+"/delete", nil), cookie)
	assert.Equal(t, "/dashboard?success=partner_deleted", rec.Header().Get("Location"))
	assert.Empty(t, env.partners.Partners(context.Background()))
}

func TestPublicAPI(t *testing.T) {
	env := newTestEnv(t)

	event, err := env.events.CreateEvent(context.Background(), &types.Event{Title: "Iftar", PeopleHelped: 40})
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/public/events", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var events []*types.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/public/event/"+event.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/public/event/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Event not found"}`, rec.Body.String())

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/public/partners", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDashboardStatsAPI(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	ctx := context.Background()
	_, err := env.events.CreateEvent(ctx, &types.Event{Title: "One", PeopleHelped: 5})
	require.NoError(t, err)
	_, err = env.events.CreateEvent(ctx, &types.Event{Title: "Two", PeopleHelped: 10})
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/api/stats", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalEvents)
	assert.Equal(t, 0, stats.TotalPartners)
	assert.Equal(t, int64(15), stats.TotalPeopleHelped)
	require.Len(t, stats.RecentEvents, 2)
	assert.Equal(t, "Two", stats.RecentEvents[0].Title)
}

func TestDashboardListAPIs(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	ctx := context.Background()
	event, err := env.events.CreateEvent(ctx, &types.Event{Title: "Iftar"})
	require.NoError(t, err)
	partner, err := env.partners.CreatePartner(ctx, &types.Partner{Name: "UNICEF", Type: "ngo"})
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/api/events", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var events []*types.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, "Iftar", events[0].Title)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard/api/partners", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var partners []*types.Partner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &partners))
	require.Len(t, partners, 1)
	assert.Equal(t, partner.ID, partners[0].ID)
	assert.Equal(t, "UNICEF", partners[0].Name)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard/api/partners", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestPages(t *testing.T) {
	env := newTestEnv(t)

	event, err := env.events.CreateEvent(context.Background(), &types.Event{Title: "Orphan support day", Date: "2024-03-01"})
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Orphan support day")

	rec = env.do(httptest.NewRequest(http.MethodGet, "/event/"+event.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Orphan support day")

	rec = env.do(httptest.NewRequest(http.MethodGet, "/event/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = env.do(httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStripTrailingSlash(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/login/?error=unauthorized", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/login?error=unauthorized", rec.Header().Get("Location"))
}

func TestNewSessionManager_RequiresKeysOutsideDevelopment(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewSessionManager(&types.Config{
		Environment: "production",
		SessionDir:  t.TempDir(),
	}, logger)
	assert.Error(t, err)
}
