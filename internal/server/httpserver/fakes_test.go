package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/dmitrijs2005/orio/internal/server/session"
	"github.com/stretchr/testify/require"
)

// --- identity ---

type fakeAccount struct {
	password string
	in       services.RegisterInput
}

type fakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: map[string]*fakeAccount{}}
}

func (f *fakeIdentity) Register(_ context.Context, in services.RegisterInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.UserID == "" || in.Password == "" {
		return "", common.NewUserError(common.ErrorValidation, services.MsgCredentialsRequired)
	}
	if in.Password != in.PasswordRepeat {
		return "", common.NewUserError(common.ErrorValidation, services.MsgPasswordMismatch)
	}
	if _, ok := f.accounts[in.UserID]; ok {
		return "", common.NewUserError(common.ErrorConflict, services.MsgUserExists)
	}
	f.accounts[in.UserID] = &fakeAccount{password: in.Password, in: in}
	return in.UserID, nil
}

func (f *fakeIdentity) Login(_ context.Context, userID, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		return common.NewUserError(common.ErrorNotFound, services.MsgUserNotRegistered)
	}
	if a.password != password {
		return common.NewUserError(common.ErrorUnauthorized, services.MsgWrongPassword)
	}
	return nil
}

func (f *fakeIdentity) BeginRecovery(_ context.Context, userID string) (*services.RecoveryQuestions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		return nil, common.NewUserError(common.ErrorNotFound, services.MsgUserNotFound)
	}
	return &services.RecoveryQuestions{Question1: a.in.Question1, Question2: a.in.Question2}, nil
}

func (f *fakeIdentity) CompleteRecovery(_ context.Context, target, a1, a2, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if target == "" {
		return common.NewUserError(common.ErrorState, services.MsgNoRecoveryPending)
	}
	a, ok := f.accounts[target]
	if !ok {
		return common.NewUserError(common.ErrorNotFound, services.MsgUserNotFound)
	}
	if !strings.EqualFold(a.in.Answer1, a1) || !strings.EqualFold(a.in.Answer2, a2) {
		return common.NewUserError(common.ErrorUnauthorized, services.MsgWrongAnswers)
	}
	a.password = newPassword
	return nil
}

// --- reports ---

type fakeReports struct {
	last      services.SubmitInput
	lastImage []byte
	result    *services.SubmitResult
	err       error
	listOut   []models.UserReport
	listUser  string
}

func (f *fakeReports) Submit(_ context.Context, in services.SubmitInput) (*services.SubmitResult, error) {
	f.last = in
	if in.Image != nil {
		f.lastImage, _ = io.ReadAll(in.Image.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	res := &services.SubmitResult{ObjectID: "123456", ReportID: "654321"}
	if in.Image != nil {
		res.ImagePath = "/uploads/tok_" + in.Image.Filename
	}
	return res, nil
}

func (f *fakeReports) ListMine(_ context.Context, userID string) ([]models.UserReport, error) {
	f.listUser = userID
	return f.listOut, nil
}

// --- search & catalogs ---

type fakeSearch struct {
	last services.SearchQuery
	out  []models.ObjectSummary
	err  error
}

func (f *fakeSearch) Search(_ context.Context, q services.SearchQuery) ([]models.ObjectSummary, error) {
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	if f.out == nil {
		return []models.ObjectSummary{}, nil
	}
	return f.out, nil
}

type fakeCatalogs struct{}

func (fakeCatalogs) Categories(context.Context) ([]string, error) { return models.DefaultCategories, nil }
func (fakeCatalogs) States(context.Context) ([]string, error)     { return models.DefaultStates, nil }

// --- images ---

type fakeImages struct {
	files map[string][]byte
}

func (f *fakeImages) Save(_ context.Context, name, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.files[name] = data
	return nil
}

func (f *fakeImages) Open(_ context.Context, name string) (io.ReadCloser, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeImages) Delete(_ context.Context, name string) error {
	delete(f.files, name)
	return nil
}

// --- harness ---

type testEnv struct {
	server   *Server
	http     *httptest.Server
	client   *http.Client
	identity *fakeIdentity
	reports  *fakeReports
	search   *fakeSearch
	images   *fakeImages
	pingErr  error
}

func newTestEnv(t *testing.T, production bool) *testEnv {
	t.Helper()

	env := &testEnv{
		identity: newFakeIdentity(),
		reports:  &fakeReports{},
		search:   &fakeSearch{},
		images:   &fakeImages{files: map[string][]byte{}},
	}

	env.server = NewServer(
		Options{Address: "127.0.0.1:0", StaticImgDir: t.TempDir(), Production: production},
		logging.Nop(),
		session.NewManager("test-secret", time.Hour, false),
		Services{Identity: env.identity, Reports: env.reports, Search: env.search, Catalogs: fakeCatalogs{}},
		env.images,
		func(context.Context) error { return env.pingErr },
	)

	env.http = httptest.NewServer(env.server.Handler())
	t.Cleanup(env.http.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	env.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return env
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.http.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.client.PostForm(e.http.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) postMultipart(t *testing.T, path string, fields map[string]string, fileName string, fileData []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("imagen", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.http.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) loginAs(t *testing.T, userID string) {
	t.Helper()
	e.identity.accounts[userID] = &fakeAccount{password: "pw", in: services.RegisterInput{UserID: userID}}
	resp := e.postForm(t, "/inicio", url.Values{"id_usuario": {userID}, "contrasena": {"pw"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
