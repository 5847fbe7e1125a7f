package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/catalogs"
	"github.com/dmitrijs2005/orio/internal/server/repositories/objects"
	"github.com/dmitrijs2005/orio/internal/server/repositories/reports"
	"github.com/dmitrijs2005/orio/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	getErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; ok {
		return common.ErrorConflict
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

// --- objects ---

type fakeObjectsRepo struct {
	objects    map[string]models.Object
	collisions int
	createErr  error
	searchOut  []models.ObjectSummary
	searchErr  error
	lastFilter models.SearchFilter
}

func newFakeObjectsRepo() *fakeObjectsRepo {
	return &fakeObjectsRepo{objects: map[string]models.Object{}}
}

func (f *fakeObjectsRepo) Create(_ context.Context, o *models.Object) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.collisions > 0 {
		f.collisions--
		return common.ErrorConflict
	}
	if _, ok := f.objects[o.ID]; ok {
		return common.ErrorConflict
	}
	f.objects[o.ID] = *o
	return nil
}

func (f *fakeObjectsRepo) Search(_ context.Context, filter models.SearchFilter) ([]models.ObjectSummary, error) {
	f.lastFilter = filter
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchOut == nil {
		return []models.ObjectSummary{}, nil
	}
	return f.searchOut, nil
}

// --- reports ---

type storedReport struct {
	kind   models.ReportKind
	report models.Report
}

type fakeReportsRepo struct {
	objects    *fakeObjectsRepo
	reports    []storedReport
	collisions int
	createErr  error
	dupErr     error
	listOut    []models.UserReport
}

func (f *fakeReportsRepo) Create(_ context.Context, kind models.ReportKind, r *models.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.collisions > 0 {
		f.collisions--
		return common.ErrorConflict
	}
	f.reports = append(f.reports, storedReport{kind: kind, report: *r})
	return nil
}

func (f *fakeReportsRepo) FoundDuplicateExists(_ context.Context, userID, name, color, category string) (bool, error) {
	if f.dupErr != nil {
		return false, f.dupErr
	}
	for _, r := range f.reports {
		if r.kind != models.ReportFound || r.report.UserID != userID {
			continue
		}
		o := f.objects.objects[r.report.ObjectID]
		if o.Name == name && o.Color == color && o.Category == category {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportsRepo) ListByUser(_ context.Context, userID string) ([]models.UserReport, error) {
	return f.listOut, nil
}

// --- catalogs ---

type fakeCatalogsRepo struct {
	values    map[models.CatalogKind][]string
	listCalls int
	ensured   []string
	listErr   error
}

func newFakeCatalogsRepo() *fakeCatalogsRepo {
	return &fakeCatalogsRepo{values: map[models.CatalogKind][]string{}}
}

func (f *fakeCatalogsRepo) List(_ context.Context, kind models.CatalogKind) ([]string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string{}, f.values[kind]...), nil
}

func (f *fakeCatalogsRepo) EnsureDefaults(ctx context.Context, kind models.CatalogKind, values []string) error {
	for _, v := range values {
		if err := f.Ensure(ctx, kind, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCatalogsRepo) Ensure(_ context.Context, kind models.CatalogKind, value string) error {
	f.ensured = append(f.ensured, string(kind)+":"+value)
	for _, v := range f.values[kind] {
		if v == value {
			return nil
		}
	}
	f.values[kind] = append(f.values[kind], value)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	o *fakeObjectsRepo
	r *fakeReportsRepo
	c *fakeCatalogsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	o := newFakeObjectsRepo()
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		o: o,
		r: &fakeReportsRepo{objects: o},
		c: newFakeCatalogsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Objects(dbx.DBTX) objects.Repository          { return m.o }
func (m *fakeRepoManager) Reports(dbx.DBTX) reports.Repository          { return m.r }
func (m *fakeRepoManager) Catalogs(dbx.DBTX) catalogs.Repository        { return m.c }

// --- image store ---

type fakeStore struct {
	files     map[string][]byte
	deleted   []string
	saveErr   error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (f *fakeStore) Save(_ context.Context, name, _ string, body io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.files[name] = data
	return nil
}

func (f *fakeStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, name)
	return nil
}
