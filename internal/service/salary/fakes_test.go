package salary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/shopspring/decimal"
)

const testTenant = "tenant-1"

func tenantCtx() context.Context {
	return tenant.WithTenant(context.Background(), testTenant)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// ===== SETTINGS REPOSITORY =====

type memSettingsRepo struct {
	mu       sync.Mutex
	versions map[string][]salary.Settings
	seq      int
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{versions: map[string][]salary.Settings{}}
}

func (r *memSettingsRepo) GetActive(ctx context.Context, tenantID string) (salary.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.versions[tenantID] {
		if s.IsActive {
			return s.WithCategoriesFrom(s), nil
		}
	}
	return salary.Settings{}, salary.ErrSettingsNotFound
}

func (r *memSettingsRepo) CreateActive(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.versions[s.TenantID] {
		if v.IsActive {
			return salary.Settings{}, salary.ErrActiveSettingsExists
		}
	}
	r.seq++
	s.ID = fmt.Sprintf("settings-%d", r.seq)
	s.IsActive = true
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.versions[s.TenantID] = append(r.versions[s.TenantID], s)
	return s, nil
}

func (r *memSettingsRepo) UpdateActive(ctx context.Context, s salary.Settings, categories ...salary.Category) (salary.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.versions[s.TenantID] {
		if v.ID == s.ID && v.IsActive {
			s.UpdatedAt = time.Now()
			r.versions[s.TenantID][i] = s
			return s, nil
		}
	}
	return salary.Settings{}, salary.ErrSettingsNotFound
}

func (r *memSettingsRepo) Reset(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxVersion := 0
	for i, v := range r.versions[s.TenantID] {
		r.versions[s.TenantID][i].IsActive = false
		if v.Version > maxVersion {
			maxVersion = v.Version
		}
	}
	r.seq++
	s.ID = fmt.Sprintf("settings-%d", r.seq)
	s.Version = maxVersion + 1
	s.IsActive = true
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.versions[s.TenantID] = append(r.versions[s.TenantID], s)
	return s, nil
}

// ===== SLIP REPOSITORY =====

type memSlipRepo struct {
	mu      sync.Mutex
	slips   map[string]salary.Slip
	upserts int
}

func newMemSlipRepo() *memSlipRepo {
	return &memSlipRepo{slips: map[string]salary.Slip{}}
}

func slipKey(tenantID, workerID string, month, year int) string {
	return fmt.Sprintf("%s/%s/%d/%d", tenantID, workerID, year, month)
}

func (r *memSlipRepo) GetByPeriod(ctx context.Context, tenantID, workerID string, month, year int) (salary.Slip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slips[slipKey(tenantID, workerID, month, year)]
	if !ok {
		return salary.Slip{}, salary.ErrSlipNotFound
	}
	return s, nil
}

func (r *memSlipRepo) Upsert(ctx context.Context, slip salary.Slip) (salary.Slip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slipKey(slip.TenantID, slip.WorkerID, slip.Month, slip.Year)
	now := time.Now()
	if prev, ok := r.slips[key]; ok {
		slip.ID = prev.ID
		slip.CreatedAt = prev.CreatedAt
	} else {
		slip.ID = fmt.Sprintf("slip-%d", len(r.slips)+1)
		slip.CreatedAt = now
	}
	slip.UpdatedAt = now
	r.slips[key] = slip
	r.upserts++
	return slip, nil
}

func (r *memSlipRepo) ListByPeriod(ctx context.Context, tenantID string, month, year int) ([]salary.Slip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []salary.Slip
	for _, s := range r.slips {
		if s.TenantID == tenantID && s.Month == month && s.Year == year {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerName < out[j].WorkerName })
	return out, nil
}

// ===== WORKER / ACTIVITY =====

type memWorkerRepo struct {
	workers []worker.Worker
}

func (r *memWorkerRepo) GetByID(ctx context.Context, tenantID, id string) (worker.Worker, error) {
	for _, w := range r.workers {
		if w.TenantID == tenantID && w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *memWorkerRepo) ListActive(ctx context.Context, tenantID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range r.workers {
		if w.TenantID == tenantID && w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memWorkerRepo) ListTenants(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, w := range r.workers {
		if w.IsActive && !seen[w.TenantID] {
			seen[w.TenantID] = true
			out = append(out, w.TenantID)
		}
	}
	return out, nil
}

type memActivityRepo struct {
	washes map[string][]time.Time
	jobs   map[string][]time.Time
	err    error
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{washes: map[string][]time.Time{}, jobs: map[string][]time.Time{}}
}

// addWashes records n one-off washes on the given day, one minute apart from 08:00.
func (r *memActivityRepo) addWashes(workerID string, day time.Time, n int) {
	for i := 0; i < n; i++ {
		r.washes[workerID] = append(r.washes[workerID], day.Add(time.Duration(8*60+i)*time.Minute))
	}
}

func (r *memActivityRepo) addJobs(workerID string, day time.Time, n int) {
	for i := 0; i < n; i++ {
		r.jobs[workerID] = append(r.jobs[workerID], day.Add(time.Duration(8*60+i)*time.Minute))
	}
}

func (r *memActivityRepo) OneWashTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.washes[workerID], nil
}

func (r *memActivityRepo) CompletedJobTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.jobs[workerID], nil
}

// ===== FILE STORAGE =====

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.files[path] = data
	return path, nil
}

func (s *memStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://files.test/" + path, nil
}

func (s *memStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

// ===== FIXTURE =====

type slipFixture struct {
	settingsRepo *memSettingsRepo
	slipRepo     *memSlipRepo
	workerRepo   *memWorkerRepo
	activityRepo *memActivityRepo
	settings     salary.SettingsService
	slips        salary.SlipService
	exports      salary.ExportService
	storage      *memStorage
}

func newSlipFixture(workers ...worker.Worker) *slipFixture {
	f := &slipFixture{
		settingsRepo: newMemSettingsRepo(),
		slipRepo:     newMemSlipRepo(),
		workerRepo:   &memWorkerRepo{workers: workers},
		activityRepo: newMemActivityRepo(),
		storage:      newMemStorage(),
	}
	f.settings = NewSettingsService(f.settingsRepo, salary.DefaultSettings())
	f.slips = NewSlipService(
		f.settings,
		f.slipRepo,
		f.workerRepo,
		NewAggregator(f.activityRepo, time.UTC),
		NewCalculator(),
		NewPriorBalanceResolver(f.slipRepo),
	)
	f.exports = NewExportService(f.slips, f.storage, "AED")
	return f
}
