package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- Customer row locks ---

// customerLocks provides per-customer mutexes so the in-memory harness
// reproduces SELECT ... FOR UPDATE semantics: a second transaction touching
// the same customer blocks until the first commits or rolls back.
type customerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newCustomerLocks() *customerLocks {
	return &customerLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *customerLocks) acquire(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

// memTx is a pgx.Tx implementation that holds row locks until the
// transaction finishes. Commit and Rollback both release; the engine's
// deferred Rollback after Commit is a no-op.
type memTx struct {
	mu       sync.Mutex
	releases []func()
	done     bool
}

func (t *memTx) hold(release func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		release()
		return
	}
	t.releases = append(t.releases, release)
}

func (t *memTx) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.done = true
	for _, release := range t.releases {
		release()
	}
	t.releases = nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.finish(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.finish(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }

// --- In-Memory Customer Repo ---

type inMemoryCustomerRepo struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer
	order     []uuid.UUID
	locks     *customerLocks
}

func newInMemoryCustomerRepo(locks *customerLocks) *inMemoryCustomerRepo {
	return &inMemoryCustomerRepo{
		customers: make(map[uuid.UUID]*domain.Customer),
		locks:     locks,
	}
}

func (r *inMemoryCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.customers[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *inMemoryCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryCustomerRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok || c.MerchantID != merchantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryCustomerRepo) GetAssignedForUpdate(ctx context.Context, tx pgx.Tx, id, workerID uuid.UUID) (*domain.Customer, error) {
	mtx, ok := tx.(*memTx)
	if !ok {
		return nil, fmt.Errorf("unexpected tx type %T", tx)
	}
	mtx.hold(r.locks.acquire(id))

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok || c.AssignedWorkerID == nil || *c.AssignedWorkerID != workerID || c.Status != domain.CustomerStatusActive {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryCustomerRepo) ApplyBalance(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, newBalance int64, at time.Time, setFirst bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[customerID]
	if !ok {
		return fmt.Errorf("customer not found")
	}
	c.WalletBalance = newBalance
	last := at
	c.LastTransactionDate = &last
	if setFirst {
		first := at
		c.FirstTransactionDate = &first
	}
	c.UpdatedAt = at
	return nil
}

func (r *inMemoryCustomerRepo) UpdateStatus(ctx context.Context, id, merchantID uuid.UUID, status domain.CustomerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok || c.MerchantID != merchantID {
		return fmt.Errorf("customer not found")
	}
	c.Status = status
	return nil
}

func (r *inMemoryCustomerRepo) List(ctx context.Context, params ports.CustomerListParams) ([]domain.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Customer
	for _, id := range r.order {
		c := r.customers[id]
		if params.MerchantID != nil && c.MerchantID != *params.MerchantID {
			continue
		}
		if params.WorkerID != nil && (c.AssignedWorkerID == nil || *c.AssignedWorkerID != *params.WorkerID) {
			continue
		}
		if params.BranchID != nil && c.BranchID != *params.BranchID {
			continue
		}
		if params.Status != nil && c.Status != *params.Status {
			continue
		}
		result = append(result, *c)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryCustomerRepo) CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, c := range r.customers {
		if c.MerchantID == merchantID {
			count++
		}
	}
	return count, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu      sync.RWMutex
	entries []domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *t)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			cp := r.entries[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Transaction, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil || t == nil || t.MerchantID != merchantID {
		return nil, err
	}
	return t, nil
}

func (r *inMemoryTransactionRepo) SumDebitPoints(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, from, to time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for i := range r.entries {
		t := &r.entries[i]
		if t.CustomerID != customerID || t.Type != domain.TransactionTypeDebit {
			continue
		}
		if t.TransactionDate.Before(from) || !t.TransactionDate.Before(to) {
			continue
		}
		sum += t.Points
	}
	return sum, nil
}

func (r *inMemoryTransactionRepo) UpdatePayStatus(ctx context.Context, id uuid.UUID, status domain.PayStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries[i].PayStatus = status
			return nil
		}
	}
	return fmt.Errorf("transaction not found")
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	// newest first, matching the SQL ORDER BY transaction_date DESC
	for i := len(r.entries) - 1; i >= 0; i-- {
		t := &r.entries[i]
		if params.MerchantID != nil && t.MerchantID != *params.MerchantID {
			continue
		}
		if params.CustomerID != nil && t.CustomerID != *params.CustomerID {
			continue
		}
		if params.BranchID != nil && t.BranchID != *params.BranchID {
			continue
		}
		if params.WorkerID != nil && t.WorkerID != *params.WorkerID {
			continue
		}
		if params.Type != nil && t.Type != *params.Type {
			continue
		}
		if params.PayStatus != nil && t.PayStatus != *params.PayStatus {
			continue
		}
		result = append(result, *t)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryTransactionRepo) GetPointsStats(ctx context.Context, merchantID uuid.UUID, periodStart *time.Time) (*ports.PointsStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.PointsStats{
		CashVolume:        decimal.Zero,
		CommissionAccrued: decimal.Zero,
	}
	for i := range r.entries {
		t := &r.entries[i]
		if t.MerchantID != merchantID {
			continue
		}
		if periodStart != nil && t.TransactionDate.Before(*periodStart) {
			continue
		}
		stats.TotalTransactions++
		switch t.Type {
		case domain.TransactionTypeCredit:
			stats.PointsCredited += t.Points
		case domain.TransactionTypeDebit:
			stats.PointsRedeemed += t.Points
		}
		stats.CashVolume = stats.CashVolume.Add(t.CashValue)
		stats.CommissionAccrued = stats.CommissionAccrued.Add(t.Commission)
	}
	return stats, nil
}

// --- In-Memory Settings Repo ---

type inMemorySettingsRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*domain.MerchantSettings // keyed by merchant ID
}

func newInMemorySettingsRepo() *inMemorySettingsRepo {
	return &inMemorySettingsRepo{settings: make(map[uuid.UUID]*domain.MerchantSettings)}
}

func (r *inMemorySettingsRepo) GetOrCreate(ctx context.Context, defaults *domain.MerchantSettings) (*domain.MerchantSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.settings[defaults.MerchantID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *defaults
	r.settings[defaults.MerchantID] = &cp
	result := cp
	return &result, nil
}

func (r *inMemorySettingsRepo) Update(ctx context.Context, s *domain.MerchantSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.settings[s.MerchantID]; !ok {
		return fmt.Errorf("settings not found")
	}
	cp := *s
	r.settings[s.MerchantID] = &cp
	return nil
}

// --- In-Memory Merchant Repo ---

type inMemoryMerchantRepo struct {
	mu        sync.RWMutex
	merchants map[uuid.UUID]*domain.Merchant
	order     []uuid.UUID
}

func newInMemoryMerchantRepo() *inMemoryMerchantRepo {
	return &inMemoryMerchantRepo{merchants: make(map[uuid.UUID]*domain.Merchant)}
}

func (r *inMemoryMerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.merchants {
		if existing.Email == m.Email {
			return fmt.Errorf("email already exists")
		}
	}
	cp := *m
	r.merchants[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return nil
}

func (r *inMemoryMerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *inMemoryMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryMerchantRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MerchantStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.merchants[id]
	if !ok {
		return fmt.Errorf("merchant not found")
	}
	m.Status = status
	return nil
}

func (r *inMemoryMerchantRepo) UpdateCommission(ctx context.Context, id uuid.UUID, percent decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.merchants[id]
	if !ok {
		return fmt.Errorf("merchant not found")
	}
	m.CommissionPercent = percent
	return nil
}

func (r *inMemoryMerchantRepo) List(ctx context.Context, status *domain.MerchantStatus, page, pageSize int) ([]domain.Merchant, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Merchant
	for _, id := range r.order {
		m := r.merchants[id]
		if status != nil && m.Status != *status {
			continue
		}
		result = append(result, *m)
	}
	total := int64(len(result))
	return paginate(result, page, pageSize), total, nil
}

// --- In-Memory Worker Repo ---

type inMemoryWorkerRepo struct {
	mu      sync.RWMutex
	workers map[uuid.UUID]*domain.Worker
	order   []uuid.UUID
}

func newInMemoryWorkerRepo() *inMemoryWorkerRepo {
	return &inMemoryWorkerRepo{workers: make(map[uuid.UUID]*domain.Worker)}
}

func (r *inMemoryWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.workers[w.ID] = &cp
	r.order = append(r.order, w.ID)
	return nil
}

func (r *inMemoryWorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWorkerRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	if !ok || w.MerchantID != merchantID {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWorkerRepo) GetByEmail(ctx context.Context, email string) (*domain.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.workers {
		if w.Email == email {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWorkerRepo) Update(ctx context.Context, w *domain.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workers[w.ID]; !ok {
		return fmt.Errorf("worker not found")
	}
	cp := *w
	r.workers[w.ID] = &cp
	return nil
}

func (r *inMemoryWorkerRepo) List(ctx context.Context, merchantID uuid.UUID, status *domain.WorkerStatus, page, pageSize int) ([]domain.Worker, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Worker
	for _, id := range r.order {
		w := r.workers[id]
		if w.MerchantID != merchantID {
			continue
		}
		if status != nil && w.Status != *status {
			continue
		}
		result = append(result, *w)
	}
	total := int64(len(result))
	return paginate(result, page, pageSize), total, nil
}

// --- In-Memory Branch Repo ---

type inMemoryBranchRepo struct {
	mu       sync.RWMutex
	branches map[uuid.UUID]*domain.Branch
	order    []uuid.UUID
}

func newInMemoryBranchRepo() *inMemoryBranchRepo {
	return &inMemoryBranchRepo{branches: make(map[uuid.UUID]*domain.Branch)}
}

func (r *inMemoryBranchRepo) Create(ctx context.Context, b *domain.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.branches[b.ID] = &cp
	r.order = append(r.order, b.ID)
	return nil
}

func (r *inMemoryBranchRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.branches[id]
	if !ok || b.MerchantID != merchantID {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *inMemoryBranchRepo) Update(ctx context.Context, b *domain.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.branches[b.ID]; !ok {
		return fmt.Errorf("branch not found")
	}
	cp := *b
	r.branches[b.ID] = &cp
	return nil
}

func (r *inMemoryBranchRepo) List(ctx context.Context, merchantID uuid.UUID, page, pageSize int) ([]domain.Branch, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Branch
	for _, id := range r.order {
		b := r.branches[id]
		if b.MerchantID != merchantID {
			continue
		}
		result = append(result, *b)
	}
	total := int64(len(result))
	return paginate(result, page, pageSize), total, nil
}

// --- In-Memory Admin Repo ---

type inMemoryAdminRepo struct {
	mu     sync.RWMutex
	admins map[uuid.UUID]*domain.Admin
}

func newInMemoryAdminRepo() *inMemoryAdminRepo {
	return &inMemoryAdminRepo{admins: make(map[uuid.UUID]*domain.Admin)}
}

func (r *inMemoryAdminRepo) seed(a *domain.Admin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.admins[a.ID] = &cp
}

func (r *inMemoryAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
