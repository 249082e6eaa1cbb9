package storage

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	transactions  map[string]*Transaction
	byFingerprint map[string]int
	accounts      map[int64]*Account
	categories    []*CategoryRecord
	nextAccount   int64

	// Hooks for test assertions
	InsertCalled             bool
	InsertCount              int
	LastInserted             *Transaction
	CountByFingerprintCalled bool
	GetDefaultAccountCalled  bool

	// Error injection for testing error paths
	InsertErr             error
	CountByFingerprintErr error
	GetDefaultAccountErr  error
	ListTransactionsErr   error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing.
// It starts with the seeded "Others" category and no accounts.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions:  make(map[string]*Transaction),
		byFingerprint: make(map[string]int),
		accounts:      make(map[int64]*Account),
		categories: []*CategoryRecord{
			{ID: 1, Name: DefaultCategory, Type: CategoryExpense},
		},
		nextAccount: 1,
	}
}

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// InsertTransaction stores the transaction in memory, enforcing the same
// fingerprint uniqueness the sqlite index provides.
func (m *MockRepository) InsertTransaction(tx *Transaction) error {
	m.InsertCalled = true
	m.LastInserted = tx
	if m.InsertErr != nil {
		return m.InsertErr
	}
	if tx.Fingerprint != "" && m.byFingerprint[tx.Fingerprint] > 0 {
		return ErrDuplicateFingerprint
	}

	// Deep copy to avoid test mutations
	copied := *tx
	m.transactions[tx.ID] = &copied
	if tx.Fingerprint != "" {
		m.byFingerprint[tx.Fingerprint]++
	}
	m.InsertCount++
	return nil
}

// GetTransaction retrieves a transaction from the in-memory map
func (m *MockRepository) GetTransaction(id string) (*Transaction, error) {
	tx, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	return tx, nil
}

// ListTransactions returns all stored transactions matching the filters
func (m *MockRepository) ListTransactions(filters TransactionFilters) ([]*Transaction, error) {
	if m.ListTransactionsErr != nil {
		return nil, m.ListTransactionsErr
	}

	var result []*Transaction
	for _, tx := range m.transactions {
		if filters.Sender != "" && tx.Sender != filters.Sender {
			continue
		}
		if filters.Direction != "" && string(tx.Direction) != filters.Direction {
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}

// CountByFingerprint counts in-memory occurrences
func (m *MockRepository) CountByFingerprint(fingerprint string) (int, error) {
	m.CountByFingerprintCalled = true
	if m.CountByFingerprintErr != nil {
		return 0, m.CountByFingerprintErr
	}
	if fingerprint == "" {
		return 0, nil
	}
	return m.byFingerprint[fingerprint], nil
}

// GetStats aggregates the in-memory transactions
func (m *MockRepository) GetStats() (*Stats, error) {
	stats := &Stats{ByCategory: make(map[string]int)}
	for _, tx := range m.transactions {
		stats.TotalCount++
		stats.ByCategory[tx.Category]++
		switch tx.Direction {
		case "DEBIT":
			stats.DebitCount++
			stats.DebitTotal = stats.DebitTotal.Add(tx.Amount)
		case "CREDIT":
			stats.CreditCount++
			stats.CreditTotal = stats.CreditTotal.Add(tx.Amount)
		}
	}
	return stats, nil
}

// ListAccounts returns all in-memory accounts
func (m *MockRepository) ListAccounts() ([]*Account, error) {
	var accounts []*Account
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// GetDefaultAccount returns the account flagged default, or (nil, nil)
func (m *MockRepository) GetDefaultAccount() (*Account, error) {
	m.GetDefaultAccountCalled = true
	if m.GetDefaultAccountErr != nil {
		return nil, m.GetDefaultAccountErr
	}
	for _, a := range m.accounts {
		if a.IsDefault {
			return a, nil
		}
	}
	return nil, nil
}

// CreateAccount creates an in-memory account
func (m *MockRepository) CreateAccount(name string, isDefault bool) (*Account, error) {
	if isDefault {
		for _, a := range m.accounts {
			a.IsDefault = false
		}
	}
	a := &Account{ID: m.nextAccount, Name: name, IsDefault: isDefault}
	m.accounts[a.ID] = a
	m.nextAccount++
	return a, nil
}

// SetDefaultAccount flips the default flag to the given account
func (m *MockRepository) SetDefaultAccount(id int64) error {
	target, ok := m.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	for _, a := range m.accounts {
		a.IsDefault = false
	}
	target.IsDefault = true
	return nil
}

// ListCategories returns the in-memory categories
func (m *MockRepository) ListCategories() ([]*CategoryRecord, error) {
	return m.categories, nil
}
