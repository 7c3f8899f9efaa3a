package addressbook

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/domain/pool"
	"github.com/gyrostable/clpkit/internal/usecase"
	"gopkg.in/yaml.v3"
)

// OverrideFileName is read from the project root and merged over the built-in book
const OverrideFileName = "addresses.yaml"

//go:embed defaults.yaml
var defaultBook []byte

// StoreAdapter loads the built-in address book plus the project's overrides
type StoreAdapter struct {
	projectRoot string

	once sync.Once
	book *pool.AddressBook
	err  error
}

// NewStoreAdapter creates a new address book store
func NewStoreAdapter(cfg *config.RuntimeConfig) *StoreAdapter {
	return &StoreAdapter{projectRoot: cfg.ProjectRoot}
}

// Load returns the merged address book. It is read once per process.
func (s *StoreAdapter) Load(ctx context.Context) (*pool.AddressBook, error) {
	s.once.Do(func() {
		s.book, s.err = s.load()
	})
	return s.book, s.err
}

func (s *StoreAdapter) load() (*pool.AddressBook, error) {
	book, err := parseBook(defaultBook)
	if err != nil {
		return nil, fmt.Errorf("built-in address book: %w", err)
	}

	path := filepath.Join(s.projectRoot, OverrideFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return book, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	override, err := parseBook(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OverrideFileName, err)
	}
	book.Merge(override)
	return book, nil
}

func parseBook(data []byte) (*pool.AddressBook, error) {
	var book pool.AddressBook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse address book: %w", err)
	}
	if book.Chains == nil {
		book.Chains = make(map[uint64]*pool.ChainAddresses)
	}
	if book.Decimals == nil {
		book.Decimals = make(map[string]int)
	}
	return &book, nil
}

// Ensure the adapter implements the interface
var _ usecase.AddressBookStore = (*StoreAdapter)(nil)
