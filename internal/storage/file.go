package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

// FileStorage persists the catalog and the ledger as two JSON documents.
// Writes go through a temp file and a rename so a crash mid-write never
// leaves a truncated document behind.
type FileStorage struct {
	productsPath string
	usersPath    string
	mu           sync.Mutex
}

// NewFileStorage creates a file-backed storage.
func NewFileStorage(productsPath, usersPath string) *FileStorage {
	return &FileStorage{
		productsPath: productsPath,
		usersPath:    usersPath,
	}
}

// LoadCatalog reads the products document. The key order of the JSON
// object is the catalog's insertion order, so decoding has to walk the
// token stream instead of unmarshalling into a map. A missing file seeds
// the built-in defaults.
func (s *FileStorage) LoadCatalog(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.productsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.productsPath, err)
	}
	return decodeOrderedCatalog(data)
}

// SaveCatalog rewrites the products document, preserving insertion order.
func (s *FileStorage) SaveCatalog(ctx context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encodeOrderedCatalog(products)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.productsPath, data)
}

// LoadUsers reads the user ledger document. A bare integer instead of an
// account object is a legacy format that recorded only the total; it is
// upgraded to an account with an empty history.
func (s *FileStorage) LoadUsers(ctx context.Context) (map[string]*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]*domain.UserAccount)

	data, err := os.ReadFile(s.usersPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return users, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.usersPath, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.usersPath, err)
	}

	for id, msg := range raw {
		var acc domain.UserAccount
		if err := json.Unmarshal(msg, &acc); err != nil {
			var total int
			if err := json.Unmarshal(msg, &total); err != nil {
				return nil, fmt.Errorf("failed to parse account %q: %w", id, err)
			}
			acc = domain.UserAccount{Total: total}
		}
		if acc.History == nil {
			acc.History = []domain.ConsumptionEntry{}
		}
		account := acc
		users[id] = &account
	}
	return users, nil
}

// SaveUsers rewrites the user ledger document in full.
func (s *FileStorage) SaveUsers(ctx context.Context, users map[string]*domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.usersPath, data)
}

// Close implements Storage; a file store has nothing to release.
func (s *FileStorage) Close() error {
	return nil
}

func decodeOrderedCatalog(data []byte) ([]domain.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("catalog document is not a JSON object")
	}

	var products []domain.Product
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("catalog key is not a string")
		}
		var kcal int
		if err := dec.Decode(&kcal); err != nil {
			return nil, fmt.Errorf("invalid calorie value for %q: %w", name, err)
		}
		products = append(products, domain.Product{Name: domain.NormalizeName(name), Kcal: kcal})
	}
	return products, nil
}

func encodeOrderedCatalog(products []domain.Product) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, p := range products {
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "  %s: %d", name, p.Kcal)
		if i < len(products)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
