package session

import (
	"context"
	"sync"
)

// MemoryVault is a map-backed Vault for tests and throwaway sessions.
type MemoryVault struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{values: map[string]string{}}
}

func (v *MemoryVault) Get(_ context.Context, key string) (string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.values[key]
	return val, ok, nil
}

func (v *MemoryVault) SetMany(_ context.Context, values map[string]string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for k, val := range values {
		v.values[k] = val
	}
	return nil
}

func (v *MemoryVault) Delete(_ context.Context, keys ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, k := range keys {
		delete(v.values, k)
	}
	return nil
}

func (v *MemoryVault) Close() error { return nil }

// Len reports how many keys are held; test helper.
func (v *MemoryVault) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.values)
}
