// file: internals/features/reservations/service/locks_test.go
package service

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()
	key := slotKey("E401", "2025-10-15")

	const n = 100
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock(key)
			counter++
			km.Unlock(key)
		}()
	}
	wg.Wait()

	if counter != n {
		t.Errorf("counter = %d, want %d (lost update under the key lock)", counter, n)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := newKeyedMutex()

	// holding one slot must not block another
	km.Lock(slotKey("E401", "2025-10-15"))
	done := make(chan struct{})
	go func() {
		km.Lock(slotKey("E402", "2025-10-15"))
		km.Unlock(slotKey("E402", "2025-10-15"))
		close(done)
	}()
	<-done
	km.Unlock(slotKey("E401", "2025-10-15"))
}

func TestKeyedMutexReleasesIdleEntries(t *testing.T) {
	km := newKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := slotKey("E401", "2025-10-15")
			if i%2 == 0 {
				key = slotKey("E402", "2025-10-16")
			}
			km.Lock(key)
			km.Unlock(key)
		}(i)
	}
	wg.Wait()

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.entries) != 0 {
		t.Errorf("idle entries retained: %d", len(km.entries))
	}
}
