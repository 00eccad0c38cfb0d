package stock

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLotCode_Formato(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 45, 0, time.UTC)
	code := NewLotCode(now)

	assert.True(t, strings.HasPrefix(code, "L20260315103045"))
	assert.Len(t, code, 18)
}

func TestNewLotCode_SinColisionesEnElMismoInstante(t *testing.T) {
	now := time.Now()
	const n = 100

	var mu sync.Mutex
	seen := make(map[string]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := NewLotCode(now)
			mu.Lock()
			seen[code] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n, "cada lote generado en el mismo segundo debe ser único")
}
