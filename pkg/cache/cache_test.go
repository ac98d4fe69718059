package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, "products:list:limit=20", []byte(`{"items":[]}`), time.Minute)

	got, ok := s.Get(ctx, "products:list:limit=20")
	require.True(t, ok, "la clave recién guardada debe existir")
	assert.Equal(t, []byte(`{"items":[]}`), got)

	_, ok = s.Get(ctx, "products:list:otra")
	assert.False(t, ok, "clave inexistente debe ser miss")
}

func TestMemoryStore_Expiracion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Reloj controlado para no dormir en el test
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set(ctx, "k", []byte("v"), 30*time.Second)

	_, ok := s.Get(ctx, "k")
	require.True(t, ok)

	// Avanzar el reloj más allá del TTL
	now = now.Add(31 * time.Second)
	_, ok = s.Get(ctx, "k")
	assert.False(t, ok, "entrada vencida debe ser miss")
	assert.Equal(t, 0, s.Len(), "la entrada vencida se purga al leerla")
}

func TestMemoryStore_TTLCeroNoGuarda(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Set(ctx, "k", []byte("v"), 0)
	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_DeletePattern_Prefijo(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Set(ctx, "products:list:limit=20", []byte("a"), time.Minute)
	s.Set(ctx, "products:id:123", []byte("b"), time.Minute)
	s.Set(ctx, "customers:list", []byte("c"), time.Minute)

	// Una mutación sobre productos invalida todo el grupo products:*
	s.DeletePattern(ctx, "products:*")

	_, ok := s.Get(ctx, "products:list:limit=20")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "products:id:123")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "customers:list")
	assert.True(t, ok, "otros grupos no deben invalidarse")
}

func TestMemoryStore_DeletePattern_Exacto(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Set(ctx, "products:list", []byte("a"), time.Minute)
	s.Set(ctx, "products:list:limit=20", []byte("b"), time.Minute)

	s.DeletePattern(ctx, "products:list")

	_, ok := s.Get(ctx, "products:list")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "products:list:limit=20")
	assert.True(t, ok, "sin comodín la coincidencia es exacta")
}

// Lecturas y escrituras concurrentes sobre la misma clave no deben corromper
// el mapa (el detector de carreras de `go test -race` vigila este test).
func TestMemoryStore_AccesoConcurrente(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(ctx, "hot", []byte("v"), time.Minute)
			s.Get(ctx, "hot")
			s.DeletePattern(ctx, "hot*")
		}()
	}
	wg.Wait()
}
