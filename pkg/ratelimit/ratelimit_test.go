package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_PermiteHastaElMaximo(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("1.2.3.4:/api/checkout")
		assert.True(t, ok, "petición %d dentro del límite debe permitirse", i+1)
	}

	ok, retry := l.Allow("1.2.3.4:/api/checkout")
	assert.False(t, ok, "la cuarta petición debe rechazarse")
	assert.Greater(t, retry, time.Duration(0), "debe informar cuándo reintentar")
}

func TestLimiter_ClavesIndependientes(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	ok, _ := l.Allow("cliente-a")
	assert.True(t, ok)
	ok, _ = l.Allow("cliente-a")
	assert.False(t, ok)

	// Otro cliente no se ve afectado
	ok, _ = l.Allow("cliente-b")
	assert.True(t, ok)
}

func TestLimiter_VentanaDeslizante(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	ok, _ := l.Allow("k")
	assert.True(t, ok)

	// 30s después, segunda petición: ventana llena
	*now = now.Add(30 * time.Second)
	ok, _ = l.Allow("k")
	assert.True(t, ok)
	ok, _ = l.Allow("k")
	assert.False(t, ok)

	// 31s más: la primera petición sale de la ventana y se libera un cupo,
	// pero la segunda sigue dentro (la ventana desliza, no se reinicia completa)
	*now = now.Add(31 * time.Second)
	ok, _ = l.Allow("k")
	assert.True(t, ok)
	ok, _ = l.Allow("k")
	assert.False(t, ok)
}

func TestLimiter_PurgeEliminaClavesMuertas(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)

	l.Allow("efimero")
	*now = now.Add(2 * time.Minute)
	l.Purge()

	l.mu.Lock()
	_, exists := l.hits["efimero"]
	l.mu.Unlock()
	assert.False(t, exists, "clave sin peticiones vivas debe purgarse")
}
