package ratelimit

import (
	"sync"
	"time"
)

// Limiter limitador de peticiones por ventana deslizante. Guarda por clave
// (cliente+ruta) los timestamps de las peticiones dentro de la ventana y los
// poda en cada consulta. Mutex obligatorio: peticiones concurrentes del mismo
// cliente compiten por la misma clave.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time // reemplazable en tests
}

// New construye el limitador: max peticiones por ventana window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow registra un intento para la clave y devuelve si se permite.
// Podar + contar + registrar ocurre en una sola sección crítica, de modo que
// una petición abortada nunca deja estado a medias. RetryAfter indica cuánto
// falta para que la petición más antigua salga de la ventana.
func (l *Limiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.max {
		l.hits[key] = kept
		return false, kept[0].Sub(cutoff)
	}

	l.hits[key] = append(kept, now)
	return true, 0
}

// Purge elimina claves sin peticiones vivas; pensado para llamarse periódicamente
// y acotar el mapa cuando hay muchos clientes efímeros.
func (l *Limiter) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, times := range l.hits {
		alive := false
		for _, ts := range times {
			if ts.After(cutoff) {
				alive = true
				break
			}
		}
		if !alive {
			delete(l.hits, key)
		}
	}
}
