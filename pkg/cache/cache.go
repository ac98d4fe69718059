package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Store contrato del cache de respuestas. Se inyecta en los call sites (nunca un
// singleton de paquete) para poder cambiar la implementación en memoria por una
// distribuida sin tocar a los consumidores.
type Store interface {
	// Get devuelve el valor y true si la clave existe y no ha expirado.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set guarda el valor con el TTL indicado (ttl <= 0 no guarda nada).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// DeletePattern elimina toda clave que coincida con el patrón ("prefijo*" o clave exacta).
	DeletePattern(ctx context.Context, pattern string)
}

type entry struct {
	data   []byte
	expiry time.Time
}

// MemoryStore cache TTL en memoria del proceso. El mapa se protege con mutex:
// peticiones concurrentes hacen read-modify-write sobre la misma clave.
// La decisión de leer/guardar ocurre completa dentro de la sección crítica.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time // reemplazable en tests
}

// NewMemoryStore construye el cache en memoria.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get devuelve el valor si existe y no expiró. Las entradas vencidas se eliminan al leerlas.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiry) {
		delete(s.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set guarda el valor con TTL. Última escritura gana por clave.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{data: value, expiry: s.now().Add(ttl)}
}

// DeletePattern elimina las claves que coinciden con el patrón. Un "*" final
// actúa como comodín de prefijo; sin comodín la coincidencia es exacta.
func (s *MemoryStore) DeletePattern(_ context.Context, pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		for k := range s.entries {
			if strings.HasPrefix(k, prefix) {
				delete(s.entries, k)
			}
		}
		return
	}
	delete(s.entries, pattern)
}

// Len cantidad de entradas vivas o vencidas aún no purgadas (para tests y métricas).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
