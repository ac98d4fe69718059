package entity

import "time"

// Brand marca o fabricante de un producto.
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
