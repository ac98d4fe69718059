package entity

import "time"

// Customer cliente de la tienda; opcionalmente asociado a ventas.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
