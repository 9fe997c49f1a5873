package entity

import "time"

// Tipos de documento aceptados para clientes.
const (
	DocumentTypeDNI = "DNI"
	DocumentTypeRUC = "RUC"
)

// Customer representa un cliente registrado en caja.
type Customer struct {
	ID           string
	Name         string
	DocumentID   string // único
	DocumentType string // DNI, RUC
	Phone        string
	Email        string
	Address      string
	Active       bool
	CreatedAt    time.Time
}
