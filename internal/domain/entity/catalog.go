package entity

import "time"

// Entidades de catálogo referenciadas por el motor de compras/ventas.
// Su administración (CRUD) vive fuera de este servicio.

// Product es un producto del catálogo.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// Branch es una sucursal; el stock y las ventas se particionan por sucursal.
type Branch struct {
	ID     string
	Name   string
	Active bool
}

// Supplier es un proveedor de compras.
type Supplier struct {
	ID     string
	Name   string
	TaxID  string
	Active bool
}

// Client es un cliente de ventas, con su tipo para resolución de reglas de precio.
type Client struct {
	ID         string
	Name       string
	ClientType string
	Active     bool
}
