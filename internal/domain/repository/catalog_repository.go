package repository

import "github.com/jcastillo-dev/pos-backoffice/internal/domain/entity"

// Puertos de solo lectura sobre el catálogo; el CRUD vive en otro servicio.

// ProductRepository lectura de productos.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}

// BranchRepository lectura de sucursales.
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
}

// PresentationRepository lectura de presentaciones (factor de conversión).
type PresentationRepository interface {
	GetByID(id string) (*entity.Presentation, error)
}
