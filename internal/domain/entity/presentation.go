package entity

import "github.com/shopspring/decimal"

// Presentation es un empaque vendible de un producto (ej. caja de 12) con su
// factor de conversión a la unidad base.
type Presentation struct {
	ID               string
	ProductID        string
	UnitID           string
	Kind             string // Caja, Blister, Unidad, etc.
	ConversionFactor decimal.Decimal
	Active           bool
}

// Factor devuelve el factor de conversión a unidad base.
// Sin presentación (receptor nil) o con factor inválido, el factor es 1.
func (p *Presentation) Factor() decimal.Decimal {
	if p == nil || !p.ConversionFactor.GreaterThan(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return p.ConversionFactor
}
