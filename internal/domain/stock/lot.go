package stock

import (
	"fmt"
	"sync/atomic"
	"time"
)

var lotSeq atomic.Uint64

// NewLotCode genera un código de lote para una línea de compra sin lote.
// Formato L<yyyyMMddHHmmss><seq>: el timestamp a segundo es legible para bodega
// y el contador monotónico evita colisiones entre líneas del mismo instante.
func NewLotCode(now time.Time) string {
	n := lotSeq.Add(1) % 1000
	return fmt.Sprintf("L%s%03d", now.Format("20060102150405"), n)
}
