// Package clock abstrae el reloj del sistema. Cada invocación del motor de
// pronóstico toma un único "ahora" al inicio, de modo que un cálculo de varios
// pasos sea internamente consistente aunque el reloj de pared avance a mitad
// de la llamada.
package clock

import "time"

// Clock devuelve la hora actual.
type Clock interface {
	Now() time.Time
}

// System implementa Clock con time.Now (en UTC).
type System struct{}

func NewSystem() System { return System{} }

func (System) Now() time.Time { return time.Now().UTC() }
