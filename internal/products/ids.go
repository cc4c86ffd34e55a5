package products

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator entrega ids para productos nuevos.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator genera ids UUID v4. Es el generador por defecto.
type UUIDGenerator struct{}

// NextID implementa IDGenerator.
func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// Sequence es un contador monótono; útil en tests porque es determinista.
type Sequence struct {
	next atomic.Int64
}

// NewSequence crea una secuencia que empieza en start.
func NewSequence(start int64) *Sequence {
	sequence := &Sequence{}
	sequence.next.Store(start)
	return sequence
}

// NextID implementa IDGenerator.
func (sequence *Sequence) NextID() string {
	return strconv.FormatInt(sequence.next.Add(1)-1, 10)
}

const (
	IDStrategyUUID     = "uuid"
	IDStrategySequence = "sequence"
)

// NewIDGenerator arma el generador a partir del nombre configurado.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case IDStrategyUUID, "":
		return UUIDGenerator{}, nil
	case IDStrategySequence:
		return NewSequence(1), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
