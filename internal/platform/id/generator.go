package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for request and job correlation.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// Static always returns the same id. Tests use it to assert headers.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
