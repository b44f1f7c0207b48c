package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvisoryLockKey_EstablePorTenant(t *testing.T) {
	// La regeneración serializa por tenant completo: la clave depende solo del
	// tenant, nunca de la sucursal que disparó el rollup.
	assert.Equal(t, advisoryLockKey("tenant-1"), advisoryLockKey("tenant-1"))
	assert.NotEqual(t, advisoryLockKey("tenant-1"), advisoryLockKey("tenant-2"))
}
