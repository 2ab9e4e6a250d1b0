package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockflow/internal/model"
	"stockflow/internal/repository"
)

func TestSectorService_ListSectorsOrderedByName(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewSectorService(repository.NewSectorRepository(gormDB), nil)

	sectors, err := svc.ListSectors(context.Background())
	require.NoError(t, err)
	require.Len(t, sectors, len(model.DefaultSectors))

	for i := 1; i < len(sectors); i++ {
		assert.LessOrEqual(t, sectors[i-1].Name, sectors[i].Name)
	}
}
