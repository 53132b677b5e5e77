package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/synthmc/pkg/adapters/memory"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunReportStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	report := &domain.Report{ID: "r1", Stages: []string{"begin"}}
	require.NoError(t, store.Save(ctx, report))
	report.Stages[0] = "mutated"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"begin"}, loaded.Stages)
}
