package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:        id,
			StartedAt: time.Now().UTC().Truncate(time.Second),
			Config:    domain.NewConfig(),
			Stages:    []string{domain.LabelBegin},
			Steps: []domain.StepRecord{
				{Stage: domain.LabelBegin, Command: "read_verilog", Args: "-lib techlib/cells_sim.v"},
			},
			Phase:  domain.PhaseDone,
			Status: domain.StatusSucceeded,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)
		report.Config.Top = "cpu"

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, "cpu", loaded.Config.Top)
		assert.Equal(t, domain.StatusSucceeded, loaded.Status)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, "read_verilog", loaded.Steps[0].Command)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newReport(reportID))
		require.NoError(t, err)

		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		_ = store.Save(ctx, newReport(id1))
		_ = store.Save(ctx, newReport(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		reports, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, reports, id1)
		assert.Contains(t, reports, id2)
	})
}
