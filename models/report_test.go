package models

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReport_ConcurrentRecording(t *testing.T) {
	report := NewRunReport("test-run", time.Now())

	// Фазы очистки пишут в отчет параллельно
	var wg sync.WaitGroup
	entities := []string{TableCrmCustInfo, TableCrmPrdInfo, TableCrmSalesDetails}
	for _, entity := range entities {
		wg.Add(1)
		go func(entity string) {
			defer wg.Done()
			report.RecordCounts(entity, 100, 95, 5)
			for i := 0; i < 5; i++ {
				report.AddRejection(Rejection{Table: entity, Reason: RejectMissingBusinessKey})
				report.AddWarning(Warning{Kind: WarningDuplicateKey, Entity: entity})
			}
		}(entity)
	}
	wg.Wait()

	assert.Equal(t, 15, report.TotalRejected())
	assert.Equal(t, 15, report.TotalWarnings())
	for _, entity := range entities {
		counts := report.CountsFor(entity)
		assert.Equal(t, 100, counts.Extracted)
		assert.Equal(t, 95, counts.Cleansed)
		assert.Equal(t, 5, counts.Rejected)
	}
}

func TestCompressReport_Roundtrip(t *testing.T) {
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	report := NewRunReport("8b41e1c2-0000-4000-8000-000000000001", start)
	report.EndTime = start.Add(42 * time.Second)
	report.RecordCounts(TableCrmCustInfo, 18494, 18484, 10)
	report.AddRejection(Rejection{Table: TableCrmSalesDetails, BusinessKey: "SO43697", Reason: RejectUnrepairableMeasure})
	report.AddWarning(Warning{Kind: WarningUnresolvedReference, Entity: "fact_sales", Key: "BK-UNKNOWN"})

	blob, err := CompressReport(report)
	require.NoError(t, err)

	restored, err := DecompressReport(blob)
	require.NoError(t, err)

	assert.Equal(t, report.RunID, restored.RunID)
	assert.True(t, report.StartTime.Equal(restored.StartTime))
	require.Len(t, restored.Rejections, 1)
	assert.Equal(t, "SO43697", restored.Rejections[0].BusinessKey)
	require.Len(t, restored.Warnings, 1)
	assert.Equal(t, WarningUnresolvedReference, restored.Warnings[0].Kind)

	counts := restored.Counts[TableCrmCustInfo]
	require.NotNil(t, counts)
	assert.Equal(t, 18494, counts.Extracted)
	assert.Equal(t, 10, counts.Rejected)
}

func TestDecompressReport_RejectsCorruptBlob(t *testing.T) {
	_, err := DecompressReport([]byte("not a snappy blob"))
	assert.Error(t, err)
}
