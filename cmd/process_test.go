package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/converter"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/pkg/utils"
)

func TestTally(t *testing.T) {
	var summary utils.ProcessingSummary

	tally(&summary, converter.Result{
		FilePath:   "a.pdf",
		OutputFile: "processed/a.xlsx",
		Status:     converter.StatusSuccess,
		Stats:      converter.ProcessingStats{LineItems: 3, ValidationWarnings: 1, ProcessingTime: time.Second},
	})
	tally(&summary, converter.Result{
		FilePath:   "b.pdf",
		OutputFile: "processed/b.xlsx",
		Status:     converter.StatusDegraded,
		Stats:      converter.ProcessingStats{LineItems: 2},
	})
	tally(&summary, converter.Result{
		FilePath: "c.pdf",
		Status:   converter.StatusFailed,
		Error:    errors.New("invalid PDF"),
	})
	tally(&summary, converter.Result{FilePath: "d.pdf", Status: converter.StatusFailed})

	assert.Equal(t, 1, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.DegradedFiles)
	assert.Equal(t, 2, summary.FailedFiles)
	assert.Equal(t, 5, summary.TotalLineItems)
	assert.Equal(t, 1, summary.Warnings)
	assert.Len(t, summary.ProcessedFiles, 2)
	assert.Equal(t, converter.StatusDegraded.String(), summary.ProcessedFiles[1].Status)
	assert.Equal(t, []utils.FailedFileInfo{
		{InputFile: "c.pdf", ErrorMessage: "invalid PDF"},
		{InputFile: "d.pdf", ErrorMessage: "unknown error"},
	}, summary.FailedFilesList)
}
