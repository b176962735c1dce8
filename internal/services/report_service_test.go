package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseReportFormat(t *testing.T) {
	format, err := ParseReportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ReportXLSX, format)

	format, err = ParseReportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, ReportCSV, format)

	_, err = ParseReportFormat("pdf")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func seedReport(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	user := env.createUser(t, "report@example.com")

	done := env.createInterview(t, user.ID, "SE", 180, 900)
	_, err := env.services.Generation.Generate(ctx, done.ID)
	require.NoError(t, err)
	_, err = env.services.Interviews.Complete(ctx, done.ID, &CompleteInterviewRequest{ActualDuration: ptr(420)})
	require.NoError(t, err)

	env.createInterview(t, user.ID, "PM", 60, 300)
}

func TestReportService_CSV(t *testing.T) {
	env := newTestEnv(t)
	seedReport(t, env)

	report, err := env.services.Reports.ExportInterviews(context.Background(), ReportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", report.ContentType)
	assert.True(t, strings.HasPrefix(report.FileName, "interviews-"))
	assert.True(t, strings.HasSuffix(report.FileName, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(report.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, reportHeaders, records[0])

	byRole := map[string][]string{}
	for _, record := range records[1:] {
		byRole[record[2]] = record
	}
	se := byRole["SE"]
	require.NotNil(t, se)
	assert.Equal(t, "report@example.com", se[1])
	assert.Equal(t, string(models.InterviewCompleted), se[3])
	assert.NotEmpty(t, se[5])
	assert.Equal(t, "420", se[6])
	assert.Equal(t, "5", se[7])
	assert.Equal(t, "80", se[8])

	pm := byRole["PM"]
	require.NotNil(t, pm)
	assert.Equal(t, string(models.InterviewInProgress), pm[3])
	assert.Empty(t, pm[5])
	assert.Equal(t, "0", pm[7])
	assert.Empty(t, pm[8])
}

func TestReportService_Excel(t *testing.T) {
	env := newTestEnv(t)
	seedReport(t, env)

	report, err := env.services.Reports.ExportInterviews(context.Background(), ReportXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(report.FileName, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(report.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reportSheetName}, f.GetSheetList())
	rows, err := f.GetRows(reportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, reportHeaders, rows[0])
}

func TestReportService_NoInterviews(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.services.Reports.ExportInterviews(context.Background(), ReportCSV)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(report.Data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
