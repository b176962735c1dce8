package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const reportSheetName = "Interviews"

var reportHeaders = []string{
	"Interview ID", "User Email", "Role", "Status", "Started At", "Completed At",
	"Actual Duration (s)", "Questions", "Overall Score",
}

type reportService struct {
	repo   repositories.Repository
	logger *ServiceLogger
	clock  clock
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: NewServiceLogger(logger, "reports"),
	}
}

func (s *reportService) ExportInterviews(ctx context.Context, format ReportFormat) (report *Report, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "export", "interviews", 0, started, err) }()

	rows, err := s.collectRows(ctx)
	if err != nil {
		return nil, err
	}

	stamp := s.clock.now().Format("20060102-150405")
	switch format {
	case ReportCSV:
		data, err := exportInterviewsCSV(rows)
		if err != nil {
			return nil, err
		}
		return &Report{
			FileName:    fmt.Sprintf("interviews-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ReportXLSX:
		data, err := exportInterviewsExcel(rows)
		if err != nil {
			return nil, err
		}
		return &Report{
			FileName:    fmt.Sprintf("interviews-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, ErrInvalidFormat
	}
}

func (s *reportService) collectRows(ctx context.Context) ([]models.InterviewReportRow, error) {
	interviews, _, err := s.repo.Interviews().List(ctx, repositories.InterviewFilters{})
	if err != nil {
		return nil, repoError(err, nil, "list interviews")
	}
	if len(interviews) == 0 {
		return nil, nil
	}

	interviewIDs := make([]uint, 0, len(interviews))
	userIDs := make([]uint, 0, len(interviews))
	seenUsers := map[uint]bool{}
	for _, interview := range interviews {
		interviewIDs = append(interviewIDs, interview.ID)
		if !seenUsers[interview.UserID] {
			seenUsers[interview.UserID] = true
			userIDs = append(userIDs, interview.UserID)
		}
	}

	users, err := s.repo.Users().GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, repoError(err, nil, "get users")
	}
	emails := make(map[uint]string, len(users))
	for _, user := range users {
		emails[user.ID] = user.Email
	}

	questionCounts, err := s.repo.Questions().CountByInterviews(ctx, interviewIDs)
	if err != nil {
		return nil, repoError(err, nil, "count questions")
	}
	evaluations, err := s.repo.Evaluations().GetByInterviews(ctx, interviewIDs)
	if err != nil {
		return nil, repoError(err, nil, "get evaluations")
	}

	rows := make([]models.InterviewReportRow, 0, len(interviews))
	for _, interview := range interviews {
		row := models.InterviewReportRow{
			InterviewID:    interview.ID,
			UserEmail:      emails[interview.UserID],
			Role:           interview.Role,
			Status:         interview.Status,
			StartedAt:      interview.StartedAt.UTC().Format(time.RFC3339),
			ActualDuration: interview.ActualDuration,
			QuestionCount:  questionCounts[interview.ID],
		}
		if interview.CompletedAt != nil {
			row.CompletedAt = interview.CompletedAt.UTC().Format(time.RFC3339)
		}
		if evaluation, ok := evaluations[interview.ID]; ok {
			row.OverallScore = intPtr(evaluation.OverallScore)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func reportRecord(row models.InterviewReportRow) []string {
	return []string{
		strconv.FormatUint(uint64(row.InterviewID), 10),
		row.UserEmail,
		row.Role,
		string(row.Status),
		row.StartedAt,
		row.CompletedAt,
		optionalInt(row.ActualDuration),
		strconv.Itoa(row.QuestionCount),
		optionalInt(row.OverallScore),
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func exportInterviewsCSV(rows []models.InterviewReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(reportRecord(row)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func exportInterviewsExcel(rows []models.InterviewReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook has exactly one
	if err := f.SetSheetName(f.GetSheetName(0), reportSheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write Excel header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.InterviewID, row.UserEmail, row.Role, string(row.Status), row.StartedAt, row.CompletedAt,
			optionalCell(row.ActualDuration), row.QuestionCount, optionalCell(row.OverallScore),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(reportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write Excel row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func optionalCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
