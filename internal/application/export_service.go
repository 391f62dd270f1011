package application

import (
	"fmt"

	"nexuslink/internal/models"
	"nexuslink/internal/repository"

	"github.com/xuri/excelize/v2"
)

type ExportServiceImpl struct {
	users  repository.User
	logger Logger
}

func NewExportServiceImpl(users repository.User, logger Logger) *ExportServiceImpl {
	return &ExportServiceImpl{users: users, logger: logger}
}

var exportPlatforms = []string{
	models.PlatformDiscord,
	models.PlatformTwitch,
	models.PlatformMinecraft,
	models.PlatformSteam64,
}

// LinkedAccountsReport renders every user record into a one-sheet Excel
// workbook, one column per known platform.
func (s *ExportServiceImpl) LinkedAccountsReport() ([]byte, error) {
	records, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load user records: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Linked Accounts"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := append([]string{"Record ID"}, exportPlatforms...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, record := range records {
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		f.SetCellValue(sheet, cell, record.ID)

		for col, platform := range exportPlatforms {
			cell, _ := excelize.CoordinatesToCellName(col+2, row+2)
			f.SetCellValue(sheet, cell, linkCell(record.Links[platform]))
		}
	}

	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "E", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	s.logger.Info("exported %d user records", len(records))
	return buf.Bytes(), nil
}

func linkCell(link models.PlatformLink) string {
	if link.IsPending() {
		return fmt.Sprintf("pending: %s (via %s)", link.Pending.ClaimedName, link.Pending.SourceUsername)
	}
	if link.PlatformID == "" {
		return ""
	}
	if link.Username != "" && link.Username != link.PlatformID {
		return fmt.Sprintf("%s (%s)", link.Username, link.PlatformID)
	}
	return link.PlatformID
}
