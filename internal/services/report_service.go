package services

import (
	"fmt"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ReportService exports a generated release to an Excel workbook, one sheet
// of commits and one of contributors, for use as a build artifact
type ReportService struct {
	log *logrus.Logger
}

// NewReportService creates a new ReportService
func NewReportService(log *logrus.Logger) *ReportService {
	return &ReportService{log: log}
}

// Export writes the release report to path
func (s *ReportService) Export(release *models.Release, classification *Classification, path string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", "Commits"); err != nil {
		return fmt.Errorf("failed to create commits sheet: %w", err)
	}
	if err := s.writeCommits(file, classification); err != nil {
		return err
	}

	if _, err := file.NewSheet("Contributors"); err != nil {
		return fmt.Errorf("failed to create contributors sheet: %w", err)
	}
	if err := s.writeContributors(file, classification.Contributors); err != nil {
		return err
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"tag":  release.TagName,
		"path": path,
	}).Info("Release report exported")

	return nil
}

func (s *ReportService) writeCommits(file *excelize.File, classification *Classification) error {
	headers := []string{"SHA", "Type", "Scope", "Subject", "Breaking", "Pull Requests"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue("Commits", cell, header); err != nil {
			return err
		}
	}

	row := 2
	write := func(entries []Entry) error {
		for _, entry := range entries {
			record := entry.Record
			values := []interface{}{
				record.Commit.ShortSHA(),
				string(record.Type),
				record.Scope,
				record.Subject,
				record.Breaking,
				formatPullRequests(record.PullRequests),
			}
			for i, value := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := file.SetCellValue("Commits", cell, value); err != nil {
					return err
				}
			}
			row++
		}
		return nil
	}

	for _, taxonomy := range models.Taxonomy {
		if err := write(classification.ByType[taxonomy.Key]); err != nil {
			return err
		}
	}
	return write(classification.Uncategorized)
}

func (s *ReportService) writeContributors(file *excelize.File, contributors []*models.Contributor) error {
	headers := []string{"Login", "Name", "Profile"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue("Contributors", cell, header); err != nil {
			return err
		}
	}

	for row, contributor := range contributors {
		values := []interface{}{contributor.Login, contributor.DisplayName(), contributor.HTMLURL}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			if err := file.SetCellValue("Contributors", cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
