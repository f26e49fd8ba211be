package ports

import "frota/internal/domain"

// ReportWriter persists a finalized BatchReport
type ReportWriter interface {
	Write(report *domain.BatchReport, path string) error
}
