package application

import (
	"context"

	"nexuslink/internal/repository"
	"nexuslink/internal/resolver"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type LinkService interface {
	LinkAccount(ctx context.Context, req LinkRequest) LinkResult
}

type ExportService interface {
	LinkedAccountsReport() ([]byte, error)
}

type Service struct {
	LinkService   LinkService
	ExportService ExportService
}

func NewService(repos *repository.Repository, resolvers resolver.Registry, logger Logger) *Service {
	return &Service{
		LinkService:   NewLinkServiceImpl(repos.User, resolvers, logger),
		ExportService: NewExportServiceImpl(repos.User, logger),
	}
}
