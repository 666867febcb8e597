package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
	"github.com/noah-isme/curriculum-scheduler/pkg/export"
	"github.com/noah-isme/curriculum-scheduler/pkg/storage"
)

type exportRunReader interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleRun, error)
}

type exportAssignmentReader interface {
	ListByRun(ctx context.Context, runID string) ([]models.ScheduleRunAssignment, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	Window    scheduler.Window
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

// ExportService renders stored runs into files and signs download links.
type ExportService struct {
	runs        exportRunReader
	assignments exportAssignmentReader
	storage     fileStorage
	renderers   map[models.ExportFormat]datasetRenderer
	signer      *storage.SignedURLSigner
	logger      *zap.Logger
	cfg         ExportConfig
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(runs exportRunReader, assignments exportAssignmentReader, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.Window.End <= cfg.Window.Start {
		cfg.Window = scheduler.DefaultOptions().Window
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		runs:        runs,
		assignments: assignments,
		storage:     store,
		renderers: map[models.ExportFormat]datasetRenderer{
			models.ExportFormatCSV: csv,
			models.ExportFormatPDF: pdf,
		},
		signer: signer,
		logger: logger,
		cfg:    cfg,
	}
}

// ContentType returns the MIME type for a format.
func (s *ExportService) ContentType(format models.ExportFormat) string {
	if r, ok := s.renderers[format]; ok {
		return r.ContentType()
	}
	return "application/octet-stream"
}

// Generate builds the dataset for the job, renders it and stores the file.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	renderer, ok := s.renderers[job.Params.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %s", job.Params.Format)
	}

	run, err := s.runs.FindByID(ctx, job.ScheduleRunID)
	if err != nil {
		return nil, fmt.Errorf("load schedule run %s: %w", job.ScheduleRunID, err)
	}
	rows, err := s.assignments.ListByRun(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("load schedule assignments: %w", err)
	}
	meta, err := run.DecodeMeta()
	if err != nil {
		return nil, err
	}

	dataset, err := s.buildDataset(job, run, rows, meta)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(s.buildFilename(job, run, renderer.Extension()), payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export rendered",
		zap.String("job_id", job.ID),
		zap.String("view", string(job.View)),
		zap.String("format", string(job.Params.Format)),
		zap.Int("rows", len(dataset.Rows)),
	)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ExportJob, run *models.ScheduleRun, ext string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_v%d_%s_%s.%s", job.View, sanitizeFilename(run.Term), run.Version, shortID(job.ID), timestamp, ext)
}

func (s *ExportService) buildDataset(job *models.ExportJob, run *models.ScheduleRun, rows []models.ScheduleRunAssignment, meta models.ScheduleRunMeta) (export.Dataset, error) {
	title := fmt.Sprintf("%s %s v%d", viewTitle(job.View), run.Term, run.Version)
	switch job.View {
	case models.ExportViewAssignments:
		assignments := make([]models.Assignment, 0, len(rows))
		for _, row := range rows {
			if job.Params.SectionID != "" && row.SectionID != job.Params.SectionID {
				continue
			}
			if job.Params.FacultyID != "" && row.FacultyID != job.Params.FacultyID {
				continue
			}
			assignments = append(assignments, row.Assignment())
		}
		return export.FromTable(title, assignments)
	case models.ExportViewUnscheduled:
		return export.FromTable(title, nonNil(meta.Unscheduled))
	case models.ExportViewWarnings:
		return export.FromTable(title, nonNil(meta.LoadWarnings))
	case models.ExportViewUtilization:
		report := scheduler.BuildReport(storedReportInput(meta, rows, s.cfg.Window))
		return export.FromTable(title, report.Rooms)
	default:
		return export.Dataset{}, fmt.Errorf("unsupported export view %s", job.View)
	}
}

func viewTitle(view models.ExportView) string {
	switch view {
	case models.ExportViewAssignments:
		return "Assignments"
	case models.ExportViewUnscheduled:
		return "Unscheduled Courses"
	case models.ExportViewWarnings:
		return "Faculty Load Warnings"
	case models.ExportViewUtilization:
		return "Room Utilization"
	default:
		return string(view)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
