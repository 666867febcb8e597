package service

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/noah-isme/curriculum-scheduler/internal/dto"
	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
	appErrors "github.com/noah-isme/curriculum-scheduler/pkg/errors"
)

type scheduleRunStore interface {
	CreateVersioned(ctx context.Context, exec sqlx.ExtContext, run *models.ScheduleRun) error
	ListByTerm(ctx context.Context, term string) ([]models.ScheduleRun, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleRun, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleRunStatus) error
	ArchivePublished(ctx context.Context, exec sqlx.ExtContext, term, keepID string) error
}

type scheduleAssignmentStore interface {
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, runID string, assignments []models.Assignment) error
	ListByRun(ctx context.Context, runID string) ([]models.ScheduleRunAssignment, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type resultCache interface {
	Lookup(ctx context.Context, fingerprint string, dest *scheduler.Result) bool
	Store(ctx context.Context, fingerprint string, result *scheduler.Result)
}

type runObserver interface {
	ObserveSchedulerRun(outcome string, duration time.Duration, assignments, unscheduled int)
	ObserveDBQuery(label string, duration time.Duration)
}

// ScheduleGeneratorService runs the engine on inline snapshots and manages stored runs.
type ScheduleGeneratorService struct {
	runs        scheduleRunStore
	assignments scheduleAssignmentStore
	tx          txProvider
	cache       resultCache
	metrics     runObserver
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ScheduleGeneratorConfig
	store       *proposalStore
}

// ScheduleGeneratorConfig governs generator behaviour.
type ScheduleGeneratorConfig struct {
	ProposalTTL time.Duration
	Options     scheduler.Options
}

// NewScheduleGeneratorService wires scheduler dependencies. Cache and metrics are optional.
func NewScheduleGeneratorService(
	runs scheduleRunStore,
	assignments scheduleAssignmentStore,
	tx txProvider,
	cache resultCache,
	metrics runObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleGeneratorConfig,
) *ScheduleGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.Options.Bounds.Max == 0 {
		cfg.Options = scheduler.DefaultOptions()
	}
	return &ScheduleGeneratorService{
		runs:        runs,
		assignments: assignments,
		tx:          tx,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		store:       newProposalStore(cfg.ProposalTTL),
	}
}

// Fingerprint hashes the engine input and policy. Identical snapshots share a fingerprint.
func Fingerprint(in scheduler.Input, opts scheduler.Options) (string, error) {
	payload, err := json.Marshal(struct {
		Input   scheduler.Input   `json:"input"`
		Options scheduler.Options `json:"options"`
	}{in, opts})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Generate runs the engine on the request snapshot and holds the result as a proposal.
func (s *ScheduleGeneratorService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	opts := s.cfg.Options
	if req.Term != "" {
		opts.Term = req.Term
	}
	if req.Seed != nil {
		opts.RotatorSeed = *req.Seed
	}

	input := req.Input()
	snap, cfgErrs, err := scheduler.Prepare(input, opts)
	if err != nil {
		if errors.Is(err, scheduler.ErrAmbiguousTerm) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "snapshot spans multiple terms; set term to choose one")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to prepare snapshot")
	}

	fingerprint, err := Fingerprint(input, opts)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fingerprint snapshot")
	}

	var result scheduler.Result
	cached := s.lookup(ctx, fingerprint, &result)
	if !cached {
		start := time.Now()
		fresh, runErr := scheduler.Assemble(scheduler.NewRun(opts), snap)
		if fresh != nil {
			fresh.ConfigErrors = append(cfgErrs, fresh.ConfigErrors...)
		}
		switch {
		case errors.Is(runErr, scheduler.ErrNoSections):
			s.observe("no_sections", time.Since(start), fresh)
			var details []scheduler.ConfigurationError
			if fresh != nil {
				details = fresh.ConfigErrors
			}
			return nil, appErrors.WithDetails(appErrors.ErrNoSections, details)
		case runErr != nil:
			s.observe("error", time.Since(start), fresh)
			return nil, appErrors.Wrap(runErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "schedule engine failed")
		}
		s.observe("ok", time.Since(start), fresh)
		result = *fresh
		if s.cache != nil {
			s.cache.Store(ctx, fingerprint, &result)
		}
	}

	conflicts := scheduler.Audit(result.Assignments)
	if len(conflicts) > 0 {
		s.logger.Error("engine produced conflicting assignments", zap.String("fingerprint", fingerprint), zap.Int("conflicts", len(conflicts)))
	}

	proposal := scheduleProposal{
		ProposalID:  uuid.NewString(),
		Fingerprint: fingerprint,
		Result:      result,
		Rooms:       snap.Rooms,
		Faculty:     snap.Faculty,
		Options:     opts,
		Conflicts:   len(conflicts),
		RequestedAt: time.Now().UTC(),
	}
	s.store.Save(proposal)

	s.logger.Info("schedule proposal generated",
		zap.String("proposal_id", proposal.ProposalID),
		zap.String("term", result.Term),
		zap.Bool("cached", cached),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("unscheduled", len(result.Unscheduled)),
		zap.Int("config_errors", len(result.ConfigErrors)),
	)

	return &dto.GenerateScheduleResponse{
		ProposalID:  proposal.ProposalID,
		Fingerprint: fingerprint,
		Cached:      cached,
		Conflicts:   len(conflicts),
		Result:      &proposal.Result,
	}, nil
}

// Save persists a proposal as a versioned draft run with its assignment rows.
func (s *ScheduleGeneratorService) Save(ctx context.Context, req dto.SaveScheduleRequest) (*dto.SaveScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save schedule payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if proposal.Conflicts > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "proposal contains conflicting assignments")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	metaBytes, err := json.Marshal(proposal.meta())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule metadata")
	}

	start := time.Now()
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	run := &models.ScheduleRun{
		Term:        proposal.Result.Term,
		Status:      models.ScheduleRunStatusDraft,
		Fingerprint: proposal.Fingerprint,
		Meta:        types.JSONText(metaBytes),
	}
	if err = s.runs.CreateVersioned(ctx, tx, run); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule run")
	}
	if err = s.assignments.InsertBatch(ctx, tx, run.ID, proposal.Result.Assignments); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule assignments")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
	}
	s.observeQuery("save_run", time.Since(start))

	s.store.Delete(req.ProposalID)
	s.logger.Info("schedule run saved", zap.String("run_id", run.ID), zap.String("term", run.Term), zap.Int("version", run.Version))
	return &dto.SaveScheduleResponse{ID: run.ID, Term: run.Term, Version: run.Version}, nil
}

// List returns stored runs for a term, newest version first.
func (s *ScheduleGeneratorService) List(ctx context.Context, query dto.ScheduleRunQuery) ([]models.ScheduleRun, error) {
	if query.Term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term is required")
	}
	list, err := s.runs.ListByTerm(ctx, query.Term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule runs")
	}
	return list, nil
}

// GetAssignments returns the stored assignment rows of a run in commit order.
func (s *ScheduleGeneratorService) GetAssignments(ctx context.Context, runID string) ([]models.ScheduleRunAssignment, error) {
	if _, err := s.findRun(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.assignments.ListByRun(ctx, runID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule assignments")
	}
	return rows, nil
}

// Report recomputes utilization, load and timetable views from the stored rows.
func (s *ScheduleGeneratorService) Report(ctx context.Context, runID string) (*dto.ScheduleRunReportResponse, error) {
	run, rows, meta, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	report := scheduler.BuildReport(storedReportInput(meta, rows, s.cfg.Options.Window))
	return &dto.ScheduleRunReportResponse{
		RunID:   run.ID,
		Term:    run.Term,
		Version: run.Version,
		Status:  string(run.Status),
		Report:  report,
	}, nil
}

// Publish marks a draft run as the published schedule of its term and archives the previous one.
func (s *ScheduleGeneratorService) Publish(ctx context.Context, runID string) (*models.ScheduleRun, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	switch run.Status {
	case models.ScheduleRunStatusPublished:
		return nil, appErrors.ErrPublished
	case models.ScheduleRunStatusArchived:
		return nil, appErrors.Clone(appErrors.ErrConflict, "archived runs cannot be published")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.runs.ArchivePublished(ctx, tx, run.Term, run.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive previous schedule")
	}
	if err = s.runs.UpdateStatus(ctx, tx, run.ID, models.ScheduleRunStatusPublished); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish schedule run")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
	}

	run.Status = models.ScheduleRunStatusPublished
	s.logger.Info("schedule run published", zap.String("run_id", run.ID), zap.String("term", run.Term), zap.Int("version", run.Version))
	return run, nil
}

// Delete removes a draft run.
func (s *ScheduleGeneratorService) Delete(ctx context.Context, runID string) error {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status != models.ScheduleRunStatusDraft {
		return appErrors.Clone(appErrors.ErrConflict, "only draft schedule runs can be deleted")
	}
	if err := s.runs.Delete(ctx, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule run")
	}
	return nil
}

// loadRun fetches a run with its rows and decoded meta.
func (s *ScheduleGeneratorService) loadRun(ctx context.Context, runID string) (*models.ScheduleRun, []models.ScheduleRunAssignment, models.ScheduleRunMeta, error) {
	start := time.Now()
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return nil, nil, models.ScheduleRunMeta{}, err
	}
	rows, err := s.assignments.ListByRun(ctx, runID)
	if err != nil {
		return nil, nil, models.ScheduleRunMeta{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule assignments")
	}
	s.observeQuery("load_run", time.Since(start))
	meta, err := run.DecodeMeta()
	if err != nil {
		return nil, nil, models.ScheduleRunMeta{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode schedule run metadata")
	}
	return run, rows, meta, nil
}

// storedReportInput rebuilds the report input of a persisted run. Runs stored
// without a window fall back to the given one.
func storedReportInput(meta models.ScheduleRunMeta, rows []models.ScheduleRunAssignment, fallback scheduler.Window) scheduler.ReportInput {
	window := scheduler.Window{Start: meta.WindowStart, End: meta.WindowEnd}
	if window.End <= window.Start {
		window = fallback
	}
	assignments := make([]models.Assignment, len(rows))
	for i, row := range rows {
		assignments[i] = row.Assignment()
	}
	return scheduler.ReportInput{
		Window:       window,
		Rooms:        meta.Rooms,
		Faculty:      meta.Faculty,
		Sections:     meta.Sections,
		Assignments:  assignments,
		Unscheduled:  len(meta.Unscheduled),
		LoadWarnings: len(meta.LoadWarnings),
	}
}

func (s *ScheduleGeneratorService) findRun(ctx context.Context, runID string) (*models.ScheduleRun, error) {
	if runID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule run id is required")
	}
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule run")
	}
	return run, nil
}

func (s *ScheduleGeneratorService) lookup(ctx context.Context, fingerprint string, dest *scheduler.Result) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Lookup(ctx, fingerprint, dest)
}

func (s *ScheduleGeneratorService) observe(outcome string, duration time.Duration, result *scheduler.Result) {
	if s.metrics == nil {
		return
	}
	var assigned, unscheduled int
	if result != nil {
		assigned, unscheduled = len(result.Assignments), len(result.Unscheduled)
	}
	s.metrics.ObserveSchedulerRun(outcome, duration, assigned, unscheduled)
}

func (s *ScheduleGeneratorService) observeQuery(label string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, duration)
	}
}

type scheduleProposal struct {
	ProposalID  string
	Fingerprint string
	Result      scheduler.Result
	Rooms       []models.Room
	Faculty     []models.Faculty
	Options     scheduler.Options
	Conflicts   int
	RequestedAt time.Time
}

func (p scheduleProposal) meta() models.ScheduleRunMeta {
	configErrors := make([]string, len(p.Result.ConfigErrors))
	for i, ce := range p.Result.ConfigErrors {
		configErrors[i] = ce.Error()
	}
	return models.ScheduleRunMeta{
		Unscheduled:    p.Result.Unscheduled,
		LoadWarnings:   p.Result.LoadWarnings,
		ConfigErrors:   configErrors,
		Sections:       p.Result.Sections,
		Rooms:          p.Rooms,
		Faculty:        p.Faculty,
		WindowStart:    p.Options.Window.Start,
		WindowEnd:      p.Options.Window.End,
		RotatorCounter: p.Result.Rotation.Counter,
		Policy: map[string]any{
			"bounds":       p.Options.Bounds,
			"sessions":     p.Options.Sessions,
			"load":         p.Options.Load,
			"rotator_seed": p.Options.RotatorSeed,
		},
		GeneratedAt: p.RequestedAt,
	}
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]scheduleProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]scheduleProposal),
	}
}

func (s *proposalStore) Save(proposal scheduleProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.items {
		if time.Since(existing.RequestedAt) > s.ttl {
			delete(s.items, id)
		}
	}
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (scheduleProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return scheduleProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return scheduleProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
