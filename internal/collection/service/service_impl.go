package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	bankaccountdomain "github.com/solidaria/backoffice/internal/bankaccount/domain"
	"github.com/solidaria/backoffice/internal/clock"
	"github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/internal/collection/eligibility"
	"github.com/solidaria/backoffice/internal/collection/pain008"
	"github.com/solidaria/backoffice/internal/collection/plan"
	"github.com/solidaria/backoffice/internal/config"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"github.com/solidaria/backoffice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Cfg       config.Config
	Clock     clock.Clock
	GenID     *snowflake.Node
	DonorRepo donordomain.Repository
	RunRepo   domain.RunRepository
}

type Service struct {
	log   *zap.Logger
	cfg   config.Config
	clock clock.Clock
	genID *snowflake.Node

	donors      donordomain.Repository
	runs        domain.RunRepository
	accountrepo repository.Repository[bankaccountdomain.BankAccount]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:         p.Log.Named("collection.service"),
		cfg:         p.Cfg,
		clock:       p.Clock,
		genID:       p.GenID,
		donors:      p.DonorRepo,
		runs:        p.RunRepo,
		accountrepo: repository.ProvideStore[bankaccountdomain.BankAccount](p.DB),
	}
}

// Preview resolves every donor's eligibility, collection status and
// sequence type for the given collection date. This is what the selection
// wizard renders.
func (s *Service) Preview(ctx context.Context, collectionDate time.Time) (domain.Preview, error) {
	donors, err := s.donors.ListAll(ctx)
	if err != nil {
		return domain.Preview{}, err
	}

	partitioned := eligibility.Partition(donors)

	entries := make([]domain.PreviewEntry, 0, len(partitioned.Eligible))
	for _, d := range partitioned.Eligible {
		status := plan.ResolveStatus(d, collectionDate)
		cents, _ := domain.AmountCents(d.MonthlyAmount)
		entries = append(entries, domain.PreviewEntry{
			Donor:        d,
			Status:       status,
			SequenceType: plan.ResolveSequenceType(d),
			AmountCents:  cents,
			Preselected:  status.AutoSelectable(),
		})
	}

	return domain.Preview{
		CollectionDate: collectionDate,
		Eligible:       entries,
		Excluded:       partitioned.Excluded,
		Warnings:       partitioned.Warnings,
	}, nil
}

// BuildRun loads the account and the selected donors, re-checks their
// eligibility and assembles the run aggregate. No side effects.
func (s *Service) BuildRun(ctx context.Context, req domain.BuildRequest) (domain.CollectionRun, error) {
	account, err := s.loadAccount(ctx, req.BankAccountID)
	if err != nil {
		return domain.CollectionRun{}, err
	}

	selected, err := s.donors.ListByIDs(ctx, req.DonorIDs)
	if err != nil {
		return domain.CollectionRun{}, err
	}

	// A donor deleted between preview and export must fail the run, not
	// shrink it.
	if missing := missingDonorIDs(req.DonorIDs, selected); len(missing) > 0 {
		s.log.Warn("selected donors not found",
			zap.Int("requested", len(req.DonorIDs)),
			zap.Int("missing", len(missing)),
		)
		return domain.CollectionRun{}, &domain.MissingDonorsError{IDs: missing}
	}

	// Selection comes from the UI; never trust it to have skipped
	// excluded donors.
	partitioned := eligibility.Partition(selected)
	if len(partitioned.Excluded) > 0 {
		first := partitioned.Excluded[0]
		s.log.Warn("selected donor is not eligible",
			zap.String("donor_id", first.DonorID.String()),
			zap.String("reason", string(first.Reason)),
		)
		return domain.CollectionRun{}, domain.ErrDonorNotEligible
	}

	return BuildRun(*account, req.CollectionDate, partitioned.Eligible, s.clock.Now(), req.CreatedBy, s.genID)
}

// missingDonorIDs returns requested IDs (deduplicated) with no matching
// donor in the loaded set.
func missingDonorIDs(requested []snowflake.ID, found []donordomain.Donor) []snowflake.ID {
	have := make(map[snowflake.ID]struct{}, len(found))
	for _, d := range found {
		have[d.ID] = struct{}{}
	}
	seen := make(map[snowflake.ID]struct{}, len(requested))
	var missing []snowflake.ID
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// ValidateRun exposes the pre-flight checks against today's date.
func (s *Service) ValidateRun(run domain.CollectionRun) []error {
	return ValidateRun(run, s.clock.Now())
}

// Export validates, serializes and then persists best-effort, in that
// order. Once validation passes the file bytes are handed back
// unconditionally: a bank file, once downloaded, may already be submitted,
// so persistence failures are reported but never retract the file.
func (s *Service) Export(ctx context.Context, req domain.BuildRequest) (domain.ExportResult, error) {
	run, err := s.BuildRun(ctx, req)
	if err != nil {
		return domain.ExportResult{}, err
	}

	if errs := s.ValidateRun(run); len(errs) > 0 {
		return domain.ExportResult{}, errors.Join(errs...)
	}

	file, err := pain008.Serialize(run)
	if err != nil {
		return domain.ExportResult{}, err
	}

	exportedAt := s.clock.Now()
	run.ExportedAt = &exportedAt
	run.Excluded = s.excludedReport(ctx)

	result := domain.ExportResult{
		Run:      run,
		File:     file,
		Filename: pain008.Filename(s.cfg.OrgID, run.RequestedCollectionDate),
	}
	result.Persistence = s.persist(ctx, &run)

	s.log.Info("collection run exported",
		zap.String("run_id", run.ID.String()),
		zap.String("message_id", run.MessageID),
		zap.Int("items", run.TotalCount),
		zap.Int64("total_cents", run.TotalAmountCents),
		zap.Bool("recorded", result.Persistence == nil),
	)
	return result, nil
}

// excludedReport snapshots the exclusion list at export time so the run
// record carries the full audit picture, not just the included donors.
func (s *Service) excludedReport(ctx context.Context) datatypes.JSON {
	donors, err := s.donors.ListAll(ctx)
	if err != nil {
		s.log.Warn("excluded report skipped", zap.Error(err))
		return nil
	}
	partitioned := eligibility.Partition(donors)
	if len(partitioned.Excluded) == 0 {
		return nil
	}
	raw, err := json.Marshal(partitioned.Excluded)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// persist records the run and marks donors collected. Best-effort: any
// error is returned for reporting, never propagated as an export failure.
// The serialization step is never retried from here.
func (s *Service) persist(ctx context.Context, run *domain.CollectionRun) error {
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.log.Warn("run exported but not recorded", zap.String("run_id", run.ID.String()), zap.Error(err))
		return err
	}

	donorIDs := make([]snowflake.ID, 0, len(run.Items))
	for _, item := range run.Items {
		donorIDs = append(donorIDs, item.DonorID)
	}

	updated, err := s.runs.MarkDonorsCollected(ctx, run.ID, run.RequestedCollectionDate, donorIDs)
	if err != nil {
		return &domain.PartialTrackingError{Updated: updated, Total: len(donorIDs), Err: err}
	}
	return nil
}

func (s *Service) ListRuns(ctx context.Context) ([]domain.CollectionRun, error) {
	return s.runs.ListRuns(ctx)
}

func (s *Service) GetRun(ctx context.Context, id snowflake.ID) (domain.CollectionRun, error) {
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		return domain.CollectionRun{}, err
	}
	return *run, nil
}

func (s *Service) loadAccount(ctx context.Context, id snowflake.ID) (*bankaccountdomain.BankAccount, error) {
	var account *bankaccountdomain.BankAccount
	var err error
	if id != 0 {
		account, err = s.accountrepo.FindOne(ctx, &bankaccountdomain.BankAccount{ID: id})
	} else {
		account, err = s.accountrepo.FindOne(ctx, &bankaccountdomain.BankAccount{IsDefault: true})
	}
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, domain.ErrNoBankAccount
	}
	return account, nil
}
