// Package services hosts the application services between the HTTP
// transport and the processing engine. ProcessingService reads uploaded
// export files, feeds the combined batch through the engine and reports
// progress and metrics along the way.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"pasarcli/internal/brandstore"
	"pasarcli/internal/engine"
	"pasarcli/internal/errors"
	"pasarcli/internal/observability"
	"pasarcli/internal/progress"
	"pasarcli/internal/reader"
	"pasarcli/pkg/contracts/domain"
)

// InputFile is one uploaded export file. Open is called at most once, on a
// worker goroutine. Size is the byte size when the caller knows it, zero
// otherwise.
type InputFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// OrderRequest carries the user-selected options of an orders batch.
type OrderRequest struct {
	Marketplace domain.MarketplaceID
	Platform    string
	Operator    string
}

// ProcessingService turns uploaded marketplace exports into normalized rows.
type ProcessingService struct {
	logger  *slog.Logger
	reader  *reader.Reader
	engine  *engine.Engine
	brands  *brandstore.Store
	hub     *progress.Hub
	metrics *observability.Metrics
}

// NewProcessingService creates the service. hub and metrics may be nil; the
// service then runs without progress events or instrumentation.
func NewProcessingService(logger *slog.Logger, brands *brandstore.Store, hub *progress.Hub, metrics *observability.Metrics) *ProcessingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessingService{
		logger:  logger.With(slog.String("service", "processing")),
		reader:  reader.New(logger),
		engine:  engine.New(logger),
		brands:  brands,
		hub:     hub,
		metrics: metrics,
	}
}

// ProcessOrders reads every uploaded file, concatenates the rows in upload
// order and runs the orders pipeline for the requested marketplace.
func (s *ProcessingService) ProcessOrders(ctx context.Context, req OrderRequest, files []InputFile) (*domain.OrderResult, error) {
	m, ok := engine.ByID(req.Marketplace)
	if !ok {
		return nil, errors.ErrValidation("marketplace", fmt.Sprintf("unknown marketplace %q", req.Marketplace))
	}

	start := time.Now()
	s.recordUploads(ctx, files)
	rows, err := s.readAll(ctx, files, s.orderOptions(req.Marketplace))
	if err != nil {
		s.broadcastError(progress.StageReading, err)
		return nil, err
	}

	s.broadcastProgress(progress.StageProcessing, len(files), len(files), "memproses pesanan")

	var table *engine.BrandTable
	if s.brands != nil {
		table = s.brands.Table()
	}

	result, err := s.engine.ProcessOrders(m, rows, engine.OrderOptions{
		Platform:    req.Platform,
		OperatorTag: req.Operator,
		Brands:      table,
	})

	var stats domain.BatchStats
	if result != nil {
		stats = result.Stats
	}
	if s.metrics != nil {
		s.metrics.RecordBatch(ctx, req.Marketplace, "orders", stats, time.Since(start), err)
	}
	if err != nil {
		s.broadcastError(progress.StageProcessing, err)
		return nil, err
	}

	s.hubComplete("orders", result.Stats)
	s.logger.InfoContext(ctx, "orders batch processed",
		slog.String("marketplace", string(req.Marketplace)),
		slog.Int("files", len(files)),
		slog.Int("input_rows", result.Stats.InputRows),
		slog.Int("output_rows", result.Stats.OutputRows),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// ProcessIncome reads every uploaded settlement file and runs the income
// pipeline for the requested marketplace.
func (s *ProcessingService) ProcessIncome(ctx context.Context, id domain.MarketplaceID, files []InputFile) (*domain.IncomeResult, error) {
	m, ok := engine.ByID(id)
	if !ok {
		return nil, errors.ErrValidation("marketplace", fmt.Sprintf("unknown marketplace %q", id))
	}

	start := time.Now()
	s.recordUploads(ctx, files)
	rows, err := s.readAll(ctx, files, s.incomeOptions(id))
	if err != nil {
		s.broadcastError(progress.StageReading, err)
		return nil, err
	}

	s.broadcastProgress(progress.StageProcessing, len(files), len(files), "memproses penghasilan")

	result, err := s.engine.ProcessIncome(m, rows)

	var stats domain.BatchStats
	if result != nil {
		stats = result.Stats
	}
	if s.metrics != nil {
		s.metrics.RecordBatch(ctx, id, "income", stats, time.Since(start), err)
	}
	if err != nil {
		s.broadcastError(progress.StageProcessing, err)
		return nil, err
	}

	s.hubComplete("income", result.Stats)
	s.logger.InfoContext(ctx, "income batch processed",
		slog.String("marketplace", string(id)),
		slog.Int("files", len(files)),
		slog.Int("input_rows", result.Stats.InputRows),
		slog.Int("output_rows", result.Stats.OutputRows),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// readAll reads the files concurrently and returns their rows concatenated
// in upload order. Files that parse to zero rows are fine; the engine
// rejects the batch only when the combined batch is empty.
func (s *ProcessingService) readAll(ctx context.Context, files []InputFile, opts reader.Options) ([]domain.RawRecord, error) {
	perFile := make([][]domain.RawRecord, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := file.Open()
			if err != nil {
				return fmt.Errorf("%s: %w", file.Name, err)
			}
			defer src.Close()

			records, err := s.reader.Read(src, file.Name, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Name, err)
			}
			perFile[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []domain.RawRecord
	for i, records := range perFile {
		rows = append(rows, records...)
		s.broadcastProgress(progress.StageReading, i+1, len(files), fmt.Sprintf("membaca %s", files[i].Name))
	}
	return rows, nil
}

func (s *ProcessingService) orderOptions(id domain.MarketplaceID) reader.Options {
	if id == domain.MarketplaceTikTok {
		return reader.TikTokOrders()
	}
	return reader.ShopeeOrders()
}

func (s *ProcessingService) incomeOptions(id domain.MarketplaceID) reader.Options {
	if id == domain.MarketplaceTikTok {
		return reader.TikTokIncome()
	}
	return reader.ShopeeIncome()
}

func (s *ProcessingService) recordUploads(ctx context.Context, files []InputFile) {
	if s.metrics == nil {
		return
	}
	for _, file := range files {
		if file.Size > 0 {
			s.metrics.RecordUpload(ctx, file.Size)
		}
	}
}

func (s *ProcessingService) broadcastProgress(stage string, current, total int, message string) {
	if s.hub != nil {
		s.hub.BroadcastProgress(stage, current, total, message)
	}
}

func (s *ProcessingService) broadcastError(stage string, err error) {
	if s.hub != nil {
		s.hub.BroadcastError(stage, err.Error())
	}
}

func (s *ProcessingService) hubComplete(kind string, stats domain.BatchStats) {
	if s.hub != nil {
		s.hub.BroadcastComplete(kind, stats)
	}
}
