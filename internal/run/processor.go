package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"statutes/internal/extract"
	"statutes/internal/logging"
	"statutes/internal/mods"
	"statutes/internal/output"
	"statutes/internal/pdftext"
)

// Processor drives a conversion run: it parses each selected volume, walks
// its embedded items through the extractor, and persists the results.
// Failures are contained at the narrowest level that keeps the rest of the
// run meaningful: a malformed volume loses the batch, a bad item loses the
// item, a missing pdftotext loses plaintext for the remainder of the run.
type Processor struct {
	extractor *extract.Extractor
	store     *output.Store
	plaintext *pdftext.Service
	logger    *slog.Logger
	runID     string

	plaintextDown bool
}

// NewProcessor builds a Processor. A nil plaintext service disables
// plaintext extraction entirely.
func NewProcessor(extractor *extract.Extractor, store *output.Store, plaintext *pdftext.Service, logger *slog.Logger) *Processor {
	runID := uuid.NewString()
	return &Processor{
		extractor: extractor,
		store:     store,
		plaintext: plaintext,
		logger: logging.NewComponentLogger(logger, "run").
			With(logging.String(logging.FieldRunID, runID)),
		runID: runID,
	}
}

// RunID returns the identifier stamped on every log line of this run.
func (p *Processor) RunID() string {
	return p.runID
}

// BatchResult records the outcome of one volume.
type BatchResult struct {
	Batch   Batch
	Bills   int
	Skipped int
	Failed  int
	Err     error
}

// Summary aggregates the outcome of a run.
type Summary struct {
	Results []BatchResult
}

// Bills returns the total number of bill records written.
func (s Summary) Bills() int {
	total := 0
	for _, r := range s.Results {
		total += r.Bills
	}
	return total
}

// Skipped returns the total number of items passed over without error.
func (s Summary) Skipped() int {
	total := 0
	for _, r := range s.Results {
		total += r.Skipped
	}
	return total
}

// Failed returns the total number of items that failed extraction or
// persistence.
func (s Summary) Failed() int {
	total := 0
	for _, r := range s.Results {
		total += r.Failed
	}
	return total
}

// FailedBatches returns the number of volumes abandoned whole.
func (s Summary) FailedBatches() int {
	total := 0
	for _, r := range s.Results {
		if r.Err != nil {
			total++
		}
	}
	return total
}

// Process converts the given batches in order. Batch failures are recorded
// in the summary and never abort the run; only context cancellation stops
// processing early.
func (p *Processor) Process(ctx context.Context, batches []Batch) Summary {
	summary := Summary{Results: make([]BatchResult, 0, len(batches))}
	for _, batch := range batches {
		if err := ctx.Err(); err != nil {
			summary.Results = append(summary.Results, BatchResult{Batch: batch, Err: err})
			break
		}
		summary.Results = append(summary.Results, p.processBatch(ctx, batch))
	}
	return summary
}

func (p *Processor) processBatch(ctx context.Context, batch Batch) (result BatchResult) {
	result = BatchResult{Batch: batch}
	logger := p.logger.With(logging.String(logging.FieldBatch, batch.Name()))
	// A panic while converting one volume must not take down the run.
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic processing %s: %v", batch.Name(), r)
			logger.Error("abandoning volume", logging.Error(result.Err))
		}
	}()
	logger.Info("processing volume",
		logging.Int("year", batch.Year),
		logging.String("path", batch.Path))

	doc, err := mods.ParseFile(batch.Path)
	if err != nil {
		result.Err = err
		logger.Error("abandoning volume", logging.Error(err))
		return result
	}
	congress, err := doc.Congress()
	if err != nil {
		result.Err = err
		logger.Error("abandoning volume", logging.Error(err))
		return result
	}
	packageID, err := doc.PackageID()
	if err != nil {
		result.Err = err
		logger.Error("abandoning volume", logging.Error(err))
		return result
	}

	vol := extract.Volume{Congress: congress, PackageID: packageID}
	logger = logger.With(logging.String(logging.FieldCongress, congress))

	for _, item := range doc.Items() {
		record, err := p.extractor.Item(ctx, item, vol)
		if err != nil {
			result.Failed++
			logger.Error("item failed", logging.Error(err))
			continue
		}
		if record == nil {
			result.Skipped++
			continue
		}
		if err := p.persist(ctx, record, logger); err != nil {
			result.Failed++
			logger.Error("persist failed",
				logging.String(logging.FieldBillID, record.Bill.BillID),
				logging.Error(err))
			continue
		}
		result.Bills++
	}

	logger.Info("volume complete",
		logging.Int("bills", result.Bills),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", result.Failed))
	return result
}

func (p *Processor) persist(ctx context.Context, record *extract.Record, logger *slog.Logger) error {
	bill := record.Bill
	if _, err := p.store.WriteBill(bill); err != nil {
		return err
	}
	if _, err := p.store.WriteVersion(bill.BillType, bill.Number, bill.Congress, record.Version); err != nil {
		return err
	}
	p.extractPlaintext(ctx, record, logger)
	return nil
}

// extractPlaintext is best-effort: plaintext failures never fail the item,
// and a missing binary disables extraction for the remainder of the run.
func (p *Processor) extractPlaintext(ctx context.Context, record *extract.Record, logger *slog.Logger) {
	if p.plaintext == nil || p.plaintextDown || record.PDFURL == "" {
		return
	}
	outPath := p.store.PlaintextPath(
		record.Bill.BillType, record.Bill.Number, record.Bill.Congress,
		record.Version.VersionCode)
	if err := p.plaintext.Extract(ctx, record.PDFURL, outPath); err != nil {
		if errors.Is(err, pdftext.ErrToolUnavailable) {
			p.plaintextDown = true
			logger.Warn("pdftotext unavailable, skipping plaintext for the rest of the run",
				logging.Error(err))
			return
		}
		logger.Warn("plaintext extraction failed",
			logging.String(logging.FieldBillID, record.Bill.BillID),
			logging.Error(err))
	}
}
