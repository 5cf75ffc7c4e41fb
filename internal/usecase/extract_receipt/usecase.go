package extract_receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/archportal/booking-service/internal/domain"
	txRepo "github.com/archportal/booking-service/internal/infra/storage/banktransaction"
	"github.com/archportal/booking-service/internal/integrations/gemini"
	"github.com/archportal/booking-service/pkg/ptr"
)

const defaultMatchWindowDays = 3

// UseCase use case распознавания чека и сопоставления с банковской операцией
type UseCase struct {
	extractor    Extractor
	receipts     ReceiptRepository
	transactions TransactionRepository
	txManager    TransactionManager
	metrics      Metrics
	windowDays   int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	extractor Extractor,
	receipts ReceiptRepository,
	transactions TransactionRepository,
	txManager TransactionManager,
	metrics Metrics,
	windowDays int,
	logger Logger,
) *UseCase {
	if windowDays <= 0 {
		windowDays = defaultMatchWindowDays
	}
	return &UseCase{
		extractor:    extractor,
		receipts:     receipts,
		transactions: transactions,
		txManager:    txManager,
		metrics:      metrics,
		windowDays:   windowDays,
		logger:       logger,
	}
}

// Execute распознаёт чек, сохраняет его и пытается привязать к операции из выписки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtractReceipt: file=%q, type=%s, size=%d", req.FileName, req.MimeType, len(req.Data))

	// 1. Валидация файла
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtractReceipt: validation failed: %v", err)
		return nil, err
	}

	// 2. Распознавание
	data, err := uc.extractor.ExtractReceipt(ctx, req.MimeType, req.Data)
	if err != nil {
		uc.metrics.IncReceiptProcessed("extraction_failed")
		if errors.Is(err, gemini.ErrInvalidResponse) {
			uc.logger.Warn("ExtractReceipt: model output rejected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		uc.logger.Error("ExtractReceipt: extraction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExtractorUnavailable, err)
	}

	date, err := time.Parse(domain.DateFormat, data.Date)
	if err != nil {
		uc.metrics.IncReceiptProcessed("extraction_failed")
		uc.logger.Warn("ExtractReceipt: model returned bad date %q", data.Date)
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrExtractionFailed, data.Date)
	}

	receipt := &domain.Receipt{
		FileName:  req.FileName,
		MimeType:  req.MimeType,
		Merchant:  data.Merchant,
		Date:      date,
		Total:     data.Total,
		Currency:  data.Currency,
		VATAmount: data.VATAmount,
		Status:    domain.ReceiptStatusUnmatched,
	}

	// 3. Сохраняем чек
	receipt, err = uc.receipts.Create(ctx, receipt)
	if err != nil {
		uc.logger.Error("ExtractReceipt: failed to store receipt: %v", err)
		return nil, fmt.Errorf("%w: failed to store receipt: %v", ErrInternal, err)
	}

	// 4. Сопоставление не влияет на сохранение чека
	uc.match(ctx, receipt)

	result := "unmatched"
	if receipt.Status == domain.ReceiptStatusMatched {
		result = "matched"
	}
	uc.metrics.IncReceiptProcessed(result)
	uc.logger.Info("ExtractReceipt: receipt id=%d stored, %s", receipt.ID, result)

	return &Response{Receipt: receipt}, nil
}

func (uc *UseCase) match(ctx context.Context, receipt *domain.Receipt) {
	from := receipt.Date.AddDate(0, 0, -uc.windowDays)
	to := receipt.Date.AddDate(0, 0, uc.windowDays+1)

	candidates, err := uc.transactions.ListUnmatched(ctx, from, to)
	if err != nil {
		uc.logger.Error("ExtractReceipt: failed to list transactions: %v", err)
		return
	}

	best, ok := bestMatch(receipt, candidates, uc.windowDays)
	if !ok {
		if best != nil {
			uc.logger.Info("ExtractReceipt: best candidate id=%d scored %.2f, below threshold",
				best.transaction.ID, best.score)
		}
		return
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.transactions.SetReceipt(txCtx, best.transaction.ID, receipt.ID); err != nil {
			return err
		}
		return uc.receipts.SetMatch(txCtx, receipt.ID, best.transaction.ID, best.score)
	})
	if err != nil {
		if errors.Is(err, txRepo.ErrTransactionNotFound) {
			uc.logger.Warn("ExtractReceipt: transaction id=%d was matched concurrently", best.transaction.ID)
		} else {
			uc.logger.Error("ExtractReceipt: failed to link transaction id=%d: %v", best.transaction.ID, err)
		}
		return
	}

	receipt.Status = domain.ReceiptStatusMatched
	receipt.BankTransactionID = ptr.Ptr(best.transaction.ID)
	receipt.MatchScore = ptr.Ptr(best.score)
}
