package banking

import (
	"context"
	"errors"
	"fmt"
	"io"

	receiptRepo "github.com/archportal/booking-service/internal/infra/storage/receipt"
	"github.com/archportal/booking-service/internal/service/banking/models"
)

// Service сервис банковских выписок и чеков
type Service struct {
	transactionRepo TransactionRepository
	receiptRepo     ReceiptRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	transactionRepo TransactionRepository,
	receiptRepo ReceiptRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		receiptRepo:     receiptRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// ImportStatement загружает операции из CSV выписки.
// Повторы пропускаются, некорректные строки попадают в список ошибок.
// Ошибка хранилища откатывает весь импорт
func (s *Service) ImportStatement(ctx context.Context, r io.Reader) (*models.ImportResponse, error) {
	rows, err := readStatement(r)
	if err != nil {
		s.logger.Warn("ImportStatement: unreadable statement: %v", err)
		return nil, err
	}

	resp := &models.ImportResponse{Errors: make([]string, 0)}
	for _, row := range rows {
		if row.err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("line %d: %v", row.line, row.err))
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			if row.err != nil {
				continue
			}
			inserted, err := s.transactionRepo.Create(txCtx, row.transaction)
			if err != nil {
				return fmt.Errorf("line %d: %w", row.line, err)
			}
			if inserted {
				resp.Imported++
			} else {
				resp.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ImportStatement: repository error: %v", err)
		return nil, fmt.Errorf("%w: ImportStatement - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ImportStatement: imported=%d, skipped=%d, errors=%d",
		resp.Imported, resp.Skipped, len(resp.Errors))
	return resp, nil
}

// GetReceipt получает чек с привязанной операцией
func (s *Service) GetReceipt(ctx context.Context, id int64) (*models.ReceiptResponse, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, receiptRepo.ErrReceiptNotFound) {
			s.logger.Warn("GetReceipt: receipt id=%d not found", id)
			return nil, ErrReceiptNotFound
		}
		s.logger.Error("GetReceipt: repository error for receipt id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetReceipt - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReceipt(receipt), nil
}
