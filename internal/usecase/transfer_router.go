package usecase

import (
	"context"
	"fmt"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	"FinBridge/pkg/logger"
	"FinBridge/pkg/util"
)

const (
	errUnknownProvider   = "Unknown provider"
	errDuplicateTransfer = "Duplicate transfer in progress"

	defaultLockTTL = 30 * time.Second
	publishTimeout = 3 * time.Second
)

// TransferRouter dispatches a transfer to the adapter registered for its provider.
type TransferRouter struct {
	providers map[models.ProviderID]repository.BankProvider
	locker    repository.Locker
	lockTTL   time.Duration
	publisher repository.EventPublisher
	s         settings
}

// NewTransferRouter indexes providers by id. locker and publisher may be nil.
func NewTransferRouter(providers []repository.BankProvider, locker repository.Locker, publisher repository.EventPublisher, lockTTL time.Duration, opts ...Option) *TransferRouter {
	idx := make(map[models.ProviderID]repository.BankProvider, len(providers))
	for _, p := range providers {
		idx[p.ID()] = p
	}
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &TransferRouter{
		providers: idx,
		locker:    locker,
		lockTTL:   lockTTL,
		publisher: publisher,
		s:         newSettings(opts),
	}
}

// Route performs the transfer and folds every failure into the response.
func (r *TransferRouter) Route(ctx context.Context, req models.TransferRequest) models.TransferResponse {
	resp, label := r.route(ctx, req)
	r.s.metrics.RecordTransfer(label, TransferResult(resp))
	r.publish(ctx, req, resp)
	return resp
}

func (r *TransferRouter) route(ctx context.Context, req models.TransferRequest) (models.TransferResponse, string) {
	p, ok := r.providers[req.Provider]
	if !ok {
		return models.TransferResponse{Success: false, Error: errUnknownProvider}, "unknown"
	}
	label := string(p.ID())
	log := r.s.log.With(logger.String("provider", label), logger.String("reference", req.Reference))

	if key, held := r.acquire(ctx, req, log); key != "" {
		defer r.release(ctx, key, log)
	} else if held {
		log.Warn("duplicate transfer rejected")
		return models.TransferResponse{Success: false, Error: errDuplicateTransfer, Reference: req.Reference}, label
	}

	start := time.Now()
	receipt, err := callWithTimeout(ctx, r.s.timeout, func(cctx context.Context) (*models.TransferReceipt, error) {
		return p.Transfer(cctx, req)
	})
	r.s.metrics.RecordProviderCall(label, "transfer", resultLabel(err), time.Since(start).Seconds())
	if err != nil {
		log.Error("transfer failed", logger.Error(err))
		return models.TransferResponse{Success: false, Error: err.Error()}, label
	}
	if receipt == nil {
		return models.TransferResponse{Success: false, Error: "empty transfer response"}, label
	}

	resp := models.TransferResponse{
		Success:       true,
		TransactionID: util.FirstNonEmpty(receipt.TransactionID, receipt.PaymentID, receipt.TransferID),
		Status:        receipt.Status,
		Reference:     util.FirstNonEmpty(receipt.Reference, req.Reference),
	}
	log.Info("transfer accepted", logger.String("transaction_id", resp.TransactionID), logger.String("status", resp.Status))
	return resp, label
}

// acquire returns the lock key when the lock was taken, or held=true when
// another transfer with the same reference owns it. Lock backend errors do
// not block the transfer.
func (r *TransferRouter) acquire(ctx context.Context, req models.TransferRequest, log *logger.Logger) (key string, held bool) {
	if r.locker == nil || req.Reference == "" {
		return "", false
	}
	k := fmt.Sprintf("transfer:%s:%s", req.Provider, req.Reference)
	ok, err := r.locker.TryLock(ctx, k, r.lockTTL)
	if err != nil {
		log.Warn("transfer lock unavailable", logger.Error(err))
		r.s.metrics.RecordError("lock")
		return "", false
	}
	if !ok {
		return "", true
	}
	return k, false
}

func (r *TransferRouter) release(ctx context.Context, key string, log *logger.Logger) {
	if err := r.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
		log.Warn("transfer unlock failed", logger.Error(err))
		r.s.metrics.RecordError("lock")
	}
}

func (r *TransferRouter) publish(ctx context.Context, req models.TransferRequest, resp models.TransferResponse) {
	if r.publisher == nil {
		return
	}
	evt := &models.TransferEvent{
		Provider:        req.Provider,
		FromAccountID:   req.FromAccountID,
		ToBeneficiaryID: req.ToBeneficiaryID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Reference:       req.Reference,
		Success:         resp.Success,
		TransactionID:   resp.TransactionID,
		Status:          resp.Status,
		Error:           resp.Error,
		OccurredAt:      r.s.now().UTC(),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := r.publisher.PublishTransfer(pctx, evt); err != nil {
		r.s.log.Error("publish transfer event failed", logger.String("provider", string(req.Provider)), logger.Error(err))
		r.s.metrics.RecordError("publish")
	}
}

// Transfer result labels.
const (
	ResultSuccess         = "success"
	ResultUnknownProvider = "unknown_provider"
	ResultDuplicate       = "duplicate"
	ResultFailed          = "failed"
)

// TransferResult classifies a transfer response for metrics and HTTP status mapping.
func TransferResult(resp models.TransferResponse) string {
	switch {
	case resp.Success:
		return ResultSuccess
	case resp.Error == errUnknownProvider:
		return ResultUnknownProvider
	case resp.Error == errDuplicateTransfer:
		return ResultDuplicate
	default:
		return ResultFailed
	}
}
