package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
	"bilio-backend/internal/repository"
)

// PaymentConfig carries the Stripe settings the payment service needs.
type PaymentConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type paymentService struct {
	cfg          PaymentConfig
	packageRepo  repository.PackageRepository
	purchaseRepo repository.PurchaseRepository
	profileRepo  repository.ProfileRepository
	ledgerRepo   repository.LedgerRepository
	emailSvc     EmailService // nil disables receipts
}

func NewPaymentService(cfg PaymentConfig, packageRepo repository.PackageRepository, purchaseRepo repository.PurchaseRepository, profileRepo repository.ProfileRepository, ledgerRepo repository.LedgerRepository, emailSvc EmailService) PaymentService {
	return &paymentService{
		cfg:          cfg,
		packageRepo:  packageRepo,
		purchaseRepo: purchaseRepo,
		profileRepo:  profileRepo,
		ledgerRepo:   ledgerRepo,
		emailSvc:     emailSvc,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, ident domain.Identity, packageID int64) (string, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", &InvalidArgumentError{Field: "package_id", Reason: "unknown package"}
	}
	if err != nil {
		return "", err
	}
	if !pkg.IsActive {
		return "", &InvalidArgumentError{Field: "package_id", Reason: "package is not active"}
	}

	stripe.Key = s.cfg.SecretKey
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("sek"),
					UnitAmount: stripe.Int64(pkg.PriceSEK),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(pkg.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("userID", ident.UserID)
	params.AddMetadata("packageID", strconv.FormatInt(pkg.ID, 10))

	sess, err := session.New(params)
	logger.ExternalServiceResult("stripe", "CreateCheckoutSession", err, "package_id", pkg.ID)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	purchase := &domain.Purchase{
		UserID:            ident.UserID,
		PackageID:         pkg.ID,
		CheckoutSessionID: sess.ID,
		Status:            domain.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return "", err
	}

	return sess.URL, nil
}

func (s *paymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	var event stripe.Event
	if s.cfg.WebhookSecret != "" {
		verified, err := webhook.ConstructEvent(payload, signatureHeader, s.cfg.WebhookSecret)
		if err != nil {
			return &InvalidArgumentError{Field: "payload", Reason: "signature verification failed"}
		}
		event = verified
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return &InvalidArgumentError{Field: "payload", Reason: "malformed event"}
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return &InvalidArgumentError{Field: "payload", Reason: "malformed checkout session"}
	}
	return s.fulfill(ctx, sess.ID)
}

// fulfill credits the purchased package. The pending→completed transition
// is the idempotency guard: replayed events find no pending row and stop.
func (s *paymentService) fulfill(ctx context.Context, sessionID string) error {
	purchase, err := s.purchaseRepo.GetBySessionID(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("webhook for unknown checkout session", "session_id", sessionID)
		return nil
	}
	if err != nil {
		return err
	}

	transitioned, err := s.purchaseRepo.MarkCompleted(ctx, sessionID)
	if err != nil {
		return err
	}
	if !transitioned {
		logger.Info("checkout session already fulfilled", "session_id", sessionID)
		return nil
	}

	pkg, err := s.packageRepo.GetByID(ctx, purchase.PackageID)
	if err != nil {
		return err
	}

	description := fmt.Sprintf("Köp av %s (%d krediter)", pkg.Name, pkg.Credits)
	newBalance, err := s.ledgerRepo.AddCredits(ctx, purchase.UserID, pkg.Credits, domain.TransactionTypePurchase, description, sessionID)
	if err != nil {
		// The purchase row is completed but the ledger write failed; the
		// nightly audit surfaces the drift. Stripe will not replay past
		// the completed transition, so log loudly.
		logger.ErrorContext(ctx, "crediting failed after purchase fulfillment",
			"session_id", sessionID, "user_id", purchase.UserID, "error", err)
		return err
	}

	if s.emailSvc != nil {
		profile, perr := s.profileRepo.GetByUserID(ctx, purchase.UserID)
		if perr == nil && profile.Email != "" {
			if merr := s.emailSvc.SendPurchaseReceipt(ctx, profile.Email, profile.FullName, pkg, newBalance); merr != nil {
				logger.Warn("purchase receipt email failed", "user_id", purchase.UserID, "error", merr)
			}
		}
	}

	return nil
}
