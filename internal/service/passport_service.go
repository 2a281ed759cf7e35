package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/events"
	"github.com/spec-kit/coffee-passport/internal/observability"
	"github.com/spec-kit/coffee-passport/internal/phone"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

const (
	customerIDRetries = 5
	resetDateLayout   = "02 Jan 2006"
)

const (
	replyJoinPrompt = "You don't have a passport yet. Send 'JOIN' to get started!"

	replyWelcomeAskName = "🎉 Welcome to Coffee Passport!\n\nWhat's your first name?"

	replyJoinFirst = "Please send 'JOIN' first to create your passport."

	replyUnknownCommand = "I didn't understand that command. Send 'HELP' to see available commands.\n\nQuick examples:\n• JOIN - Start your coffee passport\n• STATUS - Check your progress\n• HELP - See all commands"

	replyProcessingError = "Sorry, I encountered an error processing your request. Please try again."

	replyStampUnauthorized = "You are not authorized to add stamps. Please contact management."

	replyRedeemUnauthorized = "You are not authorized to redeem rewards. Please contact management."

	replyStampMissingID = "Please specify customer ID. Format: STAMP C1234"

	replyRedeemMissingID = "Please specify customer ID. Format: REDEEM C1234"

	replyUpdateNameMissing = "Please specify your new name. Format: UPDATE NAME YourName"

	replyHelp = "🤖 Coffee Passport Commands:\n\n📝 JOIN - Create your passport\n📋 STATUS - Check your progress\n🎁 REWARD - Claim your free coffee\n✏️ UPDATE NAME [name] - Change your name\n❓ HELP - Show this help\n\nStaff Commands:\n• STAMP [customer_id] - Add stamp\n• REDEEM [customer_id] - Confirm redemption\n\nExamples:\n• JOIN\n• STATUS\n• UPDATE NAME John"
)

// MessageResult is the outcome of processing one inbound message. Success is
// false only for infrastructure failures; user input errors and business
// rejections still count as handled.
type MessageResult struct {
	Reply   string
	Success bool
}

// PassportDependencies bundles collaborators for the passport service.
type PassportDependencies struct {
	CustomerRepo repository.CustomerRepository
	StaffRepo    repository.StaffRepository
	AuditRepo    repository.AuditLogRepository
	Authorizer   *StaffAuthorizer
	Guard        *StampGuard
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Now          func() time.Time
}

// PassportService is the command interpreter. Each inbound message is one
// independent unit of work; all state lives in the repositories.
type PassportService struct {
	customers  repository.CustomerRepository
	staff      repository.StaffRepository
	audit      repository.AuditLogRepository
	authorizer *StaffAuthorizer
	guard      *StampGuard
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        config.LoyaltyConfig
	now        func() time.Time
}

// NewPassportService constructs the service.
func NewPassportService(deps PassportDependencies, cfg config.LoyaltyConfig, logger *zap.Logger) *PassportService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &PassportService{
		customers:  deps.CustomerRepo,
		staff:      deps.StaffRepo,
		audit:      deps.AuditRepo,
		authorizer: deps.Authorizer,
		guard:      deps.Guard,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		cfg:        cfg,
		now:        now,
	}
}

// ProcessMessage is the sole entry point for the messaging layer. It never
// returns an error: infrastructure failures are logged and converted into a
// generic apology with Success=false.
func (s *PassportService) ProcessMessage(ctx context.Context, phoneNumber, message string) MessageResult {
	sender := phone.Normalize(phoneNumber)
	cmd := ParseCommand(message)

	reply, err := s.dispatch(ctx, sender, cmd)
	if err != nil {
		s.logger.Error("process message failed",
			zap.String("command", string(cmd.Kind)),
			zap.Error(err))
		s.metrics.RecordCommand(string(cmd.Kind), false)
		return MessageResult{Reply: replyProcessingError, Success: false}
	}
	s.metrics.RecordCommand(string(cmd.Kind), true)
	return MessageResult{Reply: reply, Success: true}
}

func (s *PassportService) dispatch(ctx context.Context, sender string, cmd Command) (string, error) {
	switch cmd.Kind {
	case CommandJoin:
		return s.handleJoin(ctx, sender)
	case CommandStatus:
		return s.handleStatus(ctx, sender)
	case CommandStamp:
		return s.handleStamp(ctx, sender, cmd.Arg)
	case CommandReward:
		return s.handleReward(ctx, sender)
	case CommandRedeem:
		return s.handleRedeem(ctx, sender, cmd.Arg)
	case CommandUpdateName:
		return s.handleUpdateName(ctx, sender, cmd.Arg)
	case CommandHelp:
		return replyHelp, nil
	default:
		return s.handleFreeText(ctx, sender, cmd.Arg)
	}
}

func (s *PassportService) handleJoin(ctx context.Context, sender string) (string, error) {
	existing, err := s.customers.GetByPhone(ctx, sender)
	if err == nil {
		return s.welcomeBack(existing), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	now := s.now()
	for attempt := 0; attempt < customerIDRetries; attempt++ {
		customer := &domain.Customer{
			PhoneNumber:  sender,
			CustomerID:   newCustomerID(),
			State:        domain.CustomerStateAwaitingName,
			Stamps:       1, // welcome stamp
			Rewards:      0,
			LastActivity: now,
			ResetDate:    now.Add(s.cfg.ResetPeriod()),
			IsActive:     true,
		}

		err := s.customers.Create(ctx, customer)
		if err == nil {
			s.publish(ctx, events.Event{
				Type:       events.EventCustomerJoined,
				CustomerID: customer.CustomerID,
				Payload:    events.CustomerJoinedPayload{PhoneNumber: sender},
			})
			return replyWelcomeAskName, nil
		}
		if errors.Is(err, repository.ErrDuplicate) {
			// Either the generated ID collided or a concurrent JOIN for the
			// same phone won; the latter reads back as an existing passport.
			if existing, lookupErr := s.customers.GetByPhone(ctx, sender); lookupErr == nil {
				return s.welcomeBack(existing), nil
			}
			continue
		}
		return "", err
	}
	return "", fmt.Errorf("exhausted %d attempts to allocate a unique customer id", customerIDRetries)
}

func (s *PassportService) handleFreeText(ctx context.Context, sender, text string) (string, error) {
	customer, err := s.customers.GetByPhone(ctx, sender)
	if errors.Is(err, repository.ErrNotFound) {
		return replyUnknownCommand, nil
	}
	if err != nil {
		return "", err
	}
	if customer.State != domain.CustomerStateAwaitingName {
		return replyUnknownCommand, nil
	}

	name := strings.TrimSpace(text)
	if name == "" {
		return replyUnknownCommand, nil
	}

	if err := s.customers.SetName(ctx, sender, name, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return replyJoinFirst, nil
		}
		return "", err
	}

	customer, err = s.customers.GetByPhone(ctx, sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"🎉 Thanks %s! Passport ready.\n\nStamps: %d/%d | Rewards: %d | ID: #%s\n\nRewards reset every 3 months.\nNext reset: %s\n\nSend 'STATUS' anytime to check progress!",
		name, customer.Stamps, s.cfg.StampTarget, customer.Rewards, customer.CustomerID,
		customer.ResetDate.Format(resetDateLayout),
	), nil
}

func (s *PassportService) handleStatus(ctx context.Context, sender string) (string, error) {
	customer, err := s.customers.GetByPhone(ctx, sender)
	if errors.Is(err, repository.ErrNotFound) {
		return replyJoinPrompt, nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"☕ Passport for %s\n\nStamps: %d/%d\nRewards: %d\nID: #%s\n\nRewards reset on: %s",
		customer.DisplayName(), customer.Stamps, s.cfg.StampTarget, customer.Rewards,
		customer.CustomerID, customer.ResetDate.Format(resetDateLayout),
	), nil
}

func (s *PassportService) handleStamp(ctx context.Context, sender, customerID string) (string, error) {
	staff, err := s.authorizer.Resolve(ctx, sender)
	if err != nil {
		return "", err
	}
	if staff == nil {
		return replyStampUnauthorized, nil
	}
	if customerID == "" {
		return replyStampMissingID, nil
	}

	customer, err := s.customers.GetByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Sprintf("Customer #%s not found.", customerID), nil
	}
	if err != nil {
		return "", err
	}

	now := s.now()
	duplicateReply := fmt.Sprintf(
		"Duplicate stamp blocked. Last stamp for #%s was less than %d minutes ago.",
		customer.CustomerID, s.cfg.StampWindowMinutes,
	)

	// Advisory fast path; the audit lookback below stays authoritative.
	if recent, guardErr := s.guard.Recent(ctx, staff.PhoneNumber, customer.CustomerID); guardErr != nil {
		s.logger.Debug("stamp guard unavailable", zap.Error(guardErr))
	} else if recent {
		return duplicateReply, nil
	}

	since := now.Add(-s.cfg.StampWindow())
	if _, err := s.audit.FindRecent(ctx, staff.PhoneNumber, customer.CustomerID, domain.AuditActionStamp, since); err == nil {
		return duplicateReply, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	stamps, err := s.customers.AddStamp(ctx, customer.CustomerID, now)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Sprintf("Customer #%s not found.", customerID), nil
	}
	if err != nil {
		return "", err
	}

	entry := &domain.AuditLog{
		StaffPhone: staff.PhoneNumber,
		CustomerID: customer.CustomerID,
		Action:     domain.AuditActionStamp,
		Details:    fmt.Sprintf("Stamp added by %s", staff.Name),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return "", err
	}
	if guardErr := s.guard.Mark(ctx, staff.PhoneNumber, customer.CustomerID); guardErr != nil {
		s.logger.Debug("stamp guard mark failed", zap.Error(guardErr))
	}

	s.publish(ctx, events.Event{
		Type:       events.EventStampAdded,
		CustomerID: customer.CustomerID,
		Payload:    events.StampAddedPayload{StaffPhone: staff.PhoneNumber, CustomerPhone: customer.PhoneNumber, Stamps: stamps},
	})
	return fmt.Sprintf("✅ Stamp added for %s. Progress: %d/%d.", customer.DisplayName(), stamps, s.cfg.StampTarget), nil
}

func (s *PassportService) handleReward(ctx context.Context, sender string) (string, error) {
	customer, err := s.customers.GetByPhone(ctx, sender)
	if errors.Is(err, repository.ErrNotFound) {
		return replyJoinPrompt, nil
	}
	if err != nil {
		return "", err
	}

	if customer.Stamps < s.cfg.StampTarget {
		return s.rewardProgress(customer.Stamps), nil
	}

	rewards, err := s.customers.GrantReward(ctx, sender, s.cfg.StampTarget, s.now())
	if errors.Is(err, repository.ErrConditionFailed) {
		// Raced with a redeem between read and write; report fresh progress.
		refreshed, refreshErr := s.customers.GetByPhone(ctx, sender)
		if refreshErr != nil {
			return "", refreshErr
		}
		return s.rewardProgress(refreshed.Stamps), nil
	}
	if err != nil {
		return "", err
	}

	code := fmt.Sprintf("#%s-R%d", customer.CustomerID, rewards)
	s.publish(ctx, events.Event{
		Type:       events.EventRewardUnlocked,
		CustomerID: customer.CustomerID,
		Payload:    events.RewardUnlockedPayload{Rewards: rewards, RewardCode: code},
	})
	return fmt.Sprintf(
		"🎉 Congrats %s! Free Coffee unlocked.\n\nShow this message to the staff to redeem your reward.\n\nReward Code: %s",
		customer.DisplayName(), code,
	), nil
}

func (s *PassportService) handleRedeem(ctx context.Context, sender, customerID string) (string, error) {
	staff, err := s.authorizer.Resolve(ctx, sender)
	if err != nil {
		return "", err
	}
	if staff == nil {
		return replyRedeemUnauthorized, nil
	}
	if customerID == "" {
		return replyRedeemMissingID, nil
	}

	customer, err := s.customers.GetByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Sprintf("Customer #%s not found.", customerID), nil
	}
	if err != nil {
		return "", err
	}

	noRewards := fmt.Sprintf("Customer #%s has no rewards to redeem.", customer.CustomerID)
	if customer.Rewards < 1 {
		return noRewards, nil
	}

	rewards, err := s.customers.RedeemReward(ctx, customer.CustomerID, s.now())
	if errors.Is(err, repository.ErrConditionFailed) {
		return noRewards, nil
	}
	if err != nil {
		return "", err
	}

	entry := &domain.AuditLog{
		StaffPhone: staff.PhoneNumber,
		CustomerID: customer.CustomerID,
		Action:     domain.AuditActionRedeem,
		Details:    fmt.Sprintf("Reward redeemed by %s", staff.Name),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return "", err
	}

	s.publish(ctx, events.Event{
		Type:       events.EventRewardRedeemed,
		CustomerID: customer.CustomerID,
		Payload:    events.RewardRedeemedPayload{StaffPhone: staff.PhoneNumber, CustomerPhone: customer.PhoneNumber, Rewards: rewards},
	})
	return fmt.Sprintf("✅ Reward redeemed for %s. Passport reset to 0/%d.", customer.DisplayName(), s.cfg.StampTarget), nil
}

func (s *PassportService) handleUpdateName(ctx context.Context, sender, newName string) (string, error) {
	_, err := s.customers.GetByPhone(ctx, sender)
	if errors.Is(err, repository.ErrNotFound) {
		return replyJoinPrompt, nil
	}
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(newName)
	if name == "" {
		return replyUpdateNameMissing, nil
	}

	if err := s.customers.SetName(ctx, sender, name, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return replyJoinPrompt, nil
		}
		return "", err
	}
	return fmt.Sprintf("✅ Name updated. Welcome back, %s!", name), nil
}

func (s *PassportService) welcomeBack(customer *domain.Customer) string {
	return fmt.Sprintf(
		"Welcome back! You already have a passport.\n\nStamps: %d/%d | Rewards: %d | ID: #%s\n\nSend 'STATUS' for full details.",
		customer.Stamps, s.cfg.StampTarget, customer.Rewards, customer.CustomerID,
	)
}

func (s *PassportService) rewardProgress(stamps int) string {
	return fmt.Sprintf(
		"You need %d stamps to unlock a reward. Current progress: %d/%d\n\nKeep collecting stamps!",
		s.cfg.StampTarget, stamps, s.cfg.StampTarget,
	)
}

func (s *PassportService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// newCustomerID generates a short customer token. Uniqueness is enforced by
// the store; handleJoin retries with a fresh token on collision.
func newCustomerID() string {
	return "C" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
