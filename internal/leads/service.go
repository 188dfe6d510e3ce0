package leads

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Hopetizzy/Abisam-properties/internal/dialogue"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidSource = errors.New("invalid source")
	ErrNotFound      = errors.New("lead not found")
)

// SheetsPusher appends the lead as a spreadsheet row.
type SheetsPusher interface {
	Push(ctx context.Context, lead Lead) error
}

// EmailNotifier mails the lead to the agency inbox.
type EmailNotifier interface {
	SendLeadNotification(ctx context.Context, toEmail string, lead Lead) (string, error)
}

type Service struct {
	repo        Repository
	location    *time.Location
	sheets      SheetsPusher
	emailer     EmailNotifier
	notifyEmail string
	log         *slog.Logger
}

func NewService(repo Repository, location *time.Location, sheets SheetsPusher, emailer EmailNotifier, notifyEmail string, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		location:    location,
		sheets:      sheets,
		emailer:     emailer,
		notifyEmail: notifyEmail,
		log:         log,
	}
}

// Dispatch stores the finished chat lead and fans it out to the sheet
// webhook and the notification inbox. The fan-out runs detached so the
// visitor's final reply never waits on third parties.
func (s *Service) Dispatch(ctx context.Context, src dialogue.Lead) error {
	now := time.Now().In(s.location)
	lead := Lead{
		ID:        primitive.NewObjectID().Hex(),
		SessionID: src.SessionID,
		Name:      strings.TrimSpace(src.Name),
		Phone:     strings.TrimSpace(src.Phone),
		Property:  src.Property,
		Date:      src.Date,
		Status:    StatusNew,
		Source:    SourceChat,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(ctx, lead)
	if err != nil {
		s.log.Warn("leads: persist failed, notifying anyway",
			slog.String("session_id", lead.SessionID),
			slog.String("error", err.Error()),
		)
	}

	go s.notify(lead)
	return err
}

func (s *Service) notify(lead Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	if s.sheets != nil {
		if err := s.sheets.Push(ctx, lead); err != nil {
			s.log.Warn("leads: sheet webhook failed",
				slog.String("lead_id", lead.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.emailer != nil && s.notifyEmail != "" {
		if _, err := s.emailer.SendLeadNotification(ctx, s.notifyEmail, lead); err != nil {
			s.log.Warn("leads: notification email failed",
				slog.String("lead_id", lead.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Service) ListAdmin(ctx context.Context, filter ListFilter, limit, offset int64) ([]Lead, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	filter.Source = strings.ToLower(strings.TrimSpace(filter.Source))

	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}
	if filter.Source != "" && !IsValidSource(filter.Source) {
		return nil, 0, ErrInvalidSource
	}

	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) GetAdminByID(ctx context.Context, id string) (Lead, error) {
	lead, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Lead, error) {
	id = strings.TrimSpace(id)
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return Lead{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return updated, nil
}
