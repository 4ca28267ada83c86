package rsvp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNameRequired = errors.New("name is required for rsvps without a customer")

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type CreateInput struct {
	Name           string
	IsAttending    bool
	AmountOfGuests int
	CustomerID     string
}

type UpdateInput struct {
	Name           *string
	IsAttending    *bool
	AmountOfGuests *int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (RSVP, error) {
	name := strings.TrimSpace(in.Name)

	var customerID *string
	if in.CustomerID != "" {
		// The customer table belongs to the host; only resolve the name.
		var customerName string
		err := s.db.WithContext(ctx).
			Table("customers").
			Select("CONCAT(first_name, ' ', last_name)").
			Where("id = ?", in.CustomerID).
			Scan(&customerName).Error
		if err != nil {
			return RSVP{}, err
		}
		if customerName != "" {
			name = customerName
		}
		id := in.CustomerID
		customerID = &id
	}

	if name == "" {
		return RSVP{}, ErrNameRequired
	}

	now := time.Now()
	r := RSVP{
		ID:             "rsvp_" + uuid.NewString(),
		Name:           name,
		IsAttending:    in.IsAttending,
		AmountOfGuests: in.AmountOfGuests,
		CustomerID:     customerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(&r).Error
	})
	return r, err
}

func (s *Service) Retrieve(ctx context.Context, id string) (RSVP, error) {
	var r RSVP
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	return r, err
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (RSVP, error) {
	var r RSVP
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]any{"updated_at": time.Now()}
		if in.Name != nil {
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.IsAttending != nil {
			updates["is_attending"] = *in.IsAttending
		}
		if in.AmountOfGuests != nil {
			updates["amount_of_guests"] = *in.AmountOfGuests
		}

		if err := tx.WithContext(ctx).Model(&RSVP{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).First(&r, "id = ?", id).Error
	})
	return r, err
}
