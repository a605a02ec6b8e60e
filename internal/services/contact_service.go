package services

import (
	"context"

	"motorsonline/internal/models"
	"motorsonline/internal/repositories"
)

type ContactService struct {
	ContactRepo *repositories.ContactRepository
}

func (s *ContactService) GetContactByUserID(ctx context.Context, userID int) (models.Contact, error) {
	return s.ContactRepo.GetContactByUserID(ctx, userID)
}

func (s *ContactService) GetContactByCarID(ctx context.Context, carID int) (models.Contact, error) {
	return s.ContactRepo.GetContactByCarID(ctx, carID)
}

func (s *ContactService) SaveContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	return s.ContactRepo.UpsertContact(ctx, contact)
}
