package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"motorsonline/internal/models"
)

type ContactRepository struct {
	DB *sql.DB
}

const contactColumns = `id, user_id, phone, business_type, social_network, email, address, website, languages, country, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (models.Contact, error) {
	var (
		c         models.Contact
		languages string
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Phone, &c.BusinessType, &c.SocialNetwork,
		&c.Email, &c.Address, &c.Website, &languages, &c.Country,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return models.Contact{}, err
	}
	if languages != "" {
		c.Languages = strings.Split(languages, ",")
	}
	return c, nil
}

func (r *ContactRepository) GetContactByUserID(ctx context.Context, userID int) (models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = ?`
	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, models.ErrContactNotFound
	}
	if err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

// GetContactByCarID resolves the listing's owner and returns their contact
// profile, so a listing page can show seller details without a second query
// from the client.
func (r *ContactRepository) GetContactByCarID(ctx context.Context, carID int) (models.Contact, error) {
	query := `
		SELECT ` + prefixed(contactColumns, "ct.") + `
		FROM contacts ct
		JOIN cars c ON c.user_id = ct.user_id
		WHERE c.id = ?
	`
	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, carID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, models.ErrContactNotFound
	}
	if err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

// UpsertContact keeps the one-row-per-user invariant: the first save inserts,
// later saves update in place.
func (r *ContactRepository) UpsertContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	query := `
		INSERT INTO contacts
			(user_id, phone, business_type, social_network, email, address, website, languages, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			phone = VALUES(phone), business_type = VALUES(business_type),
			social_network = VALUES(social_network), email = VALUES(email),
			address = VALUES(address), website = VALUES(website),
			languages = VALUES(languages), country = VALUES(country),
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query,
		contact.UserID, contact.Phone, contact.BusinessType, contact.SocialNetwork,
		contact.Email, contact.Address, contact.Website,
		strings.Join(contact.Languages, ","), contact.Country,
	)
	if err != nil {
		return models.Contact{}, err
	}
	return r.GetContactByUserID(ctx, contact.UserID)
}

func prefixed(columns, prefix string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
