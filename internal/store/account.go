package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"replyloop.app/engine/internal/model"
)

type accountStore struct {
	q Querier
}

func (s *accountStore) Create(ctx context.Context, account *model.MonitoredAccount) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO monitored_accounts (id, user_id, handle, display_name, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, handle, display_name, category, created_at`,
		account.ID, account.UserID, account.Handle, account.DisplayName, account.Category)

	created, err := scanAccount(row)
	if err != nil {
		return err
	}
	// Update the model with DB-generated fields
	*account = *created
	return nil
}

func (s *accountStore) Delete(ctx context.Context, id, userID int64) error {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM monitored_accounts
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *accountStore) ListByUser(ctx context.Context, userID int64) ([]model.MonitoredAccount, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, user_id, handle, display_name, category, created_at
		FROM monitored_accounts
		WHERE user_id = $1
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.MonitoredAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (s *accountStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM monitored_accounts WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func scanAccount(row pgx.Row) (*model.MonitoredAccount, error) {
	var account model.MonitoredAccount
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Handle,
		&account.DisplayName,
		&account.Category,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
