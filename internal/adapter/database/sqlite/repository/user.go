package repository

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"doneapp/internal/adapter/database/sqlite"
	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
)

type UserRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "created_at", "updated_at").
		Values(user.UUID.String(), user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		slog.Error("Insert failed", "error", err, "email", user.Email)
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) getOne(ctx context.Context, pred sq.Eq) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(pred).
		Limit(1)

	sql, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	rows, err := ur.db.QueryContext(ctx, sql, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	var user domain.User
	if err := ur.scanner.ScanRowToStruct(rows, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}
