package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"log/slog"

	"github.com/phamchuong05/mangmaytinh/internal/app"
)

type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgres connects to postgres and returns a pool wrapper
func NewPostgres(ctx context.Context, cfg app.Config, log *slog.Logger) (*Postgres, error) {
	pc, err := pgxpool.ParseConfig(cfg.PGURL)
	if err != nil {
		return nil, err
	}
	pc.MaxConns = int32(cfg.PGMaxConn)
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool, log: log}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

// FindUser fetches a credential record by username
func (p *Postgres) FindUser(ctx context.Context, username string) (User, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT username, password_hash, avatar_path, created_at
		FROM users
		WHERE username = $1
	`, username)

	var u User
	if err := row.Scan(&u.Username, &u.PasswordHash, &u.AvatarPath, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// CreateUser inserts a credential record, mapping unique violations to ErrExists
func (p *Postgres) CreateUser(ctx context.Context, u User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, avatar_path)
		VALUES ($1, $2, $3)
	`, u.Username, u.PasswordHash, u.AvatarPath)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrExists
	}
	if err != nil {
		return err
	}
	p.log.Info("user.created", "user", u.Username)
	return nil
}
