package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sourcecd/warehouse/internal/crypto"
	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/prjerrors"
)

type PgDB struct {
	db *sql.DB
}

var (
	createSecureTable = "CREATE TABLE IF NOT EXISTS security (id BIGSERIAL PRIMARY KEY, seckey VARCHAR(255))"
	checkSecurityKey  = "SELECT COUNT (id) FROM security"
	createSecureKey   = "INSERT INTO security (seckey) VALUES ($1)"
	getSecurityKey    = "SELECT seckey FROM security ORDER BY id LIMIT 1"

	createUserTable = "CREATE TABLE IF NOT EXISTS users (id BIGSERIAL, login VARCHAR(255) PRIMARY KEY, password VARCHAR(255))"
	createUserRec   = "INSERT INTO users (login, password) VALUES ($1, $2)"
	updateUserPass  = "UPDATE users SET password=$2 WHERE login=$1"
	getUserRec      = "SELECT password FROM users WHERE login=$1"

	createJobsTable = "CREATE TABLE IF NOT EXISTS jobs (id UUID PRIMARY KEY, kind VARCHAR(32), login VARCHAR(255), order_num VARCHAR(64), detail TEXT, created_at TIMESTAMPTZ)"
	createJobsIndex = "CREATE INDEX IF NOT EXISTS jobs_created_at ON jobs (created_at DESC)"
	createJobRec    = "INSERT INTO jobs (id, kind, login, order_num, detail, created_at) VALUES ($1, $2, $3, $4, $5, $6)"
	listJobs        = "SELECT id, kind, login, order_num, detail, created_at FROM jobs ORDER BY created_at DESC LIMIT $1"
)

func NewDB(dsn string) (*PgDB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &PgDB{
		db: db,
	}, nil
}

func (pg *PgDB) Close() error {
	return pg.db.Close()
}

func (pg *PgDB) PopulateDB(ctx context.Context) error {
	tx, err := pg.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{createSecureTable, createUserTable, createJobsTable, createJobsIndex} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (pg *PgDB) InitSecKey(ctx context.Context) error {
	var count int
	row := pg.db.QueryRowContext(ctx, checkSecurityKey)
	if err := row.Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		seckey, err := crypto.GenerateRandomKey()
		if err != nil {
			return err
		}
		if _, err = pg.db.ExecContext(ctx, createSecureKey, seckey); err != nil {
			return err
		}
	}

	return nil
}

func (pg *PgDB) GetSecKey(ctx context.Context) (string, error) {
	var seckey string
	row := pg.db.QueryRowContext(ctx, getSecurityKey)
	if err := row.Scan(&seckey); err != nil {
		return "", err
	}

	return seckey, nil
}

func (pg *PgDB) RegisterUser(ctx context.Context, user *models.User) error {
	if _, err := pg.db.ExecContext(ctx, createUserRec, user.Login, crypto.GeneratePasswordHash(user.Password)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return prjerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SeedUsers registers configured users; existing users get the configured password.
func (pg *PgDB) SeedUsers(ctx context.Context, users map[string]string) error {
	for login, password := range users {
		err := pg.RegisterUser(ctx, &models.User{Login: login, Password: password})
		if errors.Is(err, prjerrors.ErrAlreadyExists) {
			_, err = pg.db.ExecContext(ctx, updateUserPass, login, crypto.GeneratePasswordHash(password))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (pg *PgDB) AuthUser(ctx context.Context, user *models.User) error {
	var password string
	row := pg.db.QueryRowContext(ctx, getUserRec, user.Login)
	if err := row.Scan(&password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return prjerrors.ErrNotExists
		}
		return err
	}
	if crypto.GeneratePasswordHash(user.Password) != password {
		return prjerrors.ErrNotExists
	}
	return nil
}

func (pg *PgDB) SaveJob(ctx context.Context, job *models.Job) error {
	_, err := pg.db.ExecContext(ctx, createJobRec, job.ID, job.Kind, job.Login, job.OrderNum, job.Detail, job.CreatedAt)
	return err
}

func (pg *PgDB) ListJobs(ctx context.Context, limit int) ([]models.Job, error) {
	rows, err := pg.db.QueryContext(ctx, listJobs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(&job.ID, &job.Kind, &job.Login, &job.OrderNum, &job.Detail, &job.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	if len(jobs) == 0 {
		return nil, prjerrors.ErrEmptyData
	}
	return jobs, nil
}
