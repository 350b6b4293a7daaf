// pkg/businesses/postgres.go
package businesses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStores implements the three store interfaces over one pool.
type PostgresStores struct {
	dbPool *pgxpool.Pool
	log    *zap.SugaredLogger
}

func NewPostgresStores(dbPool *pgxpool.Pool, log *zap.SugaredLogger) *PostgresStores {
	return &PostgresStores{dbPool: dbPool, log: log}
}

// EnsureSchema creates required tables if they do not already exist.
// Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS businesses (
  name text PRIMARY KEY,
  id uuid NOT NULL,
  public_id text UNIQUE,
  description text,
  admin_email text,
  auto_accept_deliveries boolean NOT NULL DEFAULT false,
  state text NOT NULL DEFAULT 'PENDING',
  created_at timestamptz NOT NULL DEFAULT NOW(),
  updated_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS users (
  email text PRIMARY KEY,
  two_factor_secret text,
  created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS user_business_profiles (
  email text,
  business text,
  role text,
  state text NOT NULL DEFAULT 'PENDING',
  updated_at timestamptz NOT NULL DEFAULT NOW(),
  PRIMARY KEY (email, business, role)
);
CREATE INDEX IF NOT EXISTS businesses_state_idx ON businesses(state);
`)
	return err
}

const businessCols = `name, id, public_id, COALESCE(description,''), COALESCE(admin_email,''), auto_accept_deliveries, state`

func scanBusiness(row pgx.Row) (Business, error) {
	var b Business
	if err := row.Scan(&b.Name, &b.ID, &b.PublicID, &b.Description, &b.AdminEmail, &b.AutoAcceptDeliveries, &b.State); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Business{}, ErrNotFound
		}
		return Business{}, err
	}
	return b, nil
}

func (s *PostgresStores) GetByName(ctx context.Context, name string) (Business, error) {
	row := s.dbPool.QueryRow(ctx, `SELECT `+businessCols+` FROM businesses WHERE name=$1`, name)
	return scanBusiness(row)
}

func (s *PostgresStores) GetByPublicID(ctx context.Context, publicID string) (Business, error) {
	row := s.dbPool.QueryRow(ctx, `SELECT `+businessCols+` FROM businesses WHERE public_id=$1`, publicID)
	return scanBusiness(row)
}

func (s *PostgresStores) Put(ctx context.Context, b Business) error {
	_, err := s.dbPool.Exec(ctx, `INSERT INTO businesses(name,id,public_id,description,admin_email,auto_accept_deliveries,state)
	  VALUES ($1,$2,$3,$4,$5,$6,$7)
	  ON CONFLICT (name) DO UPDATE SET description=EXCLUDED.description,admin_email=EXCLUDED.admin_email,
	    auto_accept_deliveries=EXCLUDED.auto_accept_deliveries,state=EXCLUDED.state,updated_at=NOW()`,
		b.Name, b.ID, b.PublicID, b.Description, b.AdminEmail, b.AutoAcceptDeliveries, b.State)
	return err
}

func (s *PostgresStores) Update(ctx context.Context, b Business) error {
	tag, err := s.dbPool.Exec(ctx, `UPDATE businesses SET description=$2,admin_email=$3,auto_accept_deliveries=$4,state=$5,updated_at=NOW() WHERE name=$1`,
		b.Name, b.Description, b.AdminEmail, b.AutoAcceptDeliveries, b.State)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStores) UpdateState(ctx context.Context, name string, expected, next State) error {
	tag, err := s.dbPool.Exec(ctx, `UPDATE businesses SET state=$3,updated_at=NOW() WHERE name=$1 AND state=$2`,
		name, expected, next)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// distinguish a missing row from a lost race
		var one int
		if err := s.dbPool.QueryRow(ctx, `SELECT 1 FROM businesses WHERE name=$1`, name).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return ErrStateConflict
	}
	return nil
}

func (s *PostgresStores) Scan(ctx context.Context) ([]Business, error) {
	rows, err := s.dbPool.Query(ctx, `SELECT `+businessCols+` FROM businesses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(&b.Name, &b.ID, &b.PublicID, &b.Description, &b.AdminEmail, &b.AutoAcceptDeliveries, &b.State); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type pgUserStore struct{ *PostgresStores }

func (s pgUserStore) Get(ctx context.Context, email string) (User, error) {
	var u User
	err := s.dbPool.QueryRow(ctx, `SELECT email, COALESCE(two_factor_secret,'') FROM users WHERE email=$1`, email).
		Scan(&u.Email, &u.TwoFactorSecret)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s pgUserStore) Put(ctx context.Context, u User) error {
	_, err := s.dbPool.Exec(ctx, `INSERT INTO users(email,two_factor_secret) VALUES ($1,$2)
	  ON CONFLICT (email) DO UPDATE SET two_factor_secret=EXCLUDED.two_factor_secret`,
		u.Email, u.TwoFactorSecret)
	return err
}

type pgProfileStore struct{ *PostgresStores }

func (s pgProfileStore) Get(ctx context.Context, email, business, role string) (Profile, error) {
	var p Profile
	err := s.dbPool.QueryRow(ctx, `SELECT email,business,role,state FROM user_business_profiles WHERE email=$1 AND business=$2 AND role=$3`,
		email, business, role).Scan(&p.Email, &p.Business, &p.Role, &p.State)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s pgProfileStore) Put(ctx context.Context, p Profile) error {
	_, err := s.dbPool.Exec(ctx, `INSERT INTO user_business_profiles(email,business,role,state) VALUES ($1,$2,$3,$4)
	  ON CONFLICT (email,business,role) DO UPDATE SET state=EXCLUDED.state,updated_at=NOW()`,
		p.Email, p.Business, p.Role, p.State)
	return err
}

func (s pgProfileStore) Update(ctx context.Context, p Profile) error {
	tag, err := s.dbPool.Exec(ctx, `UPDATE user_business_profiles SET state=$4,updated_at=NOW() WHERE email=$1 AND business=$2 AND role=$3`,
		p.Email, p.Business, p.Role, p.State)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStores) Users() UserStore       { return pgUserStore{s} }
func (s *PostgresStores) Profiles() ProfileStore { return pgProfileStore{s} }
