package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

var (
	// ErrDuplicateEmail reports a write that collides with the unique
	// index on lower(email).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrVersionConflict reports that the aggregate row changed between
	// load and save. Callers reload and retry.
	ErrVersionConflict = errors.New("user aggregate version conflict")
)

// UserRepository persists the User aggregate as a single document row:
// scalar account columns plus jsonb sub-collections, written back whole.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const uniqueViolationCode = "23505"

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, name, email, password_hash, favorites, cart, orders, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
        RETURNING version, created_at, updated_at`

	favorites, cart, orders, err := marshalCollections(user)
	if err != nil {
		return err
	}

	err = r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		favorites,
		cart,
		orders,
	).Scan(&user.Version, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update writes the whole aggregate back in one conditional statement. The
// version predicate rejects writes against a row that moved since load.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users
        SET name=$1, email=$2, password_hash=$3, favorites=$4, cart=$5, orders=$6,
            version=version+1, updated_at=NOW()
        WHERE id=$7 AND version=$8`

	favorites, cart, orders, err := marshalCollections(user)
	if err != nil {
		return err
	}

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		favorites,
		cart,
		orders,
		user.ID,
		user.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	user.Version++
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, favorites, cart, orders, version, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, favorites, cart, orders, version, created_at, updated_at
        FROM users WHERE LOWER(email)=LOWER($1)`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user      domain.User
		favorites []byte
		cart      []byte
		orders    []byte
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&favorites,
		&cart,
		&orders,
		&user.Version,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(favorites, &user.Favorites); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if err := json.Unmarshal(cart, &user.Cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if err := json.Unmarshal(orders, &user.Orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return &user, nil
}

func marshalCollections(user *domain.User) (favorites, cart, orders []byte, err error) {
	if favorites, err = json.Marshal(emptyIfNilStrings(user.Favorites)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode favorites: %w", err)
	}
	if cart, err = json.Marshal(emptyIfNilCart(user.Cart)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode cart: %w", err)
	}
	if orders, err = json.Marshal(emptyIfNilOrders(user.Orders)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode orders: %w", err)
	}
	return favorites, cart, orders, nil
}

func emptyIfNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilCart(s []domain.CartItem) []domain.CartItem {
	if s == nil {
		return []domain.CartItem{}
	}
	return s
}

func emptyIfNilOrders(s []domain.Order) []domain.Order {
	if s == nil {
		return []domain.Order{}
	}
	return s
}
