package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{
	"user_id", "login", "email", "first_name", "last_name",
	"password_hash", "is_researcher", "created_at",
}

// userRepository is the SQL implementation of [UserRepository].
// It handles account creation and lookup against the "users" table and
// creates the companion "algorithm_settings" row.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUserWithSettings inserts the user and its algorithm settings in one
// transaction and returns the user with its assigned UserID.
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other failure → wrapped driver error; nothing is persisted.
func (r *userRepository) CreateUserWithSettings(ctx context.Context, user models.User, settings models.AlgorithmSettings) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	insertUser, userArgs, err := r.db.builder.
		Insert(user.TableName()).
		Columns("login", "email", "first_name", "last_name", "password_hash", "is_researcher", "created_at").
		Values(user.Login, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsResearcher, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := tx.QueryRowContext(ctx, insertUser, userArgs...).Scan(&user.UserID); err != nil {
			if conflict := userConflictError(err); conflict != nil {
				return conflict
			}
			return fmt.Errorf("unexpected DB error: %w", err)
		}

		settings.UserID = user.UserID
		insertSettings, settingsArgs, err := r.db.builder.
			Insert(settings.TableName()).
			Columns("user_id", "algorithm_package", "algorithm_name", "algorithm_params",
				"proportion", "raw_date", "row_count", "debug",
				"secret_question", "secret_answer", "model_path").
			Values(settings.UserID, settings.AlgorithmPackage, settings.AlgorithmName, paramsOrEmpty(settings.AlgorithmParams),
				settings.Parser.Proportion, settings.Parser.RawDate, settings.Parser.RowCount, settings.Debug,
				settings.SecretQuestion, settings.SecretAnswer, settings.ModelPath).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := tx.ExecContext(ctx, insertSettings, settingsArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUserWithSettings").Msg("error creating user")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByLogin retrieves the user with the given login.
// Returns [ErrNoUserWasFound] when there is none.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByLogin", sq.Eq{"login": login})
}

// GetUserByID retrieves the user with the given ID.
// Returns [ErrNoUserWasFound] when there is none.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.GetUserByID", sq.Eq{"user_id": userID})
}

// FindUsersByEmail returns every user registered with email. The restore
// flow treats anything but exactly one match as a failure.
func (r *userRepository) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersByEmail").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 1)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// LoginExists reports whether a user with login is registered.
func (r *userRepository) LoginExists(ctx context.Context, login string) (bool, error) {
	return r.exists(ctx, sq.Eq{"login": login})
}

// EmailExists reports whether a user with email is registered.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, sq.Eq{"email": email})
}

// UpdatePassword replaces the password hash of the user.
// Returns [ErrNoUserWasFound] when no row was updated.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) exists(ctx context.Context, where sq.Eq) (bool, error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.exists").Msg("error counting users")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Login, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.IsResearcher, &user.CreatedAt)
	return user, err
}

// paramsOrEmpty stores absent hyperparameters as an empty JSON object.
func paramsOrEmpty(params []byte) string {
	if len(params) == 0 {
		return "{}"
	}
	return string(params)
}
