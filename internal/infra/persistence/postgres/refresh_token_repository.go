package postgres

import (
	"context"
	"time"

	"tasknest/internal/domain/entity"
	"tasknest/internal/domain/repository"
	"tasknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository implements the repository.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create persists a new active session.
func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)
	if tokenM.Status == "" {
		tokenM.Status = string(entity.SessionStatusActive)
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		return errors.WithStack(err)
	}

	token.ID = tokenM.ID
	token.Status = entity.SessionStatus(tokenM.Status)
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByHash retrieves a session record by its stored hash, whatever its status.
func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	if err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// FindActiveByUserID retrieves all active, unexpired sessions for a user, newest first.
func (repo *refreshTokenRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	var tokenModels []*model.RefreshTokenModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND expires_at > ?",
			userID, string(entity.SessionStatusActive), time.Now()).
		Order("created_at DESC").
		Find(&tokenModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenModels))
	for _, tokenM := range tokenModels {
		tokens = append(tokens, toRefreshTokenDomain(tokenM))
	}

	return tokens, nil
}

// MarkRotated flips the session matching oldHash from active to rotated.
// The conditional UPDATE is the compare-and-swap: of two concurrent rotations
// of the same token exactly one matches the active row, and the loser is told
// apart from a plain miss by re-reading the row.
func (repo *refreshTokenRepository) MarkRotated(ctx context.Context, oldHash string, now time.Time) (*entity.RefreshToken, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND status = ? AND expires_at > ?",
			oldHash, string(entity.SessionStatusActive), now).
		Update("status", string(entity.SessionStatusRotated))
	if result.Error != nil {
		return nil, errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		token, err := repo.FindByHash(ctx, oldHash)
		if err != nil {
			// Never issued here or already purged: a plain miss.
			return nil, err
		}
		if !token.ExpiresAt.After(now) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		// The row exists, is unexpired, and is not active: someone already
		// rotated or revoked it. Treat as reuse.
		return token, repository.ErrRefreshTokenReused
	}

	return repo.FindByHash(ctx, oldHash)
}

// RevokeByHash marks the matching session revoked.
func (repo *refreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ?", tokenHash).
		Update("status", string(entity.SessionStatusRevoked))
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// RevokeByUserID marks every session of the user revoked.
func (repo *refreshTokenRepository) RevokeByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND status = ?", userID, string(entity.SessionStatusActive)).
		Update("status", string(entity.SessionStatusRevoked)).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteExpired removes sessions past their expiry.
func (repo *refreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, errors.WithStack(result.Error)
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		Status:    entity.SessionStatus(data.Status),
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromRefreshTokenDomain(data *entity.RefreshToken) *model.RefreshTokenModel {
	if data == nil {
		return nil
	}

	return &model.RefreshTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		Status:    string(data.Status),
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
