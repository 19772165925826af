package postgres

import (
	"context"

	"tasknest/internal/domain/entity"
	"tasknest/internal/domain/repository"
	"tasknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// todoRepository implements the repository.TodoRepository interface.
// Every statement it issues carries the owner filter; there is no code path
// that can read or mutate another user's rows.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for todoRepository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// Create persists a new todo stamped with its owner.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	if err := repo.db.WithContext(ctx).Create(todoM).Error; err != nil {
		return errors.WithStack(err)
	}

	todo.ID = todoM.ID
	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

// FindByIDAndOwner retrieves a todo matching both id and owner.
func (repo *todoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	var todoM model.TodoModel
	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&todoM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toTodoDomain(&todoM), nil
}

// ListByOwner returns all todos of the owner, newest first.
func (repo *todoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error) {
	var todoModels []*model.TodoModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&todoModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	todos := make([]*entity.Todo, 0, len(todoModels))
	for _, todoM := range todoModels {
		todos = append(todos, toTodoDomain(todoM))
	}

	return todos, nil
}

// UpdateFields applies a partial update as a single ownership-filtered UPDATE.
// Fields absent from the request keep their prior values; zero matched rows
// covers both an unknown id and a foreign owner.
func (repo *todoRepository) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, updates repository.TodoFieldUpdates) (*entity.Todo, error) {
	columns := map[string]any{}
	if updates.Name != nil {
		columns["name"] = *updates.Name
	}
	if updates.Description != nil {
		columns["description"] = *updates.Description
	}

	if len(columns) > 0 {
		result := repo.db.WithContext(ctx).
			Model(&model.TodoModel{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(columns)
		if result.Error != nil {
			return nil, errors.WithStack(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrTodoNotFound
		}
	}

	return repo.FindByIDAndOwner(ctx, id, ownerID)
}

// Delete removes the todo in a single ownership-filtered statement.
func (repo *todoRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.TodoModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	return &entity.Todo{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
