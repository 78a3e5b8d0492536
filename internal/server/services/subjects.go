package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
)

type SubjectService struct {
	repomanager repomanager.RepositoryManager
}

func NewSubjectService(m repomanager.RepositoryManager) *SubjectService {
	return &SubjectService{repomanager: m}
}

// List returns subjects ordered by name, marked with the caller's
// subscriptions.
func (s *SubjectService) List(ctx context.Context, userID int64, req models.PageRequest) (*models.Page[*models.Subject], error) {
	repo := s.repomanager.Subjects()

	items, err := repo.List(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subjects: %w", err)
	}
	return models.NewPage(items, req, total), nil
}

func (s *SubjectService) Get(ctx context.Context, userID, id int64) (*models.Subject, error) {
	subj, err := s.repomanager.Subjects().GetByID(ctx, id, userID)
	if err != nil {
		return nil, notFound(err, "subject %d not found", id)
	}
	return subj, nil
}

// Create adds a subject. Names are unique regardless of case.
func (s *SubjectService) Create(ctx context.Context, name, description string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	v := common.NewValidationError()
	checkText(v, "name", name, subjectNameMax)
	if len([]rune(description)) > descriptionMax {
		v.Add("description", fmt.Sprintf("description must be at most %d characters", descriptionMax))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Subjects()
	exists, err := repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check subject name: %w", err)
	}
	if exists {
		return nil, common.Conflict("a subject named %q already exists", name)
	}

	subj, err := repo.Create(ctx, &models.Subject{Name: name, Description: description})
	if errors.Is(err, common.ErrConflict) {
		return nil, common.Conflict("a subject named %q already exists", name)
	}
	if err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subj, nil
}

// Subscribe fails with a conflict when userID already follows the subject.
func (s *SubjectService) Subscribe(ctx context.Context, userID, subjectID int64) (*models.Subject, error) {
	var subj *models.Subject
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		if subj, err = r.Subjects().GetByID(ctx, subjectID, userID); err != nil {
			return notFound(err, "subject %d not found", subjectID)
		}
		if subj.IsSubscribed {
			return common.Conflict("already subscribed to %s", subj.Name)
		}
		if err := r.Subjects().Subscribe(ctx, userID, subjectID); err != nil {
			if errors.Is(err, common.ErrConflict) {
				return common.Conflict("already subscribed to %s", subj.Name)
			}
			return fmt.Errorf("subscribe: %w", err)
		}
		subj.IsSubscribed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subj, nil
}

// Unsubscribe fails with a conflict when userID does not follow the subject.
func (s *SubjectService) Unsubscribe(ctx context.Context, userID, subjectID int64) (*models.Subject, error) {
	var subj *models.Subject
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		if subj, err = r.Subjects().GetByID(ctx, subjectID, userID); err != nil {
			return notFound(err, "subject %d not found", subjectID)
		}
		if !subj.IsSubscribed {
			return common.Conflict("not subscribed to %s", subj.Name)
		}
		if err := r.Subjects().Unsubscribe(ctx, userID, subjectID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.Conflict("not subscribed to %s", subj.Name)
			}
			return fmt.Errorf("unsubscribe: %w", err)
		}
		subj.IsSubscribed = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subj, nil
}
