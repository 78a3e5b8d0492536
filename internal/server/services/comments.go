package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
)

type CommentService struct {
	repomanager repomanager.RepositoryManager
}

func NewCommentService(m repomanager.RepositoryManager) *CommentService {
	return &CommentService{repomanager: m}
}

// ListByArticle returns comments oldest first.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64, req models.PageRequest) (*models.Page[*models.Comment], error) {
	if err := s.requireArticle(ctx, s.repomanager, articleID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Comments()
	items, err := repo.ListByArticle(ctx, articleID, req)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	total, err := repo.CountByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return models.NewPage(items, req, total), nil
}

func (s *CommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := s.repomanager.Comments().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "comment %d not found", id)
	}
	return c, nil
}

func (s *CommentService) Create(ctx context.Context, authorID, articleID int64, content string) (*models.Comment, error) {
	v := common.NewValidationError()
	checkText(v, "content", content, commentMax)
	if err := v.Err(); err != nil {
		return nil, err
	}

	var created *models.Comment
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := s.requireArticle(ctx, r, articleID); err != nil {
			return err
		}
		c, err := r.Comments().Create(ctx, &models.Comment{Content: content, AuthorID: authorID, ArticleID: articleID})
		if err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		created, err = r.Comments().GetByID(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		c, err := r.Comments().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "comment %d not found", id)
		}
		if c.AuthorID != userID {
			return common.Forbidden("you can only delete your own comments")
		}
		if err := r.Comments().Delete(ctx, id); err != nil {
			return notFound(err, "comment %d not found", id)
		}
		return nil
	})
}

func (s *CommentService) requireArticle(ctx context.Context, r repomanager.Repositories, articleID int64) error {
	ok, err := r.Articles().Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("check article: %w", err)
	}
	if !ok {
		return common.NotFound("article %d not found", articleID)
	}
	return nil
}
