package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
)

type ArticleService struct {
	repomanager repomanager.RepositoryManager
}

func NewArticleService(m repomanager.RepositoryManager) *ArticleService {
	return &ArticleService{repomanager: m}
}

func (s *ArticleService) List(ctx context.Context, req models.PageRequest) (*models.Page[*models.Article], error) {
	repo := s.repomanager.Articles()

	items, err := repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	return models.NewPage(items, req, total), nil
}

// Feed returns the articles of the subjects userID subscribes to, newest
// first unless req asks for ascending order.
func (s *ArticleService) Feed(ctx context.Context, userID int64, req models.PageRequest) (*models.Page[*models.Article], error) {
	repo := s.repomanager.Articles()

	items, err := repo.ListFeed(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	total, err := repo.CountFeed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count feed: %w", err)
	}
	return models.NewPage(items, req, total), nil
}

func (s *ArticleService) BySubject(ctx context.Context, subjectID int64, req models.PageRequest) (*models.Page[*models.Article], error) {
	if _, err := s.repomanager.Subjects().GetByID(ctx, subjectID, 0); err != nil {
		return nil, notFound(err, "subject %d not found", subjectID)
	}

	repo := s.repomanager.Articles()
	items, err := repo.ListBySubject(ctx, subjectID, req)
	if err != nil {
		return nil, fmt.Errorf("list articles by subject: %w", err)
	}
	total, err := repo.CountBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("count articles by subject: %w", err)
	}
	return models.NewPage(items, req, total), nil
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repomanager.Articles().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "article %d not found", id)
	}
	return a, nil
}

// Create publishes an article by authorID under an existing subject.
func (s *ArticleService) Create(ctx context.Context, authorID int64, title, content string, subjectID int64) (*models.Article, error) {
	title = strings.TrimSpace(title)

	v := common.NewValidationError()
	checkText(v, "title", title, titleMax)
	if strings.TrimSpace(content) == "" {
		v.Add("content", "content is required")
	}
	checkID(v, "subjectId", subjectID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	var created *models.Article
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Subjects().GetByID(ctx, subjectID, authorID); err != nil {
			return notFound(err, "subject %d not found", subjectID)
		}
		a, err := r.Articles().Create(ctx, &models.Article{
			Title:     title,
			Content:   content,
			AuthorID:  authorID,
			SubjectID: subjectID,
		})
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		created, err = r.Articles().GetByID(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
