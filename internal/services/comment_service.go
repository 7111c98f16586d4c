package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bazaar/internal/domain"
)

var ErrEmptyComment = errors.New("comment is empty")

type CommentService struct {
	gw Gateway
}

func NewCommentService(gw Gateway) *CommentService {
	return &CommentService{gw: gw}
}

// Post stores a comment as written. Denylisted terms are redacted when
// comments are read, not here.
func (s *CommentService) Post(ctx context.Context, itemID, userID int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	it, err := s.gw.FetchItemByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	if it == nil {
		return fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}
	if err := s.gw.RecordComment(ctx, itemID, userID, text); err != nil {
		return fmt.Errorf("record comment %d: %w", itemID, err)
	}
	return nil
}
