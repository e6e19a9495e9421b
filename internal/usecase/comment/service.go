package comment

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wakostech/blog-backend/domain"
)

type Service struct {
	commentRepo domain.CommentRepository
	blogRepo    domain.BlogRepository
	engRepo     domain.EngagementRepository
	userRepo    domain.UserRepository
	stats       domain.StatsRefresher
}

var _ domain.CommentUsecase = (*Service)(nil)

func NewService(
	commentRepo domain.CommentRepository,
	blogRepo domain.BlogRepository,
	engRepo domain.EngagementRepository,
	userRepo domain.UserRepository,
	stats domain.StatsRefresher,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		engRepo:     engRepo,
		userRepo:    userRepo,
		stats:       stats,
	}
}

// Create stores the comment after verifying the blog and, for a reply, the
// parent comment. Replies to replies are rejected: the tree is two levels
// deep at most.
func (s *Service) Create(ctx context.Context, c *domain.Comment) error {
	if strings.TrimSpace(c.Content) == "" {
		return domain.ErrBadParamInput
	}

	b, err := s.blogRepo.GetByID(ctx, c.BlogID)
	if err != nil {
		return err
	}

	if c.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *c.ParentID)
		if err != nil {
			return err
		}
		if parent.BlogID != c.BlogID {
			return domain.ErrBadParamInput
		}
		if !parent.TopLevel() {
			return domain.ErrBadParamInput
		}
	}

	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}

	s.blogRepo.Invalidate(ctx, c.BlogID)
	s.stats.Touch(b.User.ID)
	return nil
}

// FetchByBlog assembles the comment tree: roots newest first, replies per
// root oldest first, authors and like counts filled.
func (s *Service) FetchByBlog(ctx context.Context, blogID int64) ([]*domain.Comment, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	roots, err := s.commentRepo.FetchRoots(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []*domain.Comment{}, nil
	}

	rootIDs := make([]int64, 0, len(roots))
	byID := make(map[int64]*domain.Comment, len(roots))
	for _, r := range roots {
		rootIDs = append(rootIDs, r.ID)
		byID[r.ID] = r
	}

	replies, err := s.commentRepo.FetchReplies(ctx, rootIDs)
	if err != nil {
		return nil, err
	}
	for _, rep := range replies {
		if parent, ok := byID[*rep.ParentID]; ok {
			parent.Replies = append(parent.Replies, rep)
		}
	}

	all := append(append([]*domain.Comment{}, roots...), replies...)
	if err := s.fillDetails(ctx, all); err != nil {
		return nil, err
	}
	return roots, nil
}

// fillDetails attaches authors and like counts to the given comments.
func (s *Service) fillDetails(ctx context.Context, comments []*domain.Comment) error {
	ids := make([]int64, 0, len(comments))
	userIDSet := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
		userIDSet[c.UserID] = struct{}{}
	}
	userIDs := make([]int64, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	byUser := make(map[int64]*domain.User, len(users))
	for i := range users {
		byUser[users[i].ID] = &users[i]
	}

	likes, err := s.commentRepo.LikeCounts(ctx, ids)
	if err != nil {
		return err
	}

	for _, c := range comments {
		c.User = byUser[c.UserID]
		c.LikesCount = likes[c.ID]
	}
	return nil
}

// Update replaces the content on behalf of userID and flags the comment
// edited.
func (s *Service) Update(ctx context.Context, id, userID int64, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrBadParamInput
	}

	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	c.Content = content
	c.IsEdited = true
	c.UpdatedAt = time.Now()
	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the comment on behalf of userID. A top-level comment takes
// its replies with it and the blog's comment count is recomputed.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !c.OwnedBy(userID) {
		return domain.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, c); err != nil {
		return err
	}

	s.blogRepo.Invalidate(ctx, c.BlogID)
	if b, err := s.blogRepo.GetByID(ctx, c.BlogID); err == nil {
		s.stats.Touch(b.User.ID)
	} else {
		logrus.Warnf("failed to load blog %d after comment delete: %v", c.BlogID, err)
	}
	return nil
}

// ToggleLike flips userID's like on the comment.
func (s *Service) ToggleLike(ctx context.Context, id, userID int64) (domain.EngagementState, error) {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return domain.EngagementState{}, err
	}
	return s.engRepo.ToggleCommentLike(ctx, id, userID)
}
