package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/auth"
)

const bioMaxLength = 500

type Service struct {
	userRepo domain.UserRepository
	blogRepo domain.BlogRepository
	files    domain.FileStore
	tokens   *auth.TokenManager
}

var _ domain.UserUsecase = (*Service)(nil)

func NewService(userRepo domain.UserRepository, blogRepo domain.BlogRepository, files domain.FileStore, tokens *auth.TokenManager) *Service {
	return &Service{
		userRepo: userRepo,
		blogRepo: blogRepo,
		files:    files,
		tokens:   tokens,
	}
}

// Register creates a new account with the default profile and preferences.
func (s *Service) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || len(password) < 6 {
		return domain.User{}, domain.ErrBadParamInput
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return domain.User{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now()
	u := domain.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Profile: domain.Profile{
			DisplayName: username,
			JoinDate:    now,
		},
		Preferences: domain.Preferences{
			EmailNotifications: true,
			Theme:              "auto",
			PublicProfile:      true,
			AllowComments:      true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Insert(ctx, &u); err != nil {
		return domain.User{}, err
	}

	u.Password = ""
	return u, nil
}

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", domain.ErrBadParamInput
	}
	return s.tokens.Issue(u.ID)
}

// Profile returns the user's own view: refreshed stats plus their blogs.
func (s *Service) Profile(ctx context.Context, id int64) (domain.User, []domain.Blog, error) {
	if err := s.userRepo.RefreshStats(ctx, id); err != nil {
		logrus.Warnf("failed to refresh stats for user %d: %v", id, err)
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}
	blogs, err := s.blogRepo.FetchByUser(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}

	u.Password = ""
	return u, blogs, nil
}

// PublicProfile is the view other users get. Private profiles stay hidden
// and the email is withheld unless the owner opted in.
func (s *Service) PublicProfile(ctx context.Context, id int64) (domain.User, []domain.Blog, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}
	if !u.Preferences.PublicProfile {
		return domain.User{}, nil, domain.ErrNotFound
	}

	blogs, err := s.blogRepo.FetchByUser(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}

	u.Password = ""
	if !u.Preferences.ShowEmail {
		u.Email = ""
	}
	return u, blogs, nil
}

// UpdateProfile applies the patch; nil fields keep their current value.
func (s *Service) UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if patch.DisplayName != nil {
		u.Profile.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		if len([]rune(*patch.Bio)) > bioMaxLength {
			return domain.User{}, domain.ErrBadParamInput
		}
		u.Profile.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		u.Profile.Avatar = *patch.Avatar
	}
	if patch.Website != nil {
		u.Profile.Website = *patch.Website
	}
	if patch.Location != nil {
		u.Profile.Location = *patch.Location
	}
	if patch.Twitter != nil {
		u.Profile.Social.Twitter = *patch.Twitter
	}
	if patch.LinkedIn != nil {
		u.Profile.Social.LinkedIn = *patch.LinkedIn
	}
	if patch.GitHub != nil {
		u.Profile.Social.GitHub = *patch.GitHub
	}

	if patch.EmailNotifications != nil {
		u.Preferences.EmailNotifications = *patch.EmailNotifications
	}
	if patch.Theme != nil {
		switch *patch.Theme {
		case "light", "dark", "auto":
			u.Preferences.Theme = *patch.Theme
		default:
			return domain.User{}, domain.ErrBadParamInput
		}
	}
	if patch.PublicProfile != nil {
		u.Preferences.PublicProfile = *patch.PublicProfile
	}
	if patch.ShowEmail != nil {
		u.Preferences.ShowEmail = *patch.ShowEmail
	}
	if patch.AllowComments != nil {
		u.Preferences.AllowComments = *patch.AllowComments
	}

	u.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, &u); err != nil {
		return domain.User{}, err
	}

	u.Password = ""
	return u, nil
}

// SetAvatar stores the uploaded image and swaps the profile reference,
// removing the previous avatar when this store owns it.
func (s *Service) SetAvatar(ctx context.Context, id int64, name string, data []byte) (string, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	ref, err := s.files.Save(ctx, name, data)
	if err != nil {
		return "", err
	}

	old := u.Profile.Avatar
	u.Profile.Avatar = ref
	u.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, &u); err != nil {
		return "", err
	}

	if old != "" && s.files.Managed(old) {
		if err := s.files.Delete(ctx, old); err != nil {
			logrus.Warnf("failed to delete previous avatar %q: %v", old, err)
		}
	}
	return ref, nil
}
