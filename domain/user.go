package domain

import (
	"context"
	"time"
)

// Social holds the linked social accounts of a profile.
type Social struct {
	Twitter  string
	LinkedIn string
	GitHub   string
}

// Profile is the public-facing part of a user.
type Profile struct {
	DisplayName string
	Bio         string // max 500 chars
	Avatar      string // storage reference or absolute URL
	Website     string
	Location    string
	Social      Social
	JoinDate    time.Time
}

// Stats carries the denormalized per-user counters. BlogCount is kept in
// sync on every blog create/delete; the aggregate fields are refreshed by
// the stats worker and on profile reads.
type Stats struct {
	BlogCount           int64
	TotalLikes          int64
	TotalComments       int64
	TotalViews          int64
	FollowersCount      int64
	FollowingCount      int64
	MostPopularCategory string
	MonthlyViews        int64
}

// Preferences holds per-user settings.
type Preferences struct {
	EmailNotifications bool
	Theme              string // light, dark or auto
	PublicProfile      bool
	ShowEmail          bool
	AllowComments      bool
}

// User represents a user entity in the system.
type User struct {
	ID          int64
	Username    string
	Email       string
	Password    string // bcrypt hash
	Profile     Profile
	Stats       Stats
	Preferences Preferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfilePatch carries a partial profile update; nil fields are unchanged.
type ProfilePatch struct {
	DisplayName *string
	Bio         *string
	Avatar      *string
	Website     *string
	Location    *string
	Twitter     *string
	LinkedIn    *string
	GitHub      *string

	EmailNotifications *bool
	Theme              *string
	PublicProfile      *bool
	ShowEmail          *bool
	AllowComments      *bool
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByIDs retrieves users by given IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetByEmail retrieves a user by their email. Used during login.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's profile and preferences.
	Update(ctx context.Context, u *User) error

	// RefreshStats recomputes the aggregate stat columns (total likes,
	// total comments, most popular category) from the user's blogs.
	RefreshStats(ctx context.Context, userID int64) error
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username or email already exists.
	Register(ctx context.Context, username, email, password string) (User, error)

	// Login verifies user credentials and returns a signed JWT.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, email, password string) (string, error)

	// Profile returns the user with refreshed stats and their blogs.
	Profile(ctx context.Context, id int64) (User, []Blog, error)

	// PublicProfile returns the profile visible to other users.
	PublicProfile(ctx context.Context, id int64) (User, []Blog, error)

	// UpdateProfile applies a partial profile/preferences update.
	UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) (User, error)

	// SetAvatar stores the uploaded image and points the profile at it,
	// deleting the previously stored avatar when it was file-backed.
	SetAvatar(ctx context.Context, id int64, name string, data []byte) (string, error)
}

// StatsRefresher debounces user-stat recomputation. Touch marks a user as
// dirty, Start drains and flushes in batches until ctx is done.
type StatsRefresher interface {
	Start(ctx context.Context)
	Touch(userID int64)
}
