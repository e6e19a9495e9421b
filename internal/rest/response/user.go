package response

import "github.com/wakostech/blog-backend/domain"

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

func NewUserFromDomain(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.Profile.DisplayName,
		Avatar:      u.Profile.Avatar,
	}
}

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Stats struct {
	BlogCount           int64  `json:"blog_count"`
	TotalLikes          int64  `json:"total_likes"`
	TotalComments       int64  `json:"total_comments"`
	TotalViews          int64  `json:"total_views"`
	FollowersCount      int64  `json:"followers_count"`
	FollowingCount      int64  `json:"following_count"`
	MostPopularCategory string `json:"most_popular_category,omitempty"`
	MonthlyViews        int64  `json:"monthly_views"`
}

type Preferences struct {
	EmailNotifications bool   `json:"email_notifications"`
	Theme              string `json:"theme"`
	PublicProfile      bool   `json:"public_profile"`
	ShowEmail          bool   `json:"show_email"`
	AllowComments      bool   `json:"allow_comments"`
}

// Profile is the full profile view.
type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
	Social      Social `json:"social"`
	JoinDate    string `json:"join_date"`

	Stats Stats `json:"stats"`
	Blogs []Blog `json:"blogs"`

	// Preferences only appear in the owner's view.
	Preferences *Preferences `json:"preferences,omitempty"`
}

// NewProfileFromDomain builds the profile response. withPreferences is set
// only for the owner's own view.
func NewProfileFromDomain(u *domain.User, blogs []domain.Blog, withPreferences bool) Profile {
	p := Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.Profile.DisplayName,
		Bio:         u.Profile.Bio,
		Avatar:      u.Profile.Avatar,
		Website:     u.Profile.Website,
		Location:    u.Profile.Location,
		Social: Social{
			Twitter:  u.Profile.Social.Twitter,
			LinkedIn: u.Profile.Social.LinkedIn,
			GitHub:   u.Profile.Social.GitHub,
		},
		JoinDate: u.Profile.JoinDate.Format(DateTimeFormat),
		Stats: Stats{
			BlogCount:           u.Stats.BlogCount,
			TotalLikes:          u.Stats.TotalLikes,
			TotalComments:       u.Stats.TotalComments,
			TotalViews:          u.Stats.TotalViews,
			FollowersCount:      u.Stats.FollowersCount,
			FollowingCount:      u.Stats.FollowingCount,
			MostPopularCategory: u.Stats.MostPopularCategory,
			MonthlyViews:        u.Stats.MonthlyViews,
		},
		Blogs: make([]Blog, 0, len(blogs)),
	}
	for i := range blogs {
		p.Blogs = append(p.Blogs, NewBlogSummaryFromDomain(&blogs[i]))
	}
	if withPreferences {
		p.Preferences = &Preferences{
			EmailNotifications: u.Preferences.EmailNotifications,
			Theme:              u.Preferences.Theme,
			PublicProfile:      u.Preferences.PublicProfile,
			ShowEmail:          u.Preferences.ShowEmail,
			AllowComments:      u.Preferences.AllowComments,
		}
	}
	return p
}
