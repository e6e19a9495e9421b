package model

import (
	"time"

	"github.com/wakostech/blog-backend/domain"
)

type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"type:varchar(45);uniqueIndex;not null"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(100);not null"`

	DisplayName    string    `gorm:"type:varchar(100)"`
	Bio            string    `gorm:"type:varchar(500)"`
	Avatar         string    `gorm:"type:varchar(512)"`
	Website        string    `gorm:"type:varchar(255)"`
	Location       string    `gorm:"type:varchar(100)"`
	SocialTwitter  string    `gorm:"column:social_twitter;type:varchar(100)"`
	SocialLinkedIn string    `gorm:"column:social_linkedin;type:varchar(100)"`
	SocialGitHub   string    `gorm:"column:social_github;type:varchar(100)"`
	JoinDate       time.Time `gorm:"column:join_date;type:datetime"`

	BlogCount           int64  `gorm:"column:blog_count;default:0"`
	TotalLikes          int64  `gorm:"column:total_likes;default:0"`
	TotalComments       int64  `gorm:"column:total_comments;default:0"`
	TotalViews          int64  `gorm:"column:total_views;default:0"`
	FollowersCount      int64  `gorm:"column:followers_count;default:0"`
	FollowingCount      int64  `gorm:"column:following_count;default:0"`
	MostPopularCategory string `gorm:"column:most_popular_category;type:varchar(20)"`
	MonthlyViews        int64  `gorm:"column:monthly_views;default:0"`

	EmailNotifications bool   `gorm:"column:email_notifications;default:true"`
	Theme              string `gorm:"type:varchar(10);default:auto"`
	PublicProfile      bool   `gorm:"column:public_profile;default:true"`
	ShowEmail          bool   `gorm:"column:show_email;default:false"`
	AllowComments      bool   `gorm:"column:allow_comments;default:true"`

	UpdatedAt time.Time `gorm:"type:datetime"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
		Password: m.Password,
		Profile: domain.Profile{
			DisplayName: m.DisplayName,
			Bio:         m.Bio,
			Avatar:      m.Avatar,
			Website:     m.Website,
			Location:    m.Location,
			Social: domain.Social{
				Twitter:  m.SocialTwitter,
				LinkedIn: m.SocialLinkedIn,
				GitHub:   m.SocialGitHub,
			},
			JoinDate: m.JoinDate,
		},
		Stats: domain.Stats{
			BlogCount:           m.BlogCount,
			TotalLikes:          m.TotalLikes,
			TotalComments:       m.TotalComments,
			TotalViews:          m.TotalViews,
			FollowersCount:      m.FollowersCount,
			FollowingCount:      m.FollowingCount,
			MostPopularCategory: m.MostPopularCategory,
			MonthlyViews:        m.MonthlyViews,
		},
		Preferences: domain.Preferences{
			EmailNotifications: m.EmailNotifications,
			Theme:              m.Theme,
			PublicProfile:      m.PublicProfile,
			ShowEmail:          m.ShowEmail,
			AllowComments:      m.AllowComments,
		},
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Password:            u.Password,
		DisplayName:         u.Profile.DisplayName,
		Bio:                 u.Profile.Bio,
		Avatar:              u.Profile.Avatar,
		Website:             u.Profile.Website,
		Location:            u.Profile.Location,
		SocialTwitter:       u.Profile.Social.Twitter,
		SocialLinkedIn:      u.Profile.Social.LinkedIn,
		SocialGitHub:        u.Profile.Social.GitHub,
		JoinDate:            u.Profile.JoinDate,
		BlogCount:           u.Stats.BlogCount,
		TotalLikes:          u.Stats.TotalLikes,
		TotalComments:       u.Stats.TotalComments,
		TotalViews:          u.Stats.TotalViews,
		FollowersCount:      u.Stats.FollowersCount,
		FollowingCount:      u.Stats.FollowingCount,
		MostPopularCategory: u.Stats.MostPopularCategory,
		MonthlyViews:        u.Stats.MonthlyViews,
		EmailNotifications:  u.Preferences.EmailNotifications,
		Theme:               u.Preferences.Theme,
		PublicProfile:       u.Preferences.PublicProfile,
		ShowEmail:           u.Preferences.ShowEmail,
		AllowComments:       u.Preferences.AllowComments,
		UpdatedAt:           u.UpdatedAt,
		CreatedAt:           u.CreatedAt,
	}
}
