package request

import "github.com/wakostech/blog-backend/domain"

type Register struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate is a partial update; absent fields stay untouched.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	Avatar      *string `json:"avatar"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Location    *string `json:"location"`
	Twitter     *string `json:"twitter"`
	LinkedIn    *string `json:"linkedin"`
	GitHub      *string `json:"github"`

	EmailNotifications *bool   `json:"email_notifications"`
	Theme              *string `json:"theme" binding:"omitempty,oneof=light dark auto"`
	PublicProfile      *bool   `json:"public_profile"`
	ShowEmail          *bool   `json:"show_email"`
	AllowComments      *bool   `json:"allow_comments"`
}

func (r *ProfileUpdate) ToPatch() domain.ProfilePatch {
	return domain.ProfilePatch{
		DisplayName:        r.DisplayName,
		Bio:                r.Bio,
		Avatar:             r.Avatar,
		Website:            r.Website,
		Location:           r.Location,
		Twitter:            r.Twitter,
		LinkedIn:           r.LinkedIn,
		GitHub:             r.GitHub,
		EmailNotifications: r.EmailNotifications,
		Theme:              r.Theme,
		PublicProfile:      r.PublicProfile,
		ShowEmail:          r.ShowEmail,
		AllowComments:      r.AllowComments,
	}
}
