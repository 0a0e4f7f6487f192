package models

// Account mirrors a user of the external identity provider. Rows are
// provisioned lazily from verified token claims; this service never issues
// or mutates credentials.
type Account struct {
	BaseModel

	Email      string `json:"email" gorm:"uniqueIndex"`
	Fullname   string `json:"fullname"`
	Username   string `json:"username" gorm:"uniqueIndex"`
	ProfileImg string `json:"profile_img"`

	Blogs []Blog `json:"blogs" gorm:"foreignKey:AuthorID"`
}

// AuthorStamp is the denormalized author snapshot embedded in blog
// responses and editor payloads.
type AuthorStamp struct {
	UserID     uint   `json:"user_id" validate:"required"`
	ProfileImg string `json:"profile_img"`
	Fullname   string `json:"fullname"`
	Email      string `json:"email"`
	Username   string `json:"username"`
}

func (v Account) Stamp() AuthorStamp {
	return AuthorStamp{
		UserID:     v.ID,
		ProfileImg: v.ProfileImg,
		Fullname:   v.Fullname,
		Email:      v.Email,
		Username:   v.Username,
	}
}
