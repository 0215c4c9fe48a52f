package models

type User struct {
	ID           string   `json:"id" bson:"_id"`
	Username     string   `json:"username" bson:"username"`
	Email        string   `json:"email" bson:"email"`
	PasswordHash string   `json:"-" bson:"password_hash"`
	Bio          string   `json:"bio" bson:"bio"`
	ProfilePic   string   `json:"profilePic" bson:"profile_pic"`
	CoverPic     string   `json:"coverPic" bson:"cover_pic"`
	Followers    []string `json:"followers" bson:"followers"`
	Following    []string `json:"following" bson:"following"`
}

// UserSummary is the lightweight view used when follower/following id lists
// are resolved for display.
type UserSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// Profile is a User with the edge id lists expanded into summaries and the
// credential field stripped.
type Profile struct {
	ID         string        `json:"id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	Bio        string        `json:"bio"`
	ProfilePic string        `json:"profilePic"`
	CoverPic   string        `json:"coverPic"`
	Followers  []UserSummary `json:"followers"`
	Following  []UserSummary `json:"following"`
}

// ProfileUpdate carries the mutable profile fields; nil means not submitted.
type ProfileUpdate struct {
	Username   *string `json:"username"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
	CoverPic   *string `json:"coverPic"`
}
