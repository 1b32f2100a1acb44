package users

// Repo is the user persistence capability. Find returns ErrUserNotFound when
// no record exists for the ID.
type Repo interface {
	Find(id string) (*User, error)
	Save(user *User) error
}
