package models

type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	HashedPassword string `json:"-"` // never echoed back
}

// PublicUser is the identity shape returned by the API.
type PublicUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name}
}
