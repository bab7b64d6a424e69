package domain

// User is the identity resolved from the caller's token. Id is stable,
// Name is what other members mention with "@".
type User struct {
	Id   UserId   `json:"id"`
	Name UserName `json:"name"`
}
