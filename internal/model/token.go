package model

import "time"

// DeliveryToken is a push endpoint handle for one registered device. A user
// may hold several (multiple devices); each token belongs to exactly one
// user. Tokens are created at device registration and deleted here when the
// push gateway reports them permanently deregistered.
type DeliveryToken struct {
	Token     string    `boil:"token"`
	UserID    string    `boil:"user_id"`
	CreatedAt time.Time `boil:"created_at"`
}
