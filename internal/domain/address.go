package domain

import "time"

type Address struct {
	ID        int64
	UserID    int64
	City      string
	Country   string
	Street    string
	Pincode   string
	CreatedAt time.Time
}
