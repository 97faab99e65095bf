package dto

import "time"

type CreateAddressRequest struct {
	City    string `json:"city" binding:"max=100"`
	Country string `json:"country" binding:"max=100"`
	Street  string `json:"street" binding:"max=200"`
	Pincode string `json:"pincode" binding:"max=20"`
}

type AddressResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Street    string    `json:"street"`
	Pincode   string    `json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
}

type AddressEnvelope struct {
	Address AddressResponse `json:"address"`
}

type ListAddressesResponse struct {
	Addresses []AddressResponse `json:"addresses"`
}
