package client

import "time"

type Client struct {
	Id            int
	Name          string
	Email         string
	Phone         string
	Address       string
	City          string
	Country       string
	ContactPerson string
	Notes         string
	CreatedAt     time.Time
}
