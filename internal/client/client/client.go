package client

import (
	"context"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/session"
)

type Client interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*session.StatusResponse, error)
	List(ctx context.Context, limit, offset int) (*catalog.Page, error)
	Get(ctx context.Context, name string) (*catalog.Pokemon, error)
}
