package client

import (
	"errors"

	"github.com/dmitrijs2005/pokegate/internal/common"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = common.ErrUnauthorized
	ErrInvalidCredentials = common.ErrInvalidCredentials
	ErrNotFound           = common.ErrorNotFound
)
