package repository

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrInvalidTTL      = errors.New("claim ttl must be positive")
)
