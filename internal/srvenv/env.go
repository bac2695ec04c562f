package srvenv

import (
	"context"

	"tessera/internal/database"
	"tessera/internal/palette"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database *database.DB
	palette  palette.ProvideFn
}

func (s *SrvEnv) ProvidePalette() palette.ProvideFn {
	return s.palette
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func WithPalette(fn palette.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.palette = fn
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}

	return nil
}
