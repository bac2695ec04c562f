package library

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"TESSERA_LIBRARY_REQUEST_TIMEOUT" default:"10s"`
}
