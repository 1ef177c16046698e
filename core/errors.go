package core

import (
	"errors"

	"github.com/0xRadioAc7iv/go-picklecache/internal/lock"
)

// Sentinel errors for cache operations. Returned errors wrap one of these;
// match with errors.Is.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrDeserialize = errors.New("deserialization failed")
	ErrSerialize   = errors.New("serialization failed")
	ErrIO          = errors.New("i/o failed")
	ErrLocked      = lock.ErrLocked
)
