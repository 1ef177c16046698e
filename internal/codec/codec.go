// Package codec holds the serializers a cache can use for its snapshot
// payload. Every codec encodes the whole mapping in one call and decodes it
// back into a pointer to a map of the same type.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Codec serializes a complete mapping.
type Codec interface {
	// Name is stored in every snapshot so a file written by one codec is
	// never decoded by another.
	Name() string
	// Ext is the file extension used for the default backing file name.
	Ext() string
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

var ErrUnknownCodec = errors.New("unknown codec")

var registry = map[string]Codec{
	Gob:  gobCodec{},
	JSON: jsonCodec{},
	YAML: yamlCodec{},
}

const (
	Gob  = "gob"
	JSON = "json"
	YAML = "yaml"
)

// Lookup returns the codec registered under name. Lookup is case-insensitive
// and accepts "yml" for YAML.
func Lookup(name string) (Codec, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "yml" {
		n = YAML
	}

	c, ok := registry[n]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	return c, nil
}

// Names lists the registered codec names.
func Names() []string {
	return []string{Gob, JSON, YAML}
}
