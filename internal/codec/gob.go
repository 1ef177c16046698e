package codec

import (
	"bytes"
	"encoding/gob"
)

// gobCodec is the default. Values stored behind interface types must be
// registered with gob.Register by the caller.
type gobCodec struct{}

func (gobCodec) Name() string { return Gob }
func (gobCodec) Ext() string  { return ".gob" }

func (gobCodec) Encode(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
