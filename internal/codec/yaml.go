package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) Name() string { return YAML }
func (yamlCodec) Ext() string  { return ".yaml" }

func (yamlCodec) Encode(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
