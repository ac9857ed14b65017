package encoding

import (
	stdJSON "encoding/json"
	"io"
)

type json struct {
	indent string
}

func NewJSON() Encoder {
	return new(json)
}

// NewIndentedJSON returns an encoder producing human readable JSON
func NewIndentedJSON() Encoder {
	return &json{indent: "  "}
}

func (j *json) Encode(source interface{}, target io.Writer) error {
	encoder := stdJSON.NewEncoder(target)
	encoder.SetIndent("", j.indent)

	return encoder.Encode(source)
}
