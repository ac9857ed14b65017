// Package encoding provides the serializers used for machine readable output
package encoding

import (
	"io"
)

type Encoder interface {
	Encode(source interface{}, target io.Writer) error
}
