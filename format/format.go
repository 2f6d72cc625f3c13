package format

import (
	"encoding"

	"github.com/dhamidi/kei/js"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(summary *js.FileSummary) error
}
