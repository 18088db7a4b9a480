package view

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is configured with Core Deterministic Encoding (RFC 8949 §4.2):
// the same range always produces identical bytes, so the server's ETag is
// stable across requests.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// engine.Granularity serializes as its name via MarshalText.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("view: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("view: CBOR decoder initialization failed: " + err.Error())
	}
}

func newCBOREncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// DecodeDocument reads a Document written by EncodeCBOR.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	err := decMode.Unmarshal(data, &doc)
	return doc, err
}
