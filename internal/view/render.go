package view

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/go-daterange/internal/config"
	"github.com/tartampluch/go-daterange/internal/engine"
)

// ErrUnsupportedOutput is returned for an encoding name outside
// config.SupportedOutputs.
var ErrUnsupportedOutput = errors.New(config.ErrInvalidOutput)

// Options tunes Encode.
type Options struct {
	// Compact collapses a regular iCalendar range into one recurring event.
	Compact bool
}

// Document is the machine-readable form of a range shared by the JSON and
// CBOR encoders.
type Document struct {
	Frequency engine.Granularity `json:"frequency" cbor:"frequency"`
	Label     string             `json:"label" cbor:"label"`
	Start     string             `json:"start" cbor:"start"`
	End       string             `json:"end" cbor:"end"`
	Diff      int                `json:"diff" cbor:"diff"`
	Count     int                `json:"count" cbor:"count"`
	Total     string             `json:"total" cbor:"total"`
	Items     []Item             `json:"items" cbor:"items"`
}

// Item is one instant of a Document.
type Item struct {
	ISO    string               `json:"iso" cbor:"iso"`
	Label  string               `json:"label" cbor:"label"`
	Fields engine.InstantDetail `json:"fields" cbor:"fields"`
}

// NewDocument builds the Document of res, labelled in tr's language.
func NewDocument(res *engine.Result, tr *Translator) Document {
	items := make([]Item, 0, res.Count())
	for i, detail := range res.Details() {
		t := res.Dates[i]
		items = append(items, Item{
			ISO:    t.Format(config.DateFormatISO),
			Label:  tr.Format(t, res.Granularity),
			Fields: detail,
		})
	}

	return Document{
		Frequency: res.Granularity,
		Label:     tr.Label(res.Granularity),
		Start:     res.Start.Format(config.DateFormatISO),
		End:       res.End.Format(config.DateFormatISO),
		Diff:      res.Diff,
		Count:     res.Count(),
		Total:     tr.Total(res.Count()),
		Items:     items,
	}
}

// ValidOutput reports whether format names a supported encoding.
func ValidOutput(format string) bool {
	return slices.Contains(config.SupportedOutputs, format)
}

// ContentType returns the MIME type of an encoding.
func ContentType(format string) string {
	switch format {
	case config.OutputJSON:
		return config.MimeJSON
	case config.OutputICS:
		return config.MimeTextCalendar
	case config.OutputCBOR:
		return config.MimeCBOR
	default:
		return config.MimeTextPlain
	}
}

// Encode writes res to w in the named encoding. Nothing is written when
// encoding fails.
func Encode(w io.Writer, format string, res *engine.Result, tr *Translator, opts Options) error {
	var buf bytes.Buffer
	var err error

	switch format {
	case config.OutputText:
		err = EncodeText(&buf, res, tr)
	case config.OutputJSON:
		err = EncodeJSON(&buf, res, tr)
	case config.OutputCBOR:
		err = EncodeCBOR(&buf, res, tr)
	case config.OutputICS:
		err = EncodeICS(&buf, res, tr, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, format)
	}
	if err != nil {
		return err
	}

	slog.Debug(config.MsgRendered,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyOutput, format,
		config.LogKeyLang, tr.Lang(),
		config.LogKeySizeBytes, buf.Len(),
	)

	_, err = buf.WriteTo(w)
	return err
}

// EncodeText writes the total line followed by one formatted instant per line.
func EncodeText(w io.Writer, res *engine.Result, tr *Translator) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, tr.Total(res.Count()))
	if res.Count() == 0 {
		fmt.Fprintln(bw, tr.EmptyRange())
	}
	for _, t := range res.Dates {
		fmt.Fprintln(bw, tr.Format(t, res.Granularity))
	}

	return bw.Flush()
}

// EncodeJSON writes the Document of res as indented JSON.
func EncodeJSON(w io.Writer, res *engine.Result, tr *Translator) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res, tr)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	return nil
}

// EncodeCBOR writes the Document of res with Core Deterministic Encoding.
func EncodeCBOR(w io.Writer, res *engine.Result, tr *Translator) error {
	if err := newCBOREncoder(w).Encode(NewDocument(res, tr)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCBOREncode, err)
	}
	return nil
}

// EncodeICS writes res as an iCalendar feed with localised summaries.
func EncodeICS(w io.Writer, res *engine.Result, tr *Translator, opts Options) error {
	return engine.EncodeICS(w, res, engine.ICSOptions{
		Summary: func(t time.Time) string { return tr.Summary(t, res.Granularity) },
		Compact: opts.Compact,
	})
}
