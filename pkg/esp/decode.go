package esp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the ISO-8601 forms the API has been seen to send,
// most common first. Zone-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	time.DateOnly,
}

// decodePayload unmarshals a raw body into one of the payload contracts.
func decodePayload(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &DecodeError{Field: typeErr.Field, Err: err}
		}
		return &DecodeError{Err: err}
	}
	return nil
}

func required[T any](field string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, &DecodeError{Field: field, Err: ErrMissingField}
	}
	return *v, nil
}

// nest prefixes the field path of a DecodeError coming from a nested decoder.
func nest(prefix string, err error) error {
	var de *DecodeError
	if !errors.As(err, &de) {
		return err
	}
	field := prefix
	if de.Field != "" {
		field = prefix + "." + de.Field
	}
	return &DecodeError{Field: field, Err: de.Err}
}

func index(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

func parseTimestamp(field string, v *string) (time.Time, error) {
	s, err := required(field, v)
	if err != nil {
		return time.Time{}, err
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DecodeError{Field: field, Err: fmt.Errorf("invalid ISO-8601 timestamp %q", s)}
}

func parseDate(field string, v *string) (time.Time, error) {
	s, err := required(field, v)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &DecodeError{Field: field, Err: fmt.Errorf("invalid ISO-8601 date %q", s)}
	}
	return t, nil
}

// parseStage accepts 2, 2.0 and "2". Anything that is not a whole number is
// rejected.
func parseStage(field string, raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, &DecodeError{Field: field, Err: ErrMissingField}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, &DecodeError{Field: field, Err: err}
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, &DecodeError{Field: field, Err: fmt.Errorf("stage must be a number or numeric string, got %s", raw)}
	}

	n, err := strconv.ParseInt(s, 10, 0)
	if err == nil {
		return int(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, &DecodeError{Field: field, Err: fmt.Errorf("stage %q is out of range", s)}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, &DecodeError{Field: field, Err: fmt.Errorf("stage %q is not an integer", s)}
	}
	// float64(math.MaxInt) rounds up, so the upper bound is exclusive.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, &DecodeError{Field: field, Err: fmt.Errorf("stage %q is out of range", s)}
	}
	return int(f), nil
}
