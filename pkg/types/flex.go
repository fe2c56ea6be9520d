package types

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	leadingIntReg   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloatReg = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// FlexInt decodes from a JSON number or string. Anything that does not start
// with an integer decodes to zero, so hand-edited or legacy records never
// break a read.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	// an unquoted number is already numeric, exponent form included
	if len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		if v, err := strconv.ParseFloat(string(data), 64); err == nil {
			*n = FlexInt(int64(v))
			return nil
		}
	}

	*n = FlexInt(ParseInt(rawJSONScalar(data)))
	return nil
}

// FlexFloat is the decimal counterpart of FlexInt.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(ParseFloat(rawJSONScalar(data)))
	return nil
}

// FlexString decodes from a JSON string, number or array of strings. Form
// posts with a repeated field store an array, which is joined with ", ".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}

	switch data[0] {
	case '[':
		var parts []FlexString
		if err := json.Unmarshal(data, &parts); err != nil {
			*s = ""
			return nil
		}

		joined := make([]string, 0, len(parts))
		for _, part := range parts {
			if part != "" {
				joined = append(joined, string(part))
			}
		}
		*s = FlexString(strings.Join(joined, ", "))
	case '{':
		*s = ""
	default:
		*s = FlexString(rawJSONScalar(data))
	}

	return nil
}

// ParseInt returns the integer at the start of s, or 0.
func ParseInt(s string) int64 {
	match := leadingIntReg.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}

	v, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0
	}

	return v
}

// ParseFloat returns the decimal at the start of s, or 0.
func ParseFloat(s string) float64 {
	match := leadingFloatReg.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	return v
}

func rawJSONScalar(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return ""
		}
		return s
	}

	if bytes.Equal(data, []byte("null")) {
		return ""
	}

	return string(data)
}
