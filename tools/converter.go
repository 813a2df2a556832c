package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// integerBase converts a decimal integer to the usual bases. Base64 encodes
// the value as a single byte and is only defined for 0-255.
func integerBase(ctx context.Context, args map[string]any) (any, error) {
	n, err := intArg(args, "value")
	if err != nil {
		return nil, err
	}

	out := map[string]any{
		"binary":      strconv.FormatInt(n, 2),
		"octal":       strconv.FormatInt(n, 8),
		"decimal":     strconv.FormatInt(n, 10),
		"hexadecimal": strings.ToUpper(strconv.FormatInt(n, 16)),
	}
	if n >= 0 && n < 256 {
		out["base64"] = base64.StdEncoding.EncodeToString([]byte{byte(n)})
	} else {
		out["base64"] = nil
	}
	return out, nil
}

// unicodeConvert turns text into numeric HTML entities ("encode") or back
// ("decode").
func unicodeConvert(ctx context.Context, args map[string]any) (any, error) {
	text, err := stringArg(args, "text")
	if err != nil {
		return nil, err
	}
	mode, err := optionalString(args, "mode", "encode")
	if err != nil {
		return nil, err
	}

	switch mode {
	case "encode":
		var b strings.Builder
		for _, r := range text {
			fmt.Fprintf(&b, "&#%d;", r)
		}
		return b.String(), nil
	case "decode":
		return html.UnescapeString(text), nil
	default:
		return nil, invalidArg("mode must be encode or decode")
	}
}
