package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// formatJSON pretty-prints (or, with "minify", compacts) a JSON document.
func formatJSON(ctx context.Context, args map[string]any) (any, error) {
	text, err := stringArg(args, "json")
	if err != nil {
		return nil, err
	}
	minify, err := optionalBool(args, "minify", false)
	if err != nil {
		return nil, err
	}
	indent, err := optionalInt(args, "indent", 2)
	if err != nil {
		return nil, err
	}
	if indent < 0 || indent > 8 {
		return nil, invalidArg("indent must be between 0 and 8")
	}

	var buf bytes.Buffer
	if minify {
		err = json.Compact(&buf, []byte(text))
	} else {
		err = json.Indent(&buf, []byte(text), "", strings.Repeat(" ", int(indent)))
	}
	if err != nil {
		return nil, invalidArg("%v", err)
	}
	return buf.String(), nil
}

var permissionBits = []struct {
	class string
	shift uint
}{
	{"owner", 6},
	{"group", 3},
	{"public", 0},
}

// chmodCalculate converts between octal modes ("755") and symbolic
// permissions ("rwxr-xr-x"). Exactly one of "octal" or "symbolic" is
// expected.
func chmodCalculate(ctx context.Context, args map[string]any) (any, error) {
	var mode uint64
	switch {
	case args["octal"] != nil:
		s, err := stringArg(args, "octal")
		if err != nil {
			return nil, err
		}
		mode, err = strconv.ParseUint(strings.TrimSpace(s), 8, 32)
		if err != nil || mode > 0o777 {
			return nil, invalidArg("octal must be a mode between 000 and 777")
		}
	case args["symbolic"] != nil:
		s, err := stringArg(args, "symbolic")
		if err != nil {
			return nil, err
		}
		mode, err = parseSymbolic(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
	default:
		return nil, invalidArg("octal or symbolic is required")
	}

	perms := make(map[string]map[string]bool, len(permissionBits))
	for _, p := range permissionBits {
		bits := (mode >> p.shift) & 0o7
		perms[p.class] = map[string]bool{
			"read":    bits&0o4 != 0,
			"write":   bits&0o2 != 0,
			"execute": bits&0o1 != 0,
		}
	}

	octal := fmt.Sprintf("%03o", mode)
	return map[string]any{
		"octal":       octal,
		"symbolic":    symbolic(mode),
		"command":     "chmod " + octal + " path",
		"permissions": perms,
	}, nil
}

func symbolic(mode uint64) string {
	const letters = "rwx"
	var b strings.Builder
	for i := 8; i >= 0; i-- {
		if mode&(1<<uint(i)) != 0 {
			b.WriteByte(letters[(8-i)%3])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func parseSymbolic(s string) (uint64, error) {
	if len(s) != 9 {
		return 0, invalidArg("symbolic must have 9 characters")
	}
	const letters = "rwx"
	var mode uint64
	for i := 0; i < 9; i++ {
		switch s[i] {
		case letters[i%3]:
			mode |= 1 << uint(8-i)
		case '-':
		default:
			return 0, invalidArg("unexpected %q at position %d", s[i], i)
		}
	}
	return mode, nil
}
