package tools

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/jonwraymond/toolcatalog/catalog"
)

// ErrInvalidArgument is wrapped by every handler that rejects its input.
var ErrInvalidArgument = catalog.ErrInvalidArgument

func module(group string, meta catalog.ToolDescriptor, h catalog.Handler, input *jsonschema.Schema) catalog.Module {
	return catalog.Module{
		Group:   group,
		Meta:    &meta,
		Factory: func() catalog.Handler { return h },
		Input:   input,
	}
}

// Modules returns the built-in registration list in its fixed order.
//
// Group records the directory a tool was authored under. A few entries carry
// metadata that disagrees with their group (chmod and temperature) or that
// names a category outside the fixed set (the JSON formatter); the registry
// reports both and keeps the tools.
func Modules() []catalog.Module {
	return []catalog.Module{
		module("converter", catalog.ToolDescriptor{
			ID:          "integer-not-base-converter",
			Name:        "Integer Not Base Converter",
			Description: "Convert decimal integers to binary, octal, decimal, hexadecimal, and base64",
			Category:    "converter",
			Path:        "/tools/converter/integer-not-base-converter",
			Icon:        "arrows-right-left",
			Order:       1,
		}, integerBase, object([]string{"value"}, map[string]*jsonschema.Schema{
			"value": prop("integer", "Decimal integer to convert"),
		})),
		module("converter", catalog.ToolDescriptor{
			ID:          "unicode-converter",
			Name:        "Unicode Converter",
			Description: "Convert between text and HTML entity codes",
			Category:    "converter",
			Path:        "/tools/converter/unicode-converter",
			Icon:        "language",
			Order:       2,
		}, unicodeConvert, object([]string{"text"}, map[string]*jsonschema.Schema{
			"text": prop("string", "Text or HTML entities"),
			"mode": oneOf("Conversion direction (default encode)", "encode", "decode"),
		})),
		module("crypto", catalog.ToolDescriptor{
			ID:          "hash-text",
			Name:        "Hash Text",
			Description: "Generate various hash values from text input",
			Category:    "crypto",
			Path:        "/tools/crypto/hash-text",
			Icon:        "finger-print",
			Order:       2,
		}, hashText, object([]string{"text"}, map[string]*jsonschema.Schema{
			"text":      prop("string", "Text to hash"),
			"algorithm": oneOf("Single digest to compute (default all)", "md5", "sha1", "sha256", "sha512"),
		})),
		module("crypto", catalog.ToolDescriptor{
			ID:          "token-gen",
			Name:        "Token Generator",
			Description: "Generate random strings, tokens, or passwords.",
			Category:    "crypto",
			Path:        "/tools/token-generator",
			Icon:        "key",
		}, generateToken, object(nil, map[string]*jsonschema.Schema{
			"length":    prop("integer", "Token length, 1-512 (default 64)"),
			"lowercase": prop("boolean", "Include a-z (default true)"),
			"uppercase": prop("boolean", "Include A-Z (default true)"),
			"numbers":   prop("boolean", "Include 0-9 (default true)"),
			"symbols":   prop("boolean", "Include punctuation (default false)"),
		})),
		module("crypto", catalog.ToolDescriptor{
			ID:          "uuid-generator",
			Name:        "UUID Generator",
			Description: "Generate random version 4 UUIDs.",
			Category:    "crypto",
			Path:        "/tools/crypto/uuid-generator",
			Icon:        "finger-print",
			Order:       3,
		}, generateUUIDs, object(nil, map[string]*jsonschema.Schema{
			"count": prop("integer", "Number of UUIDs, 1-100 (default 1)"),
		})),
		module("web", catalog.ToolDescriptor{
			ID:          "url-parser",
			Name:        "URL Parser",
			Description: "Parse and analyze URL components",
			Category:    "web",
			Path:        "/tools/web/url-parser",
			Icon:        "globe-alt",
			Order:       1,
		}, parseURL, object([]string{"url"}, map[string]*jsonschema.Schema{
			"url": prop("string", "Absolute URL"),
		})),
		module("web", catalog.ToolDescriptor{
			ID:          "jwt-parser",
			Name:        "JWT Parser",
			Description: "Parse and decode JWT tokens",
			Category:    "web",
			Path:        "/tools/web/jwt-parser",
			Icon:        "key",
			Order:       2,
		}, parseJWT, object([]string{"token"}, map[string]*jsonschema.Schema{
			"token": prop("string", "Encoded JWT"),
		})),
		module("development", catalog.ToolDescriptor{
			ID:          "json-formatter",
			Name:        "JSON Formatter",
			Description: "Format and beautify JSON data",
			Category:    "development",
			Path:        "/tools/development/json-formatter",
			Icon:        "code-bracket",
			Order:       1,
		}, formatJSON, object([]string{"json"}, map[string]*jsonschema.Schema{
			"json":   prop("string", "JSON document"),
			"indent": prop("integer", "Spaces per level, 0-8 (default 2)"),
			"minify": prop("boolean", "Compact instead of indent"),
		})),
		module("development", catalog.ToolDescriptor{
			ID:          "chmod-calculator",
			Name:        "Chmod Calculator",
			Description: "Calculate Unix file permissions",
			Category:    "dev",
			Path:        "/tools/development/chmod-calculator",
			Icon:        "command-line",
			Order:       2,
		}, chmodCalculate, object(nil, map[string]*jsonschema.Schema{
			"octal":    prop("string", "Octal mode such as 755"),
			"symbolic": prop("string", "Symbolic mode such as rwxr-xr-x"),
		})),
		module("network", catalog.ToolDescriptor{
			ID:          "ipv4-subnet",
			Name:        "IPv4 Subnet",
			Description: "Parse your IPv4 CIDR blocks and get all the info you need about your subnet.",
			Category:    "network",
			Path:        "/tools/network/ipv4-subnet",
			Icon:        "clipboard",
		}, ipv4Subnet, object([]string{"cidr"}, map[string]*jsonschema.Schema{
			"cidr": prop("string", "IPv4 CIDR block such as 192.168.0.1/24"),
		})),
		module("network", catalog.ToolDescriptor{
			ID:          "ipv4-converter",
			Name:        "IPv4 Converter",
			Description: "Convert an IPv4 address to decimal, binary, hexadecimal, and IPv6.",
			Category:    "network",
			Path:        "/tools/network/ipv4-converter",
			Icon:        "clipboard",
		}, ipv4Convert, object([]string{"address"}, map[string]*jsonschema.Schema{
			"address": prop("string", "IPv4 address"),
		})),
		module("measurement", catalog.ToolDescriptor{
			ID:          "temperature-converter",
			Name:        "Temperature Converter",
			Description: "Degrees temperature conversions for Kelvin, Celsius, Fahrenheit, Rankine, Delisle, Newton, Réaumur, and Rømer.",
			Category:    "measure",
			Path:        "/tools/measure/temperature-converter",
			Icon:        "fire",
			Order:       2,
		}, convertTemperature, object([]string{"value"}, map[string]*jsonschema.Schema{
			"value": prop("number", "Temperature to convert"),
			"from": oneOf("Scale of value (default celsius)",
				"kelvin", "celsius", "fahrenheit", "rankine", "delisle", "newton", "reaumur", "romer"),
		})),
		module("text", catalog.ToolDescriptor{
			ID:          "lorem-ipsum-generator",
			Name:        "Lorem Ipsum Generator",
			Description: "Generate placeholder text with control over paragraphs, sentences, and words.",
			Category:    "text",
			Path:        "/tools/text/lorem-ipsum-generator",
			Icon:        "document-text",
			Order:       4,
		}, loremIpsum, object(nil, map[string]*jsonschema.Schema{
			"paragraphs":     prop("integer", "Paragraph count, 1-50 (default 1)"),
			"sentences":      prop("integer", "Sentences per paragraph, 1-50 (default 3)"),
			"words":          prop("integer", "Words per sentence, 1-50 (default 8)"),
			"startWithLorem": prop("boolean", "Begin with \"Lorem ipsum\" (default true)"),
		})),
	}
}
