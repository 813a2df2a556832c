package tools

import (
	"context"
	"strings"
	"unicode"
)

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud
exercitation ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure in
reprehenderit voluptate velit esse cillum fugiat nulla pariatur excepteur sint occaecat
cupidatat non proident sunt culpa qui officia deserunt mollit anim id est laborum`)

// loremIpsum produces placeholder text. Output is deterministic for a given
// set of counts.
func loremIpsum(ctx context.Context, args map[string]any) (any, error) {
	paragraphs, err := optionalInt(args, "paragraphs", 1)
	if err != nil {
		return nil, err
	}
	sentences, err := optionalInt(args, "sentences", 3)
	if err != nil {
		return nil, err
	}
	words, err := optionalInt(args, "words", 8)
	if err != nil {
		return nil, err
	}
	startWithLorem, err := optionalBool(args, "startWithLorem", true)
	if err != nil {
		return nil, err
	}
	if paragraphs < 1 || paragraphs > 50 || sentences < 1 || sentences > 50 || words < 1 || words > 50 {
		return nil, invalidArg("paragraphs, sentences and words must be between 1 and 50")
	}

	next := 0
	if !startWithLorem {
		next = 2
	}
	paras := make([]string, 0, paragraphs)
	for p := int64(0); p < paragraphs; p++ {
		sents := make([]string, 0, sentences)
		for s := int64(0); s < sentences; s++ {
			ws := make([]string, words)
			for w := range ws {
				ws[w] = loremWords[next%len(loremWords)]
				next++
			}
			sents = append(sents, capitalize(strings.Join(ws, " "))+".")
		}
		paras = append(paras, strings.Join(sents, " "))
	}
	return strings.Join(paras, "\n\n"), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
