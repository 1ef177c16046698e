package utils

import (
	"errors"
	"strings"

	"github.com/kballard/go-shellquote"
)

var ErrEmptyCommand = errors.New("empty command")
var ErrTooManyArguments = errors.New("too many arguments")

// SplitStringIntoCommandAndArguments splits a REPL line into a command name,
// a key and a value using shell quoting rules, so values may contain spaces
// when quoted:
//
//	set city "new york"
//
// Missing key or value come back empty. The command name is lowercased.
func SplitStringIntoCommandAndArguments(line string) (cmd, key, value string, err error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", "", "", err
	}

	switch len(words) {
	case 0:
		return "", "", "", ErrEmptyCommand
	case 1:
		return strings.ToLower(words[0]), "", "", nil
	case 2:
		return strings.ToLower(words[0]), words[1], "", nil
	case 3:
		return strings.ToLower(words[0]), words[1], words[2], nil
	default:
		return "", "", "", ErrTooManyArguments
	}
}

// QuoteForDisplay quotes s so it can be pasted back into the REPL.
func QuoteForDisplay(s string) string {
	return shellquote.Join(s)
}
