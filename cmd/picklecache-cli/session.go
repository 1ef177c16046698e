package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/0xRadioAc7iv/go-picklecache/core"
	"github.com/0xRadioAc7iv/go-picklecache/internal/utils"
)

var errExit = errors.New("exit")

const helpString = `
Available Commands:

SET <key> <value>
  Store a value for the given key. Quote values that contain spaces.
  Response: ok

GET <key>
  Retrieve the value associated with the key.
  Response: value | (error) key not found

DELETE <key>
  Delete the key and its value.
  Response: ok | (error) key not found

EXISTS <key>
  Check if a key exists.
  Response: true | false

COUNT
  Return the total number of keys stored.

LIST
  List all stored keys, sorted.
  Response: list of keys | nil

FLUSH
  Write the cache to its backing file.

LOAD
  Re-read the backing file, discarding unflushed changes.
  A missing or empty file leaves the cache and its pending changes as they are.
  Response: ok | nothing to load

AUTOSYNC [on|off]
  Show or change write-through.

HELP
  Show this help message.

EXIT
  Flush pending changes and quit.
`

// session executes REPL lines against one cache and tracks whether there
// are changes the backing file has not seen yet.
type session struct {
	cache *core.Cache[string, string]
	dirty bool
}

func (s *session) execute(line string) (string, error) {
	cmd, key, value, err := utils.SplitStringIntoCommandAndArguments(line)
	if err != nil {
		return "", err
	}

	switch cmd {
	case "set":
		if key == "" {
			return "", fmt.Errorf("usage: set <key> <value>")
		}
		return s.mutate(s.cache.Set(key, value))
	case "get":
		return s.cache.Get(key)
	case "delete", "del":
		return s.mutate(s.cache.Delete(key))
	case "exists":
		return strconv.FormatBool(s.cache.Has(key)), nil
	case "count":
		return strconv.Itoa(s.cache.Size()), nil
	case "list":
		return s.list(), nil
	case "flush":
		if err := s.cache.Flush(); err != nil {
			return "", err
		}
		s.dirty = false
		return "ok", nil
	case "load":
		return s.load()
	case "autosync":
		return s.autosync(key)
	case "help":
		return strings.TrimSpace(helpString), nil
	case "exit", "quit":
		return "", errExit
	default:
		return "", fmt.Errorf("invalid command %q, type 'help'", cmd)
	}
}

// mutate reports the outcome of Set or Delete. A failed autosync flush still
// leaves the in-memory change in place, so the session stays dirty.
func (s *session) mutate(err error) (string, error) {
	if errors.Is(err, core.ErrKeyNotFound) {
		return "", err
	}

	s.dirty = err != nil || !s.cache.AutoSync
	if err != nil {
		return "", err
	}
	return "ok", nil
}

// load only clears dirty when a snapshot actually replaced the entries;
// Load keeps the in-memory mapping for a missing or empty file.
func (s *session) load() (string, error) {
	size, _, err := utils.FileSize(s.cache.Path())
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	if err := s.cache.Load(); err != nil {
		return "", err
	}
	if size == 0 {
		return "nothing to load", nil
	}

	s.dirty = false
	return "ok", nil
}

func (s *session) list() string {
	keys := s.cache.Keys()
	if len(keys) == 0 {
		return "nil"
	}

	sort.Strings(keys)
	for i, k := range keys {
		keys[i] = utils.QuoteForDisplay(k)
	}
	return strings.Join(keys, "\n")
}

func (s *session) autosync(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "":
	case "on", "true", "1":
		s.cache.AutoSync = true
	case "off", "false", "0":
		s.cache.AutoSync = false
	default:
		return "", fmt.Errorf("usage: autosync [on|off]")
	}

	if s.cache.AutoSync {
		return "autosync on", nil
	}
	return "autosync off", nil
}

// close flushes pending changes.
func (s *session) close() error {
	if !s.dirty {
		return nil
	}
	if err := s.cache.Flush(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
