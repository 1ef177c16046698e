package core

import (
	"os"

	"github.com/0xRadioAc7iv/go-picklecache/internal"
)

const (
	// DefaultFileName is the backing file name, without extension, used when
	// no path is given. The codec supplies the extension.
	DefaultFileName = internal.DEFAULT_FILE_NAME

	// FilePerm is applied to the backing file on every flush.
	FilePerm os.FileMode = 0644
)
