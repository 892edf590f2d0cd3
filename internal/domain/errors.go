package domain

import "errors"

// ErrNetwork indicates a transport failure or a non-success HTTP status
var ErrNetwork = errors.New("network error")

// ErrParse indicates the catalog page is missing the expected markup
var ErrParse = errors.New("parse error")

// ErrInput indicates a selection that is not a number in range
var ErrInput = errors.New("invalid input")

// ErrFileSystem indicates the destination folder or a file could not be created or written
var ErrFileSystem = errors.New("filesystem error")
