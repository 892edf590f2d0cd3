package domain

import (
	"net/url"
	"path"
)

// Target is the full URL of one archive to download.
type Target string

func (t Target) String() string { return string(t) }

// FileName returns the last segment of the URL path, which is the name the
// archive is saved under.
func (t Target) FileName() string {
	u, err := url.Parse(string(t))
	if err != nil || u.Path == "" {
		return path.Base(string(t))
	}
	return path.Base(u.Path)
}
