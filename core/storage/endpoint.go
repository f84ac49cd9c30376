package storage

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Layout folders below an endpoint prefix.
const (
	FolderCurrent    = "current"
	FolderPrevious   = "previous"
	FolderHistory    = "history"
	FolderDefinition = "definition"
	FolderData       = "data"
	FolderLog        = "log"
)

// LayoutFolders lists the folders every endpoint is expected to carry.
var LayoutFolders = []string{
	FolderCurrent, FolderPrevious, FolderHistory, FolderDefinition, FolderData, FolderLog,
}

// Endpoint is a bucket and key prefix, written s3://bucket/prefix.
type Endpoint struct {
	Bucket string
	// Prefix is empty or ends with a slash.
	Prefix string
}

// ParseEndpoint parses an s3://bucket[/prefix] location.
func ParseEndpoint(raw string) (Endpoint, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if u.Scheme != "s3" {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: scheme must be s3", raw)
	}
	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: missing bucket", raw)
	}
	return Endpoint{Bucket: u.Host, Prefix: normalizePrefix(u.Path)}, nil
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

// Sub returns the endpoint of a folder below e.
func (e Endpoint) Sub(folder string) Endpoint {
	return Endpoint{Bucket: e.Bucket, Prefix: normalizePrefix(e.Prefix + folder)}
}

// Key joins parts below the prefix of e.
func (e Endpoint) Key(parts ...string) string {
	return e.Prefix + path.Join(parts...)
}

func (e Endpoint) Current() Endpoint    { return e.Sub(FolderCurrent) }
func (e Endpoint) Previous() Endpoint   { return e.Sub(FolderPrevious) }
func (e Endpoint) History() Endpoint    { return e.Sub(FolderHistory) }
func (e Endpoint) Definition() Endpoint { return e.Sub(FolderDefinition) }
func (e Endpoint) Data() Endpoint       { return e.Sub(FolderData) }
func (e Endpoint) Log() Endpoint        { return e.Sub(FolderLog) }

// String returns the s3:// form of e.
func (e Endpoint) String() string {
	return "s3://" + e.Bucket + "/" + e.Prefix
}
