package blob

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/always-cache/range-parser/rfc9110"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no blob is stored under a key.
var ErrNotFound = errors.New("blob not found")

// Store is an interface for blob storage.
// It stores []byte values together with the metadata needed to answer
// range requests for them (size, content type and validators).
//
// Implementations must be thread-safe!
type Store interface {
	// Put stores data under the given key, replacing any previous blob.
	Put(key, contentType string, data []byte) (Info, error)
	// Stat returns the metadata of the blob, or ErrNotFound.
	Stat(key string) (Info, error)
	// Open returns the blob for reading, or ErrNotFound.
	Open(key string) (Blob, error)
	// Delete removes the blob, or returns ErrNotFound if there is none.
	Delete(key string) error
	// Keys calls the given callback for each key with the given prefix, in key order.
	Keys(prefix string, cb func(string)) error
}

// Info describes a stored blob.
type Info struct {
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	ETag        string    `json:"etag"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// EntityTag returns the strong entity tag of the blob.
func (i Info) EntityTag() rfc9110.EntityTag {
	return rfc9110.StrongEntityTag(i.ETag)
}

// Blob is a readable, seekable stored blob.
type Blob struct {
	Info
	io.ReadSeeker
}

func newInfo(key, contentType string, data []byte) Info {
	return Info{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		ETag:        fmt.Sprintf("%x", sha256.Sum256(data)),
		// HTTP dates have a resolution of one second
		ModifiedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func newBlob(info Info, data []byte) Blob {
	return Blob{Info: info, ReadSeeker: bytes.NewReader(data)}
}
