package model

import "context"

// ContentStore defines operations against the remote versioned file store.
// Every file revision carries an opaque version tag (sha); a put must
// present the tag obtained from the most recent get or the store rejects
// the write, which the client surfaces as ErrVersionConflict.
type ContentStore interface {
	GetFile(ctx context.Context, loc RepoLocation) (ContentFile, error)
	PutFile(ctx context.Context, loc RepoLocation, content []byte, message, sha string) (newSHA string, err error)
}

// ContentFile is one revision of a remote content document.
type ContentFile struct {
	Content []byte
	SHA     string
}
