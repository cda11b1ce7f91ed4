package record

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// Loader fetches artifact bytes from a Source and parses them. The fs.FS
// strategy lets tests and embedded fixtures bypass the host filesystem.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a Loader. fsys may be nil when only file sources are
// used.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// Load reads and parses the artifact identified by src.
func (l *Loader) Load(ctx context.Context, src Source) (*Record, error) {
	if src == nil {
		return nil, errors.New("record loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("record loader: fs support disabled")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		err = errors.New("record loader: unsupported source kind")
	}
	if err != nil {
		return nil, err
	}

	rec, err := Parse(data)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = src.Location()
		}
		return nil, err
	}
	return rec, nil
}
