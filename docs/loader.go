// Package docs implements the progressive document loader: byte-level read
// progress followed by per-page progress over an uploaded PDF, cancellable
// between steps through the caller's context.
package docs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
)

// Event kinds emitted during a load.
const (
	EventBytes = "bytes"
	EventPages = "pages"
	EventDone  = "done"
)

// Progress is one loading event. Bytes events carry Loaded/Total; pages
// events carry Page/Pages. The two progress tracks are reported
// independently.
type Progress struct {
	Kind   string `json:"kind"`
	Loaded int64  `json:"loaded,omitempty"`
	Total  int64  `json:"total,omitempty"`
	Page   int    `json:"page,omitempty"`
	Pages  int    `json:"pages,omitempty"`
}

// pageObject marks a PDF page object. "/Type /Pages" is the page tree, not
// a page, so the trailing "s" is excluded.
var pageObject = regexp.MustCompile(`/Type\s*/Page([^s]|$)`)

const defaultChunkSize = 64 * 1024

// Loader reads documents progressively.
type Loader struct {
	// ChunkSize is the byte-progress granularity; zero means 64 KiB.
	ChunkSize int
}

// Load reads the file at path, emitting byte progress while reading and
// page progress while walking the page objects. The context is checked
// before every chunk and every page: a cancelled consumer stops the loop
// and gets ctx.Err() back with no other error surfaced.
func (l *Loader) Load(ctx context.Context, path string, emit func(Progress)) error {
	chunk := l.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat document: %w", err)
	}
	total := info.Size()

	var buf bytes.Buffer
	read := make([]byte, chunk)
	var loaded int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := f.Read(read)
		if n > 0 {
			buf.Write(read[:n])
			loaded += int64(n)
			emit(Progress{Kind: EventBytes, Loaded: loaded, Total: total})
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read document: %w", err)
		}
		if n == 0 {
			break
		}
	}

	pages := pageObject.FindAllIndex(buf.Bytes(), -1)
	for i := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(Progress{Kind: EventPages, Page: i + 1, Pages: len(pages)})
	}

	emit(Progress{Kind: EventDone, Loaded: loaded, Total: total, Pages: len(pages)})
	return nil
}
