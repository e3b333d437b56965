package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// openDocument is the editor's copy of a file.
type openDocument struct {
	uri     protocol.DocumentUri
	path    string
	version protocol.Integer
	text    string
}

// documents tracks the open documents by URI.
type documents struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*openDocument
}

func newDocuments() *documents {
	return &documents{docs: make(map[protocol.DocumentUri]*openDocument)}
}

func (d *documents) open(uri protocol.DocumentUri, version protocol.Integer, text string) *openDocument {
	doc := &openDocument{uri: uri, path: uriToPath(uri), version: version, text: text}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[uri] = doc
	return doc
}

// update replaces the text of an open document. Unknown URIs are opened.
func (d *documents) update(uri protocol.DocumentUri, version protocol.Integer, text string) *openDocument {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, ok := d.docs[uri]
	if !ok {
		doc = &openDocument{uri: uri, path: uriToPath(uri)}
		d.docs[uri] = doc
	}
	// Snapshots handed out earlier stay unchanged.
	next := *doc
	next.version = version
	next.text = text
	d.docs[uri] = &next
	return &next
}

func (d *documents) get(uri protocol.DocumentUri) (*openDocument, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.docs[uri]
	return doc, ok
}

func (d *documents) close(uri protocol.DocumentUri) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, uri)
}

// uriToPath returns the file path of a file:// URI. Other URIs, such as
// untitled buffers, are returned unchanged.
func uriToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return filepath.Clean(filepath.FromSlash(parsed.Path))
}
