package document

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/bgraf/figures/filesystem"
	"github.com/bgraf/figures/markdown"
	"github.com/bgraf/figures/render"
	"github.com/google/uuid"
)

// Store holds the rendered documents below a root directory. It is safe for
// concurrent use.
type Store struct {
	RootDirectory string

	mu        sync.RWMutex
	documents []*Document
	options   StoreOptions
	md        *markdown.Markdown
}

// NewStore creates a store and loads all documents below rootDirectory. An
// empty rootDirectory yields an empty store that can still render sources.
func NewStore(ctx context.Context, rootDirectory string, opts StoreOptions) (*Store, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultStoreOptions().Extensions
	}

	md, err := opts.NewMarkdown()
	if err != nil {
		return nil, err
	}

	store := &Store{
		RootDirectory: rootDirectory,
		options:       opts,
		md:            md,
	}

	if rootDirectory == "" {
		return store, nil
	}

	store.documents, err = store.LoadDocuments(ctx, rootDirectory)
	if err != nil {
		return nil, fmt.Errorf("load documents failed: %w", err)
	}

	return store, nil
}

// Documents returns a snapshot of the loaded documents.
func (s *Store) Documents() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*Document, len(s.documents))
	copy(docs, s.documents)

	return docs
}

// OrderDocumentsByDate sorts newest first. Documents of the same date are
// ordered by path.
func (s *Store) OrderDocumentsByDate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.documents, func(i, j int) bool {
		lhs, rhs := s.documents[i], s.documents[j]
		if lhs.Date.Equal(rhs.Date) {
			return lhs.Path < rhs.Path
		}

		return lhs.Date.After(rhs.Date)
	})
}

func (s *Store) DocumentByGUID(guid uuid.UUID) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.GUID == guid {
			return doc
		}
	}

	return nil
}

// ReloadByGUID renders the document from disk again and replaces the stored
// version.
func (s *Store) ReloadByGUID(ctx context.Context, guid uuid.UUID) (*Document, error) {
	doc := s.DocumentByGUID(guid)
	if doc == nil {
		return nil, fmt.Errorf("no such document")
	}

	newDoc, err := s.LoadDocument(ctx, doc.Path)
	if err != nil {
		return nil, fmt.Errorf("new document failed: %w", err)
	}

	newDoc.GUID = doc.GUID

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.documents {
		if d.GUID == newDoc.GUID {
			s.documents[i] = newDoc
		}
	}

	return newDoc, nil
}

func (s *Store) LoadDocuments(ctx context.Context, rootDirectory string) ([]*Document, error) {
	var docs []*Document

	err := filepath.WalkDir(rootDirectory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if !s.options.hasExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		doc, err := s.LoadDocument(ctx, path)
		if err != nil {
			return err
		}

		docs = append(docs, doc)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("could not load documents: %w", err)
	}

	log.Printf("loaded %d documents from %s", len(docs), rootDirectory)

	return docs, nil
}

func (s *Store) LoadDocument(ctx context.Context, path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read source file: %w", err)
	}

	doc, err := s.Render(ctx, path, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Render converts source into a document. The path is used for the
// document identity and fallbacks only, it may be empty.
func (s *Store) Render(ctx context.Context, path string, source []byte) (*Document, error) {
	state, err := s.md.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("could not convert markdown: %w", err)
	}

	var buffer bytes.Buffer
	if err := s.md.Renderer().Render(&buffer, state.Tokens); err != nil {
		return nil, fmt.Errorf("could not render HTML: %w", err)
	}

	doc := &Document{
		Path: path,
	}

	doc.HTML, err = goquery.NewDocumentFromReader(&buffer)
	if err != nil {
		return nil, fmt.Errorf("could not parse HTML: %w", err)
	}

	if err := populateFromFrontMatter(doc, state.Meta); err != nil {
		return nil, fmt.Errorf("could not parse front matter: %w", err)
	}

	doc.Figures = render.Figures(doc.HTML)
	applyFallbacks(doc, source)

	return doc, nil
}

func applyFallbacks(doc *Document, source []byte) {
	if doc.Title == "" {
		doc.Title = strings.TrimSpace(doc.HTML.Find("h1").First().Text())
	}

	if doc.Title == "" && doc.Path != "" {
		base := filepath.Base(doc.Path)
		doc.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if doc.Date.IsZero() && doc.Path != "" {
		if mod, err := filesystem.FileModifiedTime(doc.Path); err == nil {
			doc.Date = mod
		}
	}

	if doc.GUID == uuid.Nil {
		name := []byte(doc.Path)
		if doc.Path == "" {
			name = source
		} else if abs, err := filepath.Abs(doc.Path); err == nil {
			name = []byte(abs)
		}

		doc.GUID = uuid.NewSHA1(uuid.NameSpaceURL, name)
	}
}
