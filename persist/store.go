package persist

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/codescope"
	"github.com/hupe1980/codescope/codec"
	"github.com/hupe1980/codescope/target"
)

const (
	fileMagic   = "CSFS"
	fileVersion = 1
	fileExt     = ".csf"
)

// Compression names a body compression scheme. The name is recorded in the
// file header so files stay self-describing.
type Compression string

const (
	// CompressionNone stores the body uncompressed.
	CompressionNone Compression = "none"
	// CompressionZstd compresses the body with zstandard.
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 compresses the body with lz4.
	CompressionLZ4 Compression = "lz4"
)

var (
	// ErrUnknownCompression is returned when a file header names a
	// compression scheme this build does not support.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrUnknownCodec is returned when a file header names a codec that
	// codec.ByName cannot resolve.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrBadName is returned for set names that would escape the store
	// directory or collide with the format extension.
	ErrBadName = errors.New("invalid filter-set name")
)

// FormatError indicates a structurally invalid filter-set file.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	Path   string
	Reason string
	cause  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("filter set %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.cause }

// header is the first line of every filter-set file. It is always plain
// JSON, so it can be read before the body codec is known.
type header struct {
	Magic       string `json:"magic"`
	Version     int    `json:"version"`
	Codec       string `json:"codec"`
	Compression string `json:"compression"`
	Count       int    `json:"count"`
}

type options struct {
	codec       codec.Codec
	compression Compression
	logger      *codescope.Logger
}

// Option configures a Store.
type Option func(*options)

// WithCodec configures the codec used to encode filter envelopes in newly
// written files. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the body compression for newly written files.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures the logger used for store operations.
func WithLogger(l *codescope.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Store persists named filter sets as files under a directory. Files are
// self-describing: the header records codec and compression by name, so a
// store can read files written with different options.
//
// The search engine itself performs no I/O; Store is a session-level
// convenience layered beside it.
type Store struct {
	dir  string
	opts options
}

// NewStore creates the directory if needed and returns a store over it.
func NewStore(dir string, optFns ...Option) (*Store, error) {
	o := options{
		codec:       codec.Default,
		compression: CompressionZstd,
		logger:      codescope.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, opts: o}, nil
}

// Save writes the filters as the set called name, replacing any previous
// contents atomically.
func (s *Store) Save(ctx context.Context, name string, filters []codescope.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	payloads := make([]json.RawMessage, len(filters))
	for i, f := range filters {
		b, err := codescope.MarshalFilter(s.opts.codec, f)
		if err != nil {
			return fmt.Errorf("marshal filter %d: %w", i, err)
		}
		payloads[i] = b
	}
	body, err := s.opts.codec.Marshal(payloads)
	if err != nil {
		return fmt.Errorf("marshal filter set: %w", err)
	}

	hdr, err := json.Marshal(header{
		Magic:       fileMagic,
		Version:     fileVersion,
		Codec:       s.opts.codec.Name(),
		Compression: string(s.opts.compression),
		Count:       len(filters),
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Write(hdr)
	buf.WriteByte('\n')
	if err := compressTo(&buf, body, s.opts.compression); err != nil {
		return err
	}

	// Write via temp file + rename so readers never observe a torn set.
	path := s.path(name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	s.opts.logger.Debug("saved filter set", "name", name, "filters", len(filters))
	return nil
}

// Load reads the set called name and binds the filters to tgt.
func (s *Store) Load(ctx context.Context, name string, tgt *target.Target) ([]codescope.Filter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	path := s.path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	hdrLine, err := r.ReadBytes('\n')
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "missing header", cause: err}
	}

	var hdr header
	if err := json.Unmarshal(hdrLine, &hdr); err != nil {
		return nil, &FormatError{Path: path, Reason: "malformed header", cause: err}
	}
	if hdr.Magic != fileMagic {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("bad magic %q", hdr.Magic)}
	}
	if hdr.Version != fileVersion {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("unsupported version %d", hdr.Version)}
	}

	c, ok := codec.ByName(hdr.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, hdr.Codec)
	}

	body, err := decompress(r, Compression(hdr.Compression))
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "decompress body", cause: err}
	}

	var payloads []json.RawMessage
	if err := c.Unmarshal(body, &payloads); err != nil {
		return nil, &FormatError{Path: path, Reason: "malformed body", cause: err}
	}
	if hdr.Count != len(payloads) {
		return nil, &FormatError{
			Path:   path,
			Reason: fmt.Sprintf("header count %d does not match body count %d", hdr.Count, len(payloads)),
		}
	}

	filters := make([]codescope.Filter, len(payloads))
	for i, p := range payloads {
		flt, err := codescope.UnmarshalFilter(c, p, tgt)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		filters[i] = flt
	}

	s.opts.logger.Debug("loaded filter set", "name", name, "filters", len(filters))
	return filters, nil
}

// List returns the names of all sets in the store, in directory order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	return names, nil
}

// Delete removes the set called name. Deleting a missing set is not an
// error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveAll persists every set in sets, fanning out one goroutine per set.
// The first failure cancels the remaining writes.
func (s *Store) SaveAll(ctx context.Context, sets map[string][]codescope.Filter) error {
	g, ctx := errgroup.WithContext(ctx)
	for name, filters := range sets {
		name, filters := name, filters
		g.Go(func() error {
			return s.Save(ctx, name, filters)
		})
	}
	return g.Wait()
}

// LoadAll reads every set in the store, bound to tgt.
func (s *Store) LoadAll(ctx context.Context, tgt *target.Target) (map[string][]codescope.Filter, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]codescope.Filter, len(names))
	g, ctx := errgroup.WithContext(ctx)
	results := make([][]codescope.Filter, len(names))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			filters, err := s.Load(ctx, name, tgt)
			if err != nil {
				return err
			}
			results[i] = filters
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

func compressTo(w io.Writer, body []byte, c Compression) error {
	switch c {
	case CompressionNone:
		_, err := w.Write(body)
		return err
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(body); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		if _, err := lw.Write(body); err != nil {
			lw.Close()
			return err
		}
		return lw.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

func decompress(r io.Reader, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return io.ReadAll(r)
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(r))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}
