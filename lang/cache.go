package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parse results keyed by a hash of source and options.
var globalCache sync.Map

// state tracks the parse of one cached source.
type state struct {
	once      sync.Once
	doc       *Document
	err       error
	cancelled bool
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	_ = gob.NewEncoder(&buf).Encode(opts)

	return xxh3.Hash(buf.Bytes())
}

// ParseString parses source and returns the resulting Document.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Document, error) {
	cfg := makeConfig(opts...)
	if cfg.cache {
		return parseCached(ctx, source, cfg, opts...)
	}

	return NewParser(source, opts...).Parse(ctx)
}

// ParseReader reads all of r and parses it as with [ParseString].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeConfig(opts...).logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return ParseString(ctx, string(data), opts...)
}

// parseCached parses source at most once per distinct source and options,
// returning a private copy of the cached Document to each caller.
func parseCached(
	ctx context.Context,
	source string,
	cfg config,
	opts ...Option,
) (*Document, error) {
	// Combine source hash with options hash for cache key uniqueness
	sourceHash := xxh3.HashString(source)
	optsHash := hashOptions(cfg.opts)
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	value, hit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		return NewParser(source, opts...).Parse(ctx)
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.doc, entry.err = NewParser(source, opts...).Parse(ctx)
		entry.cancelled = entry.err != nil && ctx.Err() != nil
	})

	if entry.err != nil {
		// A cancelled parse says nothing about the source.
		if entry.cancelled {
			globalCache.CompareAndDelete(key, entry)
		}

		return nil, entry.err
	}

	return entry.doc.Clone(), nil
}

// ClearCache removes all cached parse results.
func ClearCache() {
	globalCache.Clear()
}
