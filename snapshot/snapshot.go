package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/blobstore"
	"github.com/hupe1980/kmeans/codec"
	"github.com/hupe1980/kmeans/internal/lloyd"
)

// Options configures encoding.
type Options struct {
	Codec       codec.Codec
	Compression Compression
}

// Option configures encoding.
type Option func(*Options)

// WithCodec selects the document codec. The default is codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		if c != nil {
			o.Codec = c
		}
	}
}

// WithCompression selects the block compression. The default is
// CompressionZSTD.
func WithCompression(c Compression) Option {
	return func(o *Options) { o.Compression = c }
}

func applyOptions(opts []Option) Options {
	o := Options{Codec: codec.Default, Compression: CompressionZSTD}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type resultDoc struct {
	K          int            `json:"k"`
	Points     int            `json:"points"`
	Centroids  [][]float64    `json:"centroids"`
	Groups     [][]byte       `json:"groups"`
	Iterations int            `json:"iterations"`
	Outcome    kmeans.Outcome `json:"outcome"`
	Seed       uint64         `json:"seed"`
}

type sweepDoc struct {
	Entries kmeans.SweepResult `json:"entries"`
}

// EncodeResult serializes a clustering result.
func EncodeResult(res *kmeans.Result, opts ...Option) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("snapshot: nil result")
	}

	doc := resultDoc{
		K:          res.K,
		Centroids:  res.Centroids,
		Groups:     make([][]byte, len(res.Groups)),
		Iterations: res.Iterations,
		Outcome:    res.Outcome,
		Seed:       res.Seed,
	}

	for j, members := range res.Groups {
		bm := roaring.New()
		for _, idx := range members {
			if idx < 0 || uint64(idx) > math.MaxUint32 {
				return nil, fmt.Errorf("snapshot: group %d: index %d out of range", j, idx)
			}
			bm.Add(uint32(idx))
		}
		bm.RunOptimize()

		b, err := bm.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("snapshot: group %d: %w", j, err)
		}
		doc.Groups[j] = b
		doc.Points += len(members)
	}

	return encode(KindResult, doc, applyOptions(opts))
}

// DecodeResult parses a snapshot written by EncodeResult and checks that its
// groups partition the dataset indices.
func DecodeResult(data []byte) (*kmeans.Result, error) {
	var doc resultDoc
	if err := decode(data, KindResult, &doc); err != nil {
		return nil, err
	}

	if len(doc.Centroids) != doc.K || len(doc.Groups) != doc.K {
		return nil, fmt.Errorf("%w: k=%d with %d centroids and %d groups", ErrCorrupt, doc.K, len(doc.Centroids), len(doc.Groups))
	}

	groups := make([][]int, doc.K)
	for j, b := range doc.Groups {
		bm := roaring.New()
		if err := bm.UnmarshalBinary(b); err != nil {
			return nil, fmt.Errorf("%w: group %d: %v", ErrCorrupt, j, err)
		}
		if bm.IsEmpty() {
			continue
		}

		members := make([]int, 0, bm.GetCardinality())
		it := bm.Iterator()
		for it.HasNext() {
			members = append(members, int(it.Next()))
		}
		groups[j] = members
	}

	if err := lloyd.CheckPartition(groups, doc.Points); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return &kmeans.Result{
		K:          doc.K,
		Groups:     groups,
		Centroids:  doc.Centroids,
		Iterations: doc.Iterations,
		Outcome:    doc.Outcome,
		Seed:       doc.Seed,
	}, nil
}

// EncodeSweep serializes sweep scores.
func EncodeSweep(s kmeans.SweepResult, opts ...Option) ([]byte, error) {
	return encode(KindSweep, sweepDoc{Entries: s}, applyOptions(opts))
}

// DecodeSweep parses a snapshot written by EncodeSweep.
func DecodeSweep(data []byte) (kmeans.SweepResult, error) {
	var doc sweepDoc
	if err := decode(data, KindSweep, &doc); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// SaveResult encodes res and writes it to store under name.
func SaveResult(ctx context.Context, store blobstore.Store, name string, res *kmeans.Result, opts ...Option) error {
	data, err := EncodeResult(res, opts...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// LoadResult reads and decodes a result snapshot.
func LoadResult(ctx context.Context, store blobstore.Store, name string) (*kmeans.Result, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return DecodeResult(data)
}

// SaveSweep encodes s and writes it to store under name.
func SaveSweep(ctx context.Context, store blobstore.Store, name string, s kmeans.SweepResult, opts ...Option) error {
	data, err := EncodeSweep(s, opts...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// LoadSweep reads and decodes a sweep snapshot.
func LoadSweep(ctx context.Context, store blobstore.Store, name string) (kmeans.SweepResult, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return DecodeSweep(data)
}

func encode(kind Kind, doc any, o Options) ([]byte, error) {
	name := o.Codec.Name()
	if len(name) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: name %q too long", ErrUnknownCodec, name)
	}

	payload, err := o.Codec.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s marshal: %w", name, err)
	}

	block, err := compressBlock(payload, o.Compression)
	if err != nil {
		return nil, err
	}

	body := make([]byte, 0, len(name)+len(block))
	body = append(body, name...)
	body = append(body, block...)

	h := Header{
		Magic:       MagicNumber,
		Version:     Version,
		Kind:        kind,
		Compression: o.Compression,
		Checksum:    crc32.ChecksumIEEE(body),
		CodecLen:    uint8(len(name)),
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(body))
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// ReadHeader parses and validates the header of a snapshot.
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}

	var h Header
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, h.Version)
	}
	return &h, nil
}

func decode(data []byte, want Kind, doc any) error {
	h, err := ReadHeader(data)
	if err != nil {
		return err
	}
	if h.Kind != want {
		return fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, h.Kind, want)
	}

	body := data[headerSize:]
	if got := crc32.ChecksumIEEE(body); got != h.Checksum {
		return fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrChecksum, got, h.Checksum)
	}
	if len(body) < int(h.CodecLen) {
		return fmt.Errorf("%w: truncated codec name", ErrCorrupt)
	}

	name := string(body[:h.CodecLen])
	c, ok := codec.ByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	payload, err := decompressBlock(body[h.CodecLen:], h.Compression)
	if err != nil {
		return err
	}

	if err := c.Unmarshal(payload, doc); err != nil {
		return fmt.Errorf("%w: %s unmarshal: %v", ErrCorrupt, name, err)
	}
	return nil
}
