package snapshot

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies snapshot blobs (ASCII: "KMS1").
	MagicNumber uint32 = 0x4B4D5331
	// Version is the current format version.
	Version uint16 = 1

	headerSize = 16
)

var (
	ErrInvalidMagic   = errors.New("snapshot: invalid magic number")
	ErrInvalidVersion = errors.New("snapshot: unsupported version")
	ErrKindMismatch   = errors.New("snapshot: unexpected kind")
	ErrChecksum       = errors.New("snapshot: checksum mismatch")
	ErrUnknownCodec   = errors.New("snapshot: unknown codec")
	ErrCorrupt        = errors.New("snapshot: corrupt data")
)

// Kind tells which document a snapshot holds.
type Kind uint8

const (
	KindResult Kind = 1
	KindSweep  Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindResult:
		return "result"
	case KindSweep:
		return "sweep"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Header is the fixed-size prefix of every snapshot.
type Header struct {
	Magic       uint32
	Version     uint16
	Kind        Kind
	Compression Compression
	Checksum    uint32 // CRC32 (IEEE) of everything after the header
	CodecLen    uint8
	Padding     [3]byte
}
