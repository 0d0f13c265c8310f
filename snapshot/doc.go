// Package snapshot persists clustering results and sweep scores as
// self-describing blobs.
//
// A snapshot is a fixed header followed by the codec name and one
// compressed block holding the codec-encoded document:
//
//	[magic u32][version u16][kind u8][compression u8][crc32 u32][codec len u8][pad 3]
//	[codec name]
//	[uncompressed size u32][compressed size u32][data]
//
// All integers are little endian. The checksum covers everything after the
// header. A compressed size of zero marks a block stored as is. Group
// memberships are stored as serialized roaring bitmaps.
//
//	err := snapshot.SaveResult(ctx, store, "runs/k3.snap", res,
//	    snapshot.WithCompression(snapshot.CompressionZSTD))
//	res, err := snapshot.LoadResult(ctx, store, "runs/k3.snap")
package snapshot
