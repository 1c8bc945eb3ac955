// Package codec defines the binary block format shared by historical .dsb
// files and real-time .dmb mappings, and migrates legacy blocks to the
// current layout.
package codec

import (
	"encoding/binary"
	"unsafe"

	market "github.com/muhammadchandra19/tickstore/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickstore/pkg/compress"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// BlockFlag is the magic tag opening every stored or mapped block.
var BlockFlag = [4]byte{'T', 'S', 'B', 'K'}

// BlockVersion enumerates the block format versions. New behavior is always a
// new value; existing values are frozen.
type BlockVersion uint16

const (
	// VersionRaw is an uncompressed block holding legacy-layout records.
	VersionRaw BlockVersion = 1
	// VersionCompressed is a compressed block holding legacy-layout records.
	VersionCompressed BlockVersion = 2
	// VersionRawV2 is an uncompressed block holding current-layout records.
	VersionRawV2 BlockVersion = 3
	// VersionCompressedV2 is a compressed block holding current-layout records.
	VersionCompressedV2 BlockVersion = 4
)

// IsCompressed reports whether the version marks a compressed payload.
func (v BlockVersion) IsCompressed() bool {
	return v == VersionCompressed || v == VersionCompressedV2
}

// IsLegacy reports whether the version marks legacy-layout records.
func (v BlockVersion) IsLegacy() bool {
	return v == VersionRaw || v == VersionCompressed
}

func (v BlockVersion) valid() bool {
	return v >= VersionRaw && v <= VersionCompressedV2
}

// BlockType discriminates what a block stores. Values are part of the
// on-disk format.
type BlockType uint16

const (
	// BlockTypeRTMinute1 is a live 1 minute bar ring.
	BlockTypeRTMinute1 BlockType = 1
	// BlockTypeRTMinute5 is a live 5 minute bar ring.
	BlockTypeRTMinute5 BlockType = 2
	// BlockTypeRTTicks is a live tick ring.
	BlockTypeRTTicks BlockType = 3
	// BlockTypeHisMinute1 is a historical 1 minute bar file.
	BlockTypeHisMinute1 BlockType = 4
	// BlockTypeHisMinute5 is a historical 5 minute bar file.
	BlockTypeHisMinute5 BlockType = 5
	// BlockTypeHisDay is a historical daily bar file.
	BlockTypeHisDay BlockType = 6
	// BlockTypeHisTicks is a historical tick file.
	BlockTypeHisTicks BlockType = 7
	// BlockTypeRTOrderDetail is a live order detail ring.
	BlockTypeRTOrderDetail BlockType = 8
	// BlockTypeRTOrderQueue is a live order queue ring.
	BlockTypeRTOrderQueue BlockType = 9
	// BlockTypeRTTransaction is a live transaction ring.
	BlockTypeRTTransaction BlockType = 10
	// BlockTypeHisOrderDetail is a historical order detail file.
	BlockTypeHisOrderDetail BlockType = 11
	// BlockTypeHisOrderQueue is a historical order queue file.
	BlockTypeHisOrderQueue BlockType = 12
	// BlockTypeHisTransaction is a historical transaction file.
	BlockTypeHisTransaction BlockType = 13
)

// BlockHeader is the fixed preamble of every block.
type BlockHeader struct {
	Flag    [4]byte
	Type    BlockType
	Version BlockVersion
}

// BlockHeaderV2 extends BlockHeader for compressed blocks with the byte
// length of the compressed payload that follows it.
type BlockHeaderV2 struct {
	BlockHeader
	DataSize uint64
}

// RTBlockHeader is the preamble of a writer-owned real-time mapping. Size
// and Capacity are updated in place by the writer.
type RTBlockHeader struct {
	BlockHeader
	Size     uint32
	Capacity uint32
}

// Header sizes in bytes, part of the stored format.
const (
	HeaderSize   = int(unsafe.Sizeof(BlockHeader{}))
	HeaderV2Size = int(unsafe.Sizeof(BlockHeaderV2{}))
	RTHeaderSize = int(unsafe.Sizeof(RTBlockHeader{}))
)

// ParseHeader reads the 8 byte preamble of raw. It validates length, flag
// and version but nothing else.
func ParseHeader(raw []byte) (BlockHeader, error) {
	if len(raw) < HeaderSize {
		return BlockHeader{}, errors.NewTracer(errors.BlockTooSmallError)
	}
	h := BlockHeader{
		Flag:    [4]byte{raw[0], raw[1], raw[2], raw[3]},
		Type:    BlockType(binary.LittleEndian.Uint16(raw[4:6])),
		Version: BlockVersion(binary.LittleEndian.Uint16(raw[6:8])),
	}
	if h.Flag != BlockFlag {
		return BlockHeader{}, errors.NewTracer(errors.BlockBadFlagError)
	}
	if !h.Version.valid() {
		return BlockHeader{}, errors.NewTracer(errors.BlockBadVersionError)
	}
	return h, nil
}

// ParseRTHeader overlays the real-time preamble on a mapped region. The
// returned pointer aliases raw, so the writer's in-place Size/Capacity
// updates stay visible through it.
func ParseRTHeader(raw []byte) (*RTBlockHeader, error) {
	if len(raw) < RTHeaderSize {
		return nil, errors.NewTracer(errors.BlockTooSmallError)
	}
	h := (*RTBlockHeader)(unsafe.Pointer(&raw[0]))
	if h.Flag != BlockFlag {
		return nil, errors.NewTracer(errors.BlockBadFlagError)
	}
	return h, nil
}

// Normalize turns any stored block into canonical current-layout record
// bytes. isBar selects the record shape for legacy migration. When
// keepHeader is set the result is re-headed with VersionRawV2; otherwise the
// bare payload is returned. Normalizing an already-canonical block is a
// no-op (modulo header stripping).
func Normalize(raw []byte, isBar bool, keepHeader bool) ([]byte, error) {
	h, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}

	if !h.Version.IsCompressed() && !h.Version.IsLegacy() {
		if keepHeader {
			return raw, nil
		}
		return raw[HeaderSize:], nil
	}

	payload := raw[HeaderSize:]
	if h.Version.IsCompressed() {
		if len(raw) < HeaderV2Size {
			return nil, errors.NewTracer(errors.BlockTooSmallError)
		}
		dataSize := binary.LittleEndian.Uint64(raw[HeaderSize:HeaderV2Size])
		if dataSize != uint64(len(raw)-HeaderV2Size) {
			return nil, errors.NewTracer(errors.BlockSizeMismatchError)
		}
		payload, err = compress.Decompress(raw[HeaderV2Size:], -1)
		if err != nil {
			return nil, err
		}
	}

	if h.Version.IsLegacy() {
		payload, err = widen(payload, isBar)
		if err != nil {
			return nil, err
		}
	}

	if !keepHeader {
		return payload, nil
	}
	out := make([]byte, 0, HeaderSize+len(payload))
	out = AppendHeader(out, h.Type, VersionRawV2)
	return append(out, payload...), nil
}

// Wrap frames payload as an uncompressed current-version block.
func Wrap(payload []byte, btype BlockType) []byte {
	out := make([]byte, 0, HeaderSize+len(payload))
	out = AppendHeader(out, btype, VersionRawV2)
	return append(out, payload...)
}

// WrapCompressed compresses payload and frames it as a compressed
// current-version block.
func WrapCompressed(payload []byte, btype BlockType) []byte {
	compressed := compress.Compress(payload)
	out := make([]byte, 0, HeaderV2Size+len(compressed))
	out = AppendHeader(out, btype, VersionCompressedV2)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(compressed)))
	return append(out, compressed...)
}

// AppendHeader appends an 8 byte block preamble to dst.
func AppendHeader(dst []byte, btype BlockType, version BlockVersion) []byte {
	dst = append(dst, BlockFlag[:]...)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(btype))
	dst = binary.LittleEndian.AppendUint16(dst, uint16(version))
	return dst
}

// widen migrates a legacy payload record by record. The payload must hold a
// whole number of legacy records.
func widen(payload []byte, isBar bool) ([]byte, error) {
	if isBar {
		if len(payload)%market.LegacyBarSize != 0 {
			return nil, errors.NewTracer(errors.BlockSizeMismatchError)
		}
		legacy := market.LegacyBarsOf(payload)
		bars := make([]market.Bar, len(legacy))
		for i := range legacy {
			bars[i] = legacy[i].Widen()
		}
		return market.BytesOfBars(bars), nil
	}

	if len(payload)%market.LegacyTickSize != 0 {
		return nil, errors.NewTracer(errors.BlockSizeMismatchError)
	}
	legacy := market.LegacyTicksOf(payload)
	ticks := make([]market.Tick, len(legacy))
	for i := range legacy {
		ticks[i] = legacy[i].Widen()
	}
	return market.BytesOfTicks(ticks), nil
}
