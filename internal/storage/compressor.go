package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"

	"rundash/internal/storage/interfaces"
	"rundash/internal/structures"
)

const compressedSuffix = ".zst"

// maxTableMemory bounds what a decoded table may allocate.
const maxTableMemory = 256 << 20

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrNotCompressed is returned when a .zst table holds plain bytes.
var ErrNotCompressed = errors.New("table is not zstd-compressed")

// ZstdTable compresses the whole table in one frame. Tables are written once
// per fetch and read once per serve, so it favours ratio over speed.
type ZstdTable struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdTable) Compress(table []byte) ([]byte, error) {
	return z.encoder.EncodeAll(table, make([]byte, 0, len(table)/4)), nil
}

func (z *ZstdTable) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return nil, ErrNotCompressed
	}
	table, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decode zstd table: %w", err)
	}
	return table, nil
}

func (z *ZstdTable) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxTableMemory),
	)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdTable{encoder: encoder, decoder: decoder}, nil
}

// PlainText leaves the table as readable CSV.
type PlainText struct{}

func (PlainText) Compress(val []byte) ([]byte, error)   { return val, nil }
func (PlainText) Decompress(val []byte) ([]byte, error) { return val, nil }
func (PlainText) Close()                                {}

// NewCompressorProvider picks zstd for tables stored under a .zst name.
func NewCompressorProvider(conf *structures.Config) (interfaces.CompressorInterface, error) {
	if strings.HasSuffix(conf.Persistence.FilePath, compressedSuffix) {
		return NewZstdCompressor()
	}
	return PlainText{}, nil
}
