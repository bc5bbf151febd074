// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sizing

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/keydoc/lib/convert"
	"github.com/bureau-foundation/keydoc/lib/document"
	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

// Options configures a measurement.
type Options struct {
	// ZstdLevel is fastest, default, better, or best. Empty means
	// default.
	ZstdLevel string

	// Encode bounds the keydoc encoding being measured.
	Encode keydoc.EncodeOptions
}

// Measurement is the size of one encoding of the document.
type Measurement struct {
	// Encoding names the format and compressor, e.g. "json+zstd".
	Encoding string `json:"encoding"`

	// Size is the length in bytes.
	Size int `json:"size"`

	// Ratio is Size divided by the compact JSON size. Zero when the
	// JSON rendering is empty.
	Ratio float64 `json:"ratio"`
}

// Report is the result of [Measure].
type Report struct {
	// Measurements lists every encoding, keydoc first.
	Measurements []Measurement `json:"measurements"`

	// Literals, References, and LiteralBytes come from the keydoc
	// encoder's statistics.
	Literals     int `json:"literals"`
	References   int `json:"references"`
	LiteralBytes int `json:"literal_bytes"`

	// Tags counts keydoc tokens by tag name, omitting unused tags.
	Tags map[string]int `json:"tags"`
}

// Size returns the size recorded for encoding, or -1.
func (report *Report) Size(encoding string) int {
	for _, measurement := range report.Measurements {
		if measurement.Encoding == encoding {
			return measurement.Size
		}
	}
	return -1
}

// Measure encodes node in every supported way and reports the sizes.
func Measure(node document.Node, options Options) (*Report, error) {
	compressor, err := zstdEncoder(options.ZstdLevel)
	if err != nil {
		return nil, err
	}

	encoder := keydoc.NewEncoder(options.Encode)
	keydocData, err := encoder.Encode(node)
	if err != nil {
		return nil, fmt.Errorf("encoding keydoc: %w", err)
	}
	jsonData, err := convert.ToJSON(node, "")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	cborData, err := convert.ToCBOR(node)
	if err != nil {
		return nil, fmt.Errorf("encoding CBOR: %w", err)
	}

	raw := []struct {
		name string
		data []byte
	}{
		{"keydoc", keydocData},
		{"json", jsonData},
		{"cbor", cborData},
	}

	report := &Report{}
	for _, format := range raw {
		report.add(format.name, len(format.data), len(jsonData))
	}
	for _, format := range raw {
		report.add(format.name+"+zstd", len(compressor.EncodeAll(format.data, nil)), len(jsonData))
		lz4Size, err := lz4BlockSize(format.data)
		if err != nil {
			return nil, err
		}
		report.add(format.name+"+lz4", lz4Size, len(jsonData))
	}

	stats := encoder.Stats()
	report.Literals = stats.Literals
	report.References = stats.References
	report.LiteralBytes = stats.LiteralBytes
	report.Tags = make(map[string]int)
	for _, tag := range keydoc.Tags() {
		if count := stats.Tokens[tag]; count > 0 {
			report.Tags[tag.String()] = count
		}
	}
	return report, nil
}

func (report *Report) add(encoding string, size, jsonSize int) {
	measurement := Measurement{Encoding: encoding, Size: size}
	if jsonSize > 0 {
		measurement.Ratio = float64(size) / float64(jsonSize)
	}
	report.Measurements = append(report.Measurements, measurement)
}

// lz4BlockSize returns the LZ4 block-compressed size of data. Input
// LZ4 cannot shrink is reported at its raw size, which is what a
// store would keep.
func lz4BlockSize(data []byte) (int, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return 0, fmt.Errorf("lz4 compress: %w", err)
	}
	if written == 0 || written >= len(data) {
		return len(data), nil
	}
	return written, nil
}

// zstd.Encoder is safe for concurrent EncodeAll calls, so one encoder
// per level is shared.
var (
	zstdEncodersMu sync.Mutex
	zstdEncoders   = map[zstd.EncoderLevel]*zstd.Encoder{}
)

func zstdEncoder(levelName string) (*zstd.Encoder, error) {
	if levelName == "" {
		levelName = "default"
	}
	ok, level := zstd.EncoderLevelFromString(levelName)
	if !ok {
		return nil, fmt.Errorf("unknown zstd level %q (want fastest, default, better, or best)", levelName)
	}

	zstdEncodersMu.Lock()
	defer zstdEncodersMu.Unlock()
	if encoder, ok := zstdEncoders[level]; ok {
		return encoder, nil
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder initialization failed: %w", err)
	}
	zstdEncoders[level] = encoder
	return encoder, nil
}
