package importfilter

import (
	"bytes"
	"io"
	"testing"
)

func TestDetectCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     CompressionType
	}{
		{"imports.csv", CompressionNone},
		{"imports.csv.gz", CompressionGZ},
		{"imports.txt.bz2", CompressionBZ2},
		{"imports.xlsx.xz", CompressionXZ},
		{"imports.parquet.zst", CompressionZSTD},
		{"IMPORTS.CSV.GZ", CompressionGZ},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			if got := detectCompression(tt.filename); got != tt.want {
				t.Errorf("detectCompression(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestTrimCompressionExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{"imports.csv.gz", "imports.csv"},
		{"imports.txt", "imports.txt"},
		{"imports.xlsx.zst", "imports.xlsx"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			if got := trimCompressionExt(tt.filename); got != tt.want {
				t.Errorf("trimCompressionExt(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

// Compress-then-decompress must restore the payload for every type that
// supports writing.
func TestCompressionRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte("DATE  QUANTITY\n01/02/2023  10\n")

	for _, compression := range []CompressionType{CompressionNone, CompressionGZ, CompressionXZ, CompressionZSTD} {
		compression := compression
		t.Run(compression.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			writer, closeWriter, err := newCompressWriter(&buf, compression)
			if err != nil {
				t.Fatalf("newCompressWriter() error = %v", err)
			}
			if _, err := writer.Write(payload); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := closeWriter(); err != nil {
				t.Fatalf("close error = %v", err)
			}

			reader, closeReader, err := newDecompressReader(bytes.NewReader(buf.Bytes()), compression)
			if err != nil {
				t.Fatalf("newDecompressReader() error = %v", err)
			}
			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if err := closeReader(); err != nil {
				t.Fatalf("reader close error = %v", err)
			}

			if !bytes.Equal(got, payload) {
				t.Errorf("round trip mismatch: got %q, want %q", got, payload)
			}
		})
	}
}

func TestBZ2WriterUnsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, _, err := newCompressWriter(&buf, CompressionBZ2); err == nil {
		t.Error("expected an error for bzip2 writing")
	}
}
