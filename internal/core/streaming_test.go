package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, "Fecha;Tipo"...),
			expected: "Fecha;Tipo",
		},
		{
			name:     "file without BOM",
			input:    []byte("Fecha;Tipo"),
			expected: "Fecha;Tipo",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
		{
			name:     "latin-1 bytes pass through",
			input:    []byte{'E', 'm', 'i', 's', 'i', 0xF3, 'n'},
			expected: string([]byte{'E', 'm', 'i', 's', 'i', 0xF3, 'n'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestBOMSkippingReader_OneByteReads(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, "abc"...)
	reader := NewBOMSkippingReader(iotest.OneByteReader(bytes.NewReader(input)))

	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "abc" {
		t.Errorf("got %q, want %q", result, "abc")
	}
}

func TestStreamingCountingReader(t *testing.T) {
	input := strings.Repeat("x", 200)
	reader := NewStreamingCountingReader(strings.NewReader(input), int64(len(input)))

	buf := make([]byte, 50)
	if _, err := reader.Read(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.BytesRead != 50 {
		t.Errorf("BytesRead = %d, want 50", reader.BytesRead)
	}
	if got := reader.Progress(); got != 25 {
		t.Errorf("Progress = %d, want 25", got)
	}

	if _, err := io.ReadAll(reader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reader.Progress(); got != 100 {
		t.Errorf("Progress = %d, want 100", got)
	}
}

func TestStreamingCountingReader_UnknownTotal(t *testing.T) {
	reader := NewStreamingCountingReader(strings.NewReader("abc"), 0)
	io.ReadAll(reader)

	if reader.BytesRead != 3 {
		t.Errorf("BytesRead = %d, want 3", reader.BytesRead)
	}
	if got := reader.Progress(); got != 0 {
		t.Errorf("Progress = %d, want 0 when total is unknown", got)
	}
}
