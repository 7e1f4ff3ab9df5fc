package diskio

import (
	"bytes"
	"testing"
)

func TestMemReaderReadsAtFragmentOffset(t *testing.T) {
	const descSector = 512
	const allocSize = 256

	body := make([]byte, descSector+4*allocSize)
	payload := []byte("overflow-page-body")
	copy(body[descSector+2*allocSize:], payload)

	r := NewMemReader(body, descSector, allocSize)
	buf := make([]byte, len(payload))
	if err := r.DiskRead(buf, 2, uint32(len(payload))); err != nil {
		t.Fatalf("DiskRead: %v", err)
	}
	if !bytes.Equal(buf, payload) {
		t.Fatalf("DiskRead = %q, want %q", buf, payload)
	}
}

func TestMemReaderBufferSizeMismatch(t *testing.T) {
	r := NewMemReader(make([]byte, 1024), 512, 256)
	buf := make([]byte, 10)
	if err := r.DiskRead(buf, 0, 20); err == nil {
		t.Fatalf("expected a buffer/size mismatch to fail")
	}
}
