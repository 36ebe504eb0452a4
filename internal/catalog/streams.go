package catalog

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

var errNegativeOffset = errors.New("negative offset")

// ByteFile is an in-memory file: reads and writes share one offset, writes
// past the end zero-fill the gap and Truncate leaves the offset alone.
type ByteFile struct {
	data   []byte
	offset int64
}

// NewByteFile returns a file holding a copy of data, positioned at 0.
func NewByteFile(data []byte) *ByteFile {
	return &ByteFile{data: bytes.Clone(data)}
}

func (f *ByteFile) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if f.offset >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n := copy(p, f.data[f.offset:])
	f.offset += int64(n)

	return n, nil
}

func (f *ByteFile) Write(p []byte) (int, error) {
	if end := f.offset + int64(len(p)); end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}

	n := copy(f.data[f.offset:], p)
	f.offset += int64(n)

	return n, nil
}

func (f *ByteFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekCurrent:
		offset += f.offset
	case io.SeekEnd:
		offset += int64(len(f.data))
	case io.SeekStart:
	default:
		return 0, errors.New("invalid whence")
	}

	if offset < 0 {
		return 0, errNegativeOffset
	}

	f.offset = offset

	return offset, nil
}

// Truncate changes the size of the file.
func (f *ByteFile) Truncate(size int64) error {
	if size < 0 {
		return errNegativeOffset
	}

	if size <= int64(len(f.data)) {
		f.data = f.data[:size]
		return nil
	}

	f.data = append(f.data, make([]byte, size-int64(len(f.data)))...)

	return nil
}

var byteContents = gen.SliceOf(gen.UInt8())

func bufferSubject() m.Subject {
	return m.Subject{
		Name:     "*bytes.Buffer",
		Ancestry: []string{contracts.KindReadWriter},
		Ops: &m.Ops{
			Open: func(c any) any { return bytes.NewBuffer(bytes.Clone(c.([]byte))) },
		},
		Bindings: m.Bindings{m.RoleSelf: byteContents},
	}
}

func readerSubject() m.Subject {
	return m.Subject{
		Name:     "*strings.Reader",
		Ancestry: []string{contracts.KindReadSeeker},
		Ops: &m.Ops{
			Open: func(c any) any { return strings.NewReader(c.(string)) },
		},
		Bindings: m.Bindings{m.RoleSelf: gen.AlphaString()},
	}
}

func byteFileSubject() m.Subject {
	return m.Subject{
		Name:     "ByteFile",
		Ancestry: []string{contracts.KindReadWriteSeeker},
		Ops: &m.Ops{
			Open: func(c any) any { return NewByteFile(c.([]byte)) },
		},
		Bindings: m.Bindings{m.RoleSelf: byteContents},
	}
}
