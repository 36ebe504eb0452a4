package contracts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/leanovate/gopter/gen"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Stream contract names. The type under test is a content value; Open turns
// it into a fresh stream for every trial.
const (
	ContractReaderStream        = "ReaderStream"
	ContractWriterStream        = "WriterStream"
	ContractSeekerStream        = "SeekerStream"
	ContractBufferStream        = "BufferStream"
	ContractReadWriteSeekStream = "ReadWriteSeekStream"
)

// Stream kinds registered by default.
const (
	KindReader          = "io.Reader"
	KindReadSeeker      = "io.ReadSeeker"
	KindReadWriter      = "io.ReadWriter"
	KindReadWriteSeeker = "io.ReadWriteSeeker"
)

type truncater interface {
	Truncate(size int64) error
}

// as asserts that a stream implements T.
func as[T any](t *m.Trial, stream any) (T, error) {
	v, ok := stream.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %T does not implement %s", t.Check.ID(), stream, reflect.TypeFor[T]())
	}

	return v, nil
}

func open(t *m.Trial) any {
	return t.Ops().Open(t.Arg(0))
}

// contents reads a fresh stream over the trial's content to the end.
func contents(t *m.Trial) ([]byte, error) {
	r, err := as[io.Reader](t, open(t))
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}

func drawBytes(t *m.Trial) ([]byte, error) {
	d, err := t.Drawer()
	if err != nil {
		return nil, err
	}

	v, err := d.Draw(gen.SliceOf(gen.UInt8()))
	if err != nil {
		return nil, err
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("drawn %T, want []byte", v)
	}

	return b, nil
}

// expectEOF reads once more and wants nothing but io.EOF.
func expectEOF(t *m.Trial, r io.Reader) error {
	n, err := r.Read(make([]byte, 8))
	return t.Expect(n == 0 && errors.Is(err, io.EOF), "read past the end gave %d bytes, %v", n, err)
}

func expectOffset(t *m.Trial, s io.Seeker, want int64) error {
	got, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return t.Expect(false, "tell: %v", err)
	}

	return t.Expect(got == want, "offset %d, want %d", got, want)
}

func streamParams() []m.Param {
	return append(self("content"), data())
}

func streams() []m.Contract {
	return []m.Contract{
		{
			Name:  ContractReaderStream,
			Doc:   "Open(content) is an io.Reader that yields its bytes and then io.EOF.",
			Needs: []m.Op{"Open"},
			Checks: []m.Check{
				{Number: 4010, Name: "read_all_then_eof", Params: self("content"), Law: func(t *m.Trial) error {
					r, err := as[io.Reader](t, open(t))
					if err != nil {
						return err
					}

					if _, err := io.ReadAll(r); err != nil {
						return t.Expect(false, "read all: %v", err)
					}

					if err := expectEOF(t, r); err != nil {
						return err
					}

					return expectEOF(t, r)
				}},
				{Number: 4020, Name: "read_zero_length", Params: self("content"), Law: func(t *m.Trial) error {
					r, err := as[io.Reader](t, open(t))
					if err != nil {
						return err
					}

					n, err := r.Read(nil)

					return t.Expect(n == 0 && (err == nil || errors.Is(err, io.EOF)), "empty read gave %d bytes, %v", n, err)
				}},
				{Number: 4030, Name: "read_limited_matches_read_all", Params: streamParams(), Law: func(t *m.Trial) error {
					size, err := drawInt(t, 1, 16)
					if err != nil {
						return err
					}

					want, err := contents(t)
					if err != nil {
						return err
					}

					r, err := as[io.Reader](t, open(t))
					if err != nil {
						return err
					}

					var got []byte

					buf := make([]byte, size)
					for calls := 0; ; calls++ {
						if calls > 4*len(want)+8 {
							return t.Expect(false, "no progress after %d reads", calls)
						}

						n, err := r.Read(buf)
						if n < 0 || n > size {
							return t.Expect(false, "read of %d returned %d", size, n)
						}

						got = append(got, buf[:n]...)

						if errors.Is(err, io.EOF) {
							break
						}

						if err != nil {
							return t.Expect(false, "read: %v", err)
						}
					}

					return t.Expect(bytes.Equal(got, want), "read %q in chunks of %d, read all gave %q", got, size, want)
				}},
			},
		},
		{
			Name:  ContractWriterStream,
			Doc:   "Open(content) is an io.Writer that reports what it wrote.",
			Needs: []m.Op{"Open"},
			Checks: []m.Check{
				{Number: 4110, Name: "write_reports_length", Params: streamParams(), Law: func(t *m.Trial) error {
					b, err := drawBytes(t)
					if err != nil {
						return err
					}

					w, err := as[io.Writer](t, open(t))
					if err != nil {
						return err
					}

					n, err := w.Write(b)
					if err != nil {
						return t.Expect(n >= 0 && n < len(b), "short write of %d/%d must fail, got %v", n, len(b), err)
					}

					return t.Expect(n == len(b), "wrote %d of %d bytes without an error", n, len(b))
				}},
				{Number: 4120, Name: "write_empty", Params: self("content"), Law: func(t *m.Trial) error {
					w, err := as[io.Writer](t, open(t))
					if err != nil {
						return err
					}

					n, err := w.Write(nil)

					return t.Expect(n == 0 && err == nil, "empty write gave %d, %v", n, err)
				}},
			},
		},
		{
			Name:    ContractBufferStream,
			Doc:     "A FIFO: writes append after the unread bytes.",
			Parents: []string{ContractReaderStream, ContractWriterStream},
			Checks: []m.Check{
				{Number: 4210, Name: "write_then_read_round_trip", Params: streamParams(), Law: func(t *m.Trial) error {
					b, err := drawBytes(t)
					if err != nil {
						return err
					}

					before, err := contents(t)
					if err != nil {
						return err
					}

					rw, err := as[io.ReadWriter](t, open(t))
					if err != nil {
						return err
					}

					if _, err := rw.Write(b); err != nil {
						return t.Expect(false, "write: %v", err)
					}

					got, err := io.ReadAll(rw)
					if err != nil {
						return t.Expect(false, "read all: %v", err)
					}

					want := append(bytes.Clone(before), b...)

					return t.Expect(bytes.Equal(got, want), "read back %q, want %q", got, want)
				}},
				{Number: 4220, Name: "read_consumes_before_write", Params: streamParams(), Law: func(t *m.Trial) error {
					before, err := contents(t)
					if err != nil {
						return err
					}

					k, err := drawInt(t, 0, len(before))
					if err != nil {
						return err
					}

					b, err := drawBytes(t)
					if err != nil {
						return err
					}

					rw, err := as[io.ReadWriter](t, open(t))
					if err != nil {
						return err
					}

					if _, err := io.ReadFull(rw, make([]byte, k)); err != nil {
						return t.Expect(false, "read %d: %v", k, err)
					}

					if _, err := rw.Write(b); err != nil {
						return t.Expect(false, "write: %v", err)
					}

					got, err := io.ReadAll(rw)
					if err != nil {
						return t.Expect(false, "read all: %v", err)
					}

					want := append(bytes.Clone(before[k:]), b...)

					return t.Expect(bytes.Equal(got, want), "read back %q, want %q", got, want)
				}},
			},
		},
		{
			Name:    ContractSeekerStream,
			Doc:     "Seeking is consistent with the bytes read.",
			Parents: []string{ContractReaderStream},
			Checks: []m.Check{
				{Number: 4310, Name: "tell_follows_reads", Params: streamParams(), Law: func(t *m.Trial) error {
					n, err := drawInt(t, 0, 16)
					if err != nil {
						return err
					}

					rs, err := as[io.ReadSeeker](t, open(t))
					if err != nil {
						return err
					}

					if err := expectOffset(t, rs, 0); err != nil {
						return err
					}

					k, err := io.ReadFull(rs, make([]byte, n))
					if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
						return t.Expect(false, "read %d: %v", n, err)
					}

					return expectOffset(t, rs, int64(k))
				}},
				{Number: 4320, Name: "seek_end_is_size", Params: self("content"), Law: func(t *m.Trial) error {
					all, err := contents(t)
					if err != nil {
						return err
					}

					rs, err := as[io.ReadSeeker](t, open(t))
					if err != nil {
						return err
					}

					size, err := rs.Seek(0, io.SeekEnd)
					if err != nil {
						return t.Expect(false, "seek end: %v", err)
					}

					if err := t.Expect(size == int64(len(all)), "end at %d, size %d", size, len(all)); err != nil {
						return err
					}

					return expectEOF(t, rs)
				}},
				{Number: 4330, Name: "seek_start_then_read", Params: streamParams(), Law: func(t *m.Trial) error {
					all, err := contents(t)
					if err != nil {
						return err
					}

					p, err := drawInt(t, 0, len(all))
					if err != nil {
						return err
					}

					rs, err := as[io.ReadSeeker](t, open(t))
					if err != nil {
						return err
					}

					pos, err := rs.Seek(int64(p), io.SeekStart)
					if err != nil || pos != int64(p) {
						return t.Expect(false, "seek %d gave %d, %v", p, pos, err)
					}

					rest, err := io.ReadAll(rs)
					if err != nil {
						return t.Expect(false, "read all: %v", err)
					}

					return t.Expect(bytes.Equal(rest, all[p:]), "read %q from %d, want %q", rest, p, all[p:])
				}},
				{Number: 4340, Name: "seek_before_start_fails", Params: self("content"), Law: func(t *m.Trial) error {
					s, err := as[io.Seeker](t, open(t))
					if err != nil {
						return err
					}

					_, err = s.Seek(-1, io.SeekStart)

					return t.Expect(err != nil, "seek to -1 succeeded")
				}},
				{Number: 4350, Name: "seek_past_end_reads_nothing", Params: streamParams(), Law: func(t *m.Trial) error {
					all, err := contents(t)
					if err != nil {
						return err
					}

					k, err := drawInt(t, 1, 8)
					if err != nil {
						return err
					}

					rs, err := as[io.ReadSeeker](t, open(t))
					if err != nil {
						return err
					}

					if _, err := rs.Seek(int64(len(all)+k), io.SeekStart); err != nil {
						return t.Expect(false, "seek past the end: %v", err)
					}

					return expectEOF(t, rs)
				}},
			},
		},
		{
			Name:    ContractReadWriteSeekStream,
			Doc:     "Storage semantics: writes overwrite at the offset, like a file.",
			Parents: []string{ContractSeekerStream, ContractWriterStream},
			Checks: []m.Check{
				{Number: 4410, Name: "read_seek_write", Params: streamParams(), Law: func(t *m.Trial) error {
					original, err := contents(t)
					if err != nil {
						return err
					}

					n, err := drawInt(t, 0, 64)
					if err != nil {
						return err
					}

					b, err := drawBytes(t)
					if err != nil {
						return err
					}

					position := 0
					if len(original) > 0 {
						position = n % len(original)
					}

					rws, err := as[io.ReadWriteSeeker](t, open(t))
					if err != nil {
						return err
					}

					if _, err := rws.Seek(int64(position), io.SeekStart); err != nil {
						return t.Expect(false, "seek %d: %v", position, err)
					}

					written, err := rws.Write(b)
					if err != nil || written != len(b) {
						return t.Expect(false, "wrote %d of %d bytes: %v", written, len(b), err)
					}

					want := append(bytes.Clone(original[:position]), b...)
					if end := position + written; end < len(original) {
						want = append(want, original[end:]...)
					}

					if _, err := rws.Seek(0, io.SeekStart); err != nil {
						return t.Expect(false, "seek start: %v", err)
					}

					got, err := io.ReadAll(rws)
					if err != nil {
						return t.Expect(false, "read all: %v", err)
					}

					return t.Expect(bytes.Equal(got, want), "after writing %q at %d read %q, want %q", b, position, got, want)
				}},
				{Number: 4420, Name: "write_advances_offset", Params: streamParams(), Law: func(t *m.Trial) error {
					b, err := drawBytes(t)
					if err != nil {
						return err
					}

					ws, err := as[io.WriteSeeker](t, open(t))
					if err != nil {
						return err
					}

					if _, err := ws.Write(b); err != nil {
						return t.Expect(false, "write: %v", err)
					}

					return expectOffset(t, ws, int64(len(b)))
				}},
				{Number: 4430, Name: "truncate_keeps_offset", Params: streamParams(), Law: func(t *m.Trial) error {
					all, err := contents(t)
					if err != nil {
						return err
					}

					p, err := drawInt(t, 0, len(all))
					if err != nil {
						return err
					}

					size, err := drawInt(t, 0, 2*len(all)+4)
					if err != nil {
						return err
					}

					stream := open(t)

					s, err := as[io.Seeker](t, stream)
					if err != nil {
						return err
					}

					tr, err := as[truncater](t, stream)
					if err != nil {
						return err
					}

					if _, err := s.Seek(int64(p), io.SeekStart); err != nil {
						return t.Expect(false, "seek %d: %v", p, err)
					}

					if err := tr.Truncate(int64(size)); err != nil {
						return t.Expect(false, "truncate %d: %v", size, err)
					}

					if err := expectOffset(t, s, int64(p)); err != nil {
						return err
					}

					end, err := s.Seek(0, io.SeekEnd)

					return t.Expect(err == nil && end == int64(size), "size %d after truncate to %d, %v", end, size, err)
				}},
			},
		},
	}
}
