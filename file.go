package facoding

import (
	"io"

	"github.com/pkg/errors"
)

// WriteToFile stops the encoder and writes its compressed bytes to w,
// preceded by a little-endian base-128 varint giving their length (the
// continuation bit 0x80 is set on every byte but the last). It returns
// the total number of bytes written, header included.
//
// This framing lives outside the interval machine entirely: it never
// touches base/length/value, and ReadFromFile strips it back off
// before handing the exact opaque compressed stream to StartDecoder.
func (a *ArithmeticCodec) WriteToFile(w io.Writer) (uint32, error) {
	codeBytes := a.StopEncoder()

	var header []byte
	nb := codeBytes
	for {
		b := byte(nb & 0x7F)
		nb >>= 7
		if nb > 0 {
			b |= 0x80
		}
		header = append(header, b)
		if nb == 0 {
			break
		}
	}

	n1, err := w.Write(header)
	if err != nil {
		return uint32(n1), errors.Wrap(err, "facoding: write compressed header")
	}
	n2, err := w.Write(a.codeBuffer[:codeBytes])
	if err != nil {
		return uint32(n1 + n2), errors.Wrap(err, "facoding: write compressed data")
	}
	return uint32(n1 + n2), nil
}

// ReadFromFile reads a varint-length-prefixed compressed payload
// written by WriteToFile into the codec's buffer and starts the
// decoder on it. The codec must already have a buffer large enough to
// hold the payload (see SetBuffer).
func (a *ArithmeticCodec) ReadFromFile(r io.Reader) error {
	var shift, codeBytes uint32
	var b [1]byte

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return errors.Wrap(err, "facoding: read compressed header")
		}
		codeBytes |= uint32(b[0]&0x7F) << shift
		shift += 7
		if b[0]&0x80 == 0 {
			break
		}
	}

	if codeBytes > a.bufferSize {
		fail("ArithmeticCodec.ReadFromFile", "code buffer overflow")
	}

	if _, err := io.ReadFull(r, a.codeBuffer[:codeBytes]); err != nil {
		return errors.Wrap(err, "facoding: read compressed data")
	}

	a.StartDecoder()
	return nil
}
