package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestCRC8KnownVectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want byte
	}{
		{name: "empty", in: nil, want: 0x00},
		{name: "zero", in: []byte{0x00}, want: 0x00},
		{name: "one", in: []byte{0x01}, want: 0x85},
		{name: "order high byte", in: []byte{0x11}, want: 0x66},
		{name: "ack order", in: []byte{0x11, 0x00}, want: 0xD1},
	}
	for _, tc := range cases {
		if got := CRC8(tc.in); got != tc.want {
			t.Fatalf("%s: crc8(% x)=0x%02x want 0x%02x", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestCRC8IsDeterministic(t *testing.T) {
	data := []byte{0x11, 0x00, 0x00, 0x03, 0xde, 0xad, 0xbe}
	first := CRC8(data)
	for i := 0; i < 4; i++ {
		if got := CRC8(data); got != first {
			t.Fatalf("crc8 changed between calls: 0x%02x != 0x%02x", got, first)
		}
	}
}

func TestCRC8DoesNotSplitLinearly(t *testing.T) {
	a := []byte{0x11}
	b := []byte{0x00}
	whole := CRC8(append(append([]byte{}, a...), b...))
	split := CRC8(a) ^ CRC8(b)
	if whole == split {
		t.Fatalf("expected crc8(a||b) != crc8(a)^crc8(b), both 0x%02x", whole)
	}
}

func TestEncodeGoldenFrame(t *testing.T) {
	frame, err := Encode([]byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := HexDump(frame), "aa0006110000020102bf"; got != want {
		t.Fatalf("frame mismatch: got=%s want=%s", got, want)
	}
}

func TestEncodeLayout(t *testing.T) {
	sizes := []int{0, 1, 2, 255, 256, 4096, MaxWaveformLen}
	for _, n := range sizes {
		waveform := make([]byte, n)
		for i := range waveform {
			waveform[i] = byte(i * 7)
		}
		frame, err := Encode(waveform)
		if err != nil {
			t.Fatalf("encode %d bytes: %v", n, err)
		}
		if len(frame) != n+8 {
			t.Fatalf("frame len for %d bytes: got %d want %d", n, len(frame), n+8)
		}
		if frame[0] != Header {
			t.Fatalf("header: got 0x%02x", frame[0])
		}
		if got := binary.BigEndian.Uint16(frame[1:3]); int(got) != n+4 {
			t.Fatalf("frame length field for %d bytes: got %d want %d", n, got, n+4)
		}
		if got := binary.BigEndian.Uint16(frame[3:5]); got != OrderIRTransmit {
			t.Fatalf("order: got 0x%04x", got)
		}
		if got := binary.BigEndian.Uint16(frame[5:7]); int(got) != n {
			t.Fatalf("payload length field: got %d want %d", got, n)
		}
		if !bytes.Equal(frame[7:7+n], waveform) {
			t.Fatalf("waveform bytes not carried verbatim for %d bytes", n)
		}
		if got, want := frame[len(frame)-1], CRC8(frame[3:len(frame)-1]); got != want {
			t.Fatalf("crc: got 0x%02x want 0x%02x", got, want)
		}
	}
}

func TestEncodeDoesNotAliasInput(t *testing.T) {
	waveform := []byte{0x10, 0x20}
	frame, err := Encode(waveform)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame[7] = 0xff
	if waveform[0] != 0x10 {
		t.Fatalf("encode output aliases the waveform")
	}
}

func TestEncodeRejectsOversizedWaveform(t *testing.T) {
	_, err := Encode(make([]byte, MaxWaveformLen+1))
	if !errors.Is(err, ErrWaveformTooLarge) {
		t.Fatalf("expected ErrWaveformTooLarge, got %v", err)
	}
}

func TestValidateAckAcceptsCanonicalAck(t *testing.T) {
	ack := []byte{0xAA, 0x00, 0x02, 0x11, 0x00, CRC8([]byte{0x11, 0x00})}
	if err := ValidateAck(ack); err != nil {
		t.Fatalf("expected valid ack, got %v", err)
	}
	if !bytes.Equal(EncodeAck(), ack) {
		t.Fatalf("EncodeAck mismatch: got % x want % x", EncodeAck(), ack)
	}
}

func TestValidateAckFieldOrder(t *testing.T) {
	good := EncodeAck()
	cases := []struct {
		name string
		ack  []byte
		want error
	}{
		{name: "header", ack: []byte{0x55, 0x00, 0x02, 0x11, 0x00, good[5]}, want: ErrInvalidHeader},
		{name: "header with garbage tail", ack: []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff}, want: ErrInvalidHeader},
		{name: "length", ack: []byte{0xAA, 0x00, 0x03, 0x11, 0x00, good[5]}, want: ErrInvalidLength},
		{name: "length beats bad order", ack: []byte{0xAA, 0x01, 0x02, 0x22, 0x00, 0x00}, want: ErrInvalidLength},
		{name: "order", ack: []byte{0xAA, 0x00, 0x02, 0x11, 0x01, good[5]}, want: ErrInvalidOrder},
		{name: "crc", ack: []byte{0xAA, 0x00, 0x02, 0x11, 0x00, good[5] ^ 0x01}, want: ErrInvalidCRC},
	}
	for _, tc := range cases {
		err := ValidateAck(tc.ack)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if !IsAckError(err) {
			t.Fatalf("%s: expected ack error classification for %v", tc.name, err)
		}
	}
}

func TestReadAckStopsAtFirstBadField(t *testing.T) {
	// Only the header byte is available; a bad header must fail without
	// attempting to read the rest.
	r := io.MultiReader(bytes.NewReader([]byte{0x00}), iotest.ErrReader(errors.New("read past header")))
	if err := ReadAck(r); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}

	r = io.MultiReader(bytes.NewReader([]byte{0xAA, 0x00, 0x09}), iotest.ErrReader(errors.New("read past length")))
	if err := ReadAck(r); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestReadAckTruncatedIsNotAckError(t *testing.T) {
	err := ValidateAck([]byte{0xAA, 0x00})
	if err == nil {
		t.Fatalf("expected error for truncated ack")
	}
	if IsAckError(err) {
		t.Fatalf("truncated read must not classify as ack error: %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}

	err = ValidateAck(nil)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on empty reply, got %v", err)
	}
}
