package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// ReadAck reads one acknowledgement frame from r field by field. Each field
// is validated before the next is read, so a short or malformed reply fails
// on the first bad field without waiting for bytes the appliance never sent.
//
// Reader failures are returned wrapped and are not ack errors; use
// IsAckError to tell the two apart.
func ReadAck(r io.Reader) error {
	var header [1]byte
	if err := readField(r, "header", header[:]); err != nil {
		return err
	}
	if header[0] != Header {
		return fmt.Errorf("%w: got 0x%02x", ErrInvalidHeader, header[0])
	}

	var length [2]byte
	if err := readField(r, "length", length[:]); err != nil {
		return err
	}
	if n := binary.BigEndian.Uint16(length[:]); n != ackPayloadLen {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}

	var order [2]byte
	if err := readField(r, "order", order[:]); err != nil {
		return err
	}
	if o := binary.BigEndian.Uint16(order[:]); o != OrderIRTransmit {
		return fmt.Errorf("%w: got 0x%04x", ErrInvalidOrder, o)
	}

	var crc [1]byte
	if err := readField(r, "crc", crc[:]); err != nil {
		return err
	}
	if want := CRC8(order[:]); crc[0] != want {
		return fmt.Errorf("%w: got 0x%02x want 0x%02x", ErrInvalidCRC, crc[0], want)
	}
	return nil
}

// ValidateAck validates an acknowledgement held in memory.
func ValidateAck(b []byte) error {
	return ReadAck(bytes.NewReader(b))
}

func readField(r io.Reader, name string, dst []byte) error {
	if _, err := io.ReadFull(r, dst); err != nil {
		return fmt.Errorf("protocol: read ack %s: %w", name, err)
	}
	return nil
}
