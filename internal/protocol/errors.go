package protocol

import "errors"

var (
	ErrWaveformTooLarge = errors.New("protocol: waveform too large")

	ErrInvalidHeader = errors.New("protocol: invalid ack header")
	ErrInvalidLength = errors.New("protocol: invalid ack length")
	ErrInvalidOrder  = errors.New("protocol: invalid ack order")
	ErrInvalidCRC    = errors.New("protocol: invalid ack crc")
)

// IsAckError reports whether err came from acknowledgement validation
// rather than from the underlying reader.
func IsAckError(err error) bool {
	return errors.Is(err, ErrInvalidHeader) ||
		errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrInvalidCRC)
}
