package protocol

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Encode builds the IR transmit frame for waveform:
//
//	[1B] header 0xAA
//	[2B] payload length (BE)
//	[2B] order 0x1100        \
//	[2B] waveform length (BE) | payload
//	[NB] waveform            /
//	[1B] crc8(payload)
func Encode(waveform []byte) ([]byte, error) {
	if len(waveform) > MaxWaveformLen {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrWaveformTooLarge, len(waveform), MaxWaveformLen)
	}
	payloadLen := payloadPrefixLen + len(waveform)

	buf := make([]byte, frameOverhead+payloadLen)
	buf[0] = Header
	binary.BigEndian.PutUint16(buf[1:3], uint16(payloadLen))

	payload := buf[3 : 3+payloadLen]
	binary.BigEndian.PutUint16(payload[0:2], OrderIRTransmit)
	binary.BigEndian.PutUint16(payload[2:4], uint16(len(waveform)))
	copy(payload[4:], waveform)

	buf[len(buf)-1] = CRC8(payload)
	return buf, nil
}

// EncodeAck returns the acknowledgement an appliance sends after accepting
// an IR transmit frame.
func EncodeAck() []byte {
	buf := make([]byte, AckLen)
	buf[0] = Header
	binary.BigEndian.PutUint16(buf[1:3], ackPayloadLen)
	binary.BigEndian.PutUint16(buf[3:5], OrderIRTransmit)
	buf[5] = CRC8(buf[3:5])
	return buf
}

// HexDump renders frame as lowercase hex without separators.
func HexDump(frame []byte) string {
	return hex.EncodeToString(frame)
}
