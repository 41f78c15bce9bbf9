package protocol

const (
	// Header starts every frame in both directions.
	Header byte = 0xAA
	// OrderIRTransmit is the order code for "emit this IR waveform".
	OrderIRTransmit uint16 = 0x1100

	// MaxWaveformLen is bounded by the 2-byte payload length field, minus
	// the order and ir length fields carried inside the payload.
	MaxWaveformLen = 0xFFFF - payloadPrefixLen

	// AckLen is header + length + order + crc.
	AckLen = 1 + 2 + 2 + 1

	ackPayloadLen    uint16 = 2
	payloadPrefixLen        = 2 + 2
	frameOverhead           = 1 + 2 + 1
)
