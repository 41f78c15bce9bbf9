package protocol

const crcPoly byte = 0x85

// CRC8 computes the appliance checksum: polynomial 0x85, MSB first, zero
// initial value, no reflection and no final xor.
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
