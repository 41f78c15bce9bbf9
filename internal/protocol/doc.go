// Package protocol owns the appliance wire contract.
//
// Ownership boundary:
// - outbound IR transmit frame encoding
// - crc8 integrity trailer
// - acknowledgement frame parsing and validation
package protocol
