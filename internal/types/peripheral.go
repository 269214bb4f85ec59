package types

// Peripheral is a device that occupies a closed address range on the data
// bus, such as a RAM window or the APU register file. The bus delivers
// every read and write of an address inside [FirstAddress, LastAddress]
// to exactly one peripheral.
type Peripheral interface {
	// FirstAddress returns the first address occupied by the peripheral.
	FirstAddress() uint16
	// LastAddress returns the last address occupied by the peripheral,
	// inclusive.
	LastAddress() uint16
	// Read reads the byte at the given address. The address is always
	// within the peripheral's declared range.
	Read(address uint16) uint8
	// Write writes the byte at the given address. The address is always
	// within the peripheral's declared range.
	Write(address uint16, value uint8)
}
