// Package bus provides the address-dispatching data bus shared by the CPU
// and its peripherals. Peripherals register a closed address range; every
// read or write of an address inside a registered range is delivered to
// the owning peripheral.
package bus

import (
	"github.com/pkg/errors"

	"github.com/thelolagemann/go-z80/internal/types"
	"github.com/thelolagemann/go-z80/pkg/log"
)

// unmapped is the value returned for a read of an address that no
// peripheral claims.
const unmapped = 0xFF

type entry struct {
	first, last uint16
	peripheral  types.Peripheral
}

// Bus routes memory reads and writes to registered peripherals. The
// number of registrants is tiny, so lookup is a linear scan.
type Bus struct {
	entries []entry

	log log.Logger
}

// Opt configures a Bus.
type Opt func(*Bus)

// WithLogger sets the logger used for unmapped access reporting.
func WithLogger(l log.Logger) Opt {
	return func(b *Bus) {
		b.log = l
	}
}

// NewBus returns a new, empty bus.
func NewBus(opts ...Opt) *Bus {
	b := &Bus{
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds the peripheral to the bus under its declared address
// range. Registration fails if the range overlaps any existing
// registrant; overlap is a bring-up misconfiguration, not a runtime
// condition.
func (b *Bus) Register(p types.Peripheral) error {
	first, last := p.FirstAddress(), p.LastAddress()
	if first > last {
		return errors.Errorf("bus: inverted range [%04X, %04X]", first, last)
	}
	for _, e := range b.entries {
		if first <= e.last && last >= e.first {
			return errors.Errorf("bus: range [%04X, %04X] overlaps registered range [%04X, %04X]", first, last, e.first, e.last)
		}
	}
	b.entries = append(b.entries, entry{first: first, last: last, peripheral: p})
	return nil
}

// Read8 reads the byte at the given address. Reads outside any registered
// range return 0xFF.
func (b *Bus) Read8(address uint16) uint8 {
	for _, e := range b.entries {
		if address >= e.first && address <= e.last {
			return e.peripheral.Read(address)
		}
	}
	b.log.Debugf("bus: read of unmapped address %04X", address)
	return unmapped
}

// Write8 writes the byte at the given address. Writes outside any
// registered range are dropped.
func (b *Bus) Write8(address uint16, value uint8) {
	for _, e := range b.entries {
		if address >= e.first && address <= e.last {
			e.peripheral.Write(address, value)
			return
		}
	}
	b.log.Debugf("bus: dropped write of %02X to unmapped address %04X", value, address)
}

// Read16 reads a little-endian word starting at the given address.
// Address arithmetic wraps at 0xFFFF.
func (b *Bus) Read16(address uint16) uint16 {
	low := b.Read8(address)
	high := b.Read8(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// Write16 writes a little-endian word starting at the given address.
// Address arithmetic wraps at 0xFFFF.
func (b *Bus) Write16(address uint16, value uint16) {
	b.Write8(address, uint8(value))
	b.Write8(address+1, uint8(value>>8))
}
