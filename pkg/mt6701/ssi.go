package mt6701

import (
	"fmt"

	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"
)

// FieldStatus reports the magnet strength seen by the sensor.
type FieldStatus int

const (
	FieldNormal FieldStatus = iota
	FieldTooStrong
	FieldTooWeak
)

func (f FieldStatus) String() string {
	switch f {
	case FieldNormal:
		return "normal"
	case FieldTooStrong:
		return "too strong"
	case FieldTooWeak:
		return "too weak"
	default:
		return fmt.Sprintf("FieldStatus(%d)", int(f))
	}
}

// Status is the diagnostic nibble the encoder appends to every SSI
// frame.
type Status struct {
	Field      FieldStatus
	PushButton bool
	TrackLoss  bool
}

// txConn is the part of spi.Conn the frame reader uses.
type txConn interface {
	Tx(w, r []byte) error
}

// SSI reads the encoder over its SSI interface (SPI-compatible).  Each
// frame carries the angle plus the diagnostic Status, which the I2C
// interface does not expose.
type SSI struct {
	conn   txConn
	status Status
}

var _ Device = (*SSI)(nil)

// OpenSSI connects to the encoder on the given SPI device file, e.g.
// OpenSSI("/dev/spidev0.0").
func OpenSSI(deviceFile string) (*SSI, error) {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	p, err := spireg.Open(deviceFile)
	if err != nil {
		return nil, err
	}

	c, err := p.Connect(physic.MegaHertz*1, spi.Mode1, 8)
	if err != nil {
		return nil, err
	}

	return &SSI{conn: c}, nil
}

// NewSSI is a convenience wrapper combining OpenSSI and New.
func NewSSI(deviceFile string, cfg Config) (*MT6701, error) {
	dev, err := OpenSSI(deviceFile)
	if err != nil {
		return nil, err
	}
	return New(dev, cfg), nil
}

// ReadCount clocks one 24-bit frame: 14 angle bits, 4 status bits and a
// CRC-6 over the leading 18 bits.  A CRC mismatch counts as a failed
// read and feeds the caller's retry budget.
func (d *SSI) ReadCount() (int, error) {
	var w, r [3]byte
	if err := d.conn.Tx(w[:], r[:]); err != nil {
		return 0, err
	}
	frame := uint32(r[0])<<16 | uint32(r[1])<<8 | uint32(r[2])
	if crc6(frame>>6, 18) != byte(frame&0x3f) {
		return 0, fmt.Errorf("MT6701: SSI CRC mismatch on frame %06x", frame)
	}
	status := byte(frame>>6) & 0xf
	d.status = Status{
		Field:      FieldStatus(status & 0x3),
		PushButton: status&0x4 != 0,
		TrackLoss:  status&0x8 != 0,
	}
	return int(frame >> 10), nil
}

// Status returns the diagnostic nibble from the last good frame.
func (d *SSI) Status() Status {
	return d.status
}

// crc6 computes the remainder of data*x^6 modulo x^6 + x + 1, MSB
// first, over the low `bits` bits of data.
func crc6(data uint32, bits int) byte {
	const poly = 0x03
	var crc byte
	for i := bits - 1; i >= 0; i-- {
		bit := byte(data>>uint(i)) & 1
		if crc>>5 != bit {
			crc = (crc<<1 ^ poly) & 0x3f
		} else {
			crc = crc << 1 & 0x3f
		}
	}
	return crc
}
