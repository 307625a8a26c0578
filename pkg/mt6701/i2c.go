package mt6701

import (
	"fmt"

	"golang.org/x/exp/io/i2c"
)

const (
	// The 14-bit angle is split over two registers: the high byte in
	// ANGLE_H and the top six bits of ANGLE_L.
	RegAngleH = 0x03
	RegAngleL = 0x04
)

// port is the register-level bus access the I2C transport needs.
type port interface {
	ReadReg(reg byte, buf []byte) error
}

type i2cDevice struct {
	dev port
}

// NewI2C opens the encoder on the given I2C bus device file, e.g.
// NewI2C("/dev/i2c-1", mt6701.DefaultAddr, mt6701.Config{}).
func NewI2C(deviceFile string, addr int, cfg Config) (*MT6701, error) {
	dev, err := i2c.Open(&i2c.Devfs{Dev: deviceFile}, addr)
	if err != nil {
		return nil, err
	}
	return New(&i2cDevice{dev: dev}, cfg), nil
}

// ReadCount reads ANGLE_H and ANGLE_L in one burst and assembles the
// 14-bit count.
func (d *i2cDevice) ReadCount() (int, error) {
	var buf [2]byte
	if err := d.dev.ReadReg(RegAngleH, buf[:]); err != nil {
		return 0, fmt.Errorf("MT6701: angle read: %w", err)
	}
	return int(buf[0])<<6 | int(buf[1])>>2, nil
}
