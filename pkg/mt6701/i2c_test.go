package mt6701

import (
	"errors"
	"testing"
)

type fakePort struct {
	high, low byte
	err       error
	lastReg   byte
}

func (p *fakePort) ReadReg(reg byte, buf []byte) error {
	p.lastReg = reg
	if p.err != nil {
		return p.err
	}
	buf[0] = p.high
	buf[1] = p.low
	return nil
}

func TestI2CAngleAssembly(t *testing.T) {
	cases := []struct {
		high, low byte
		want      int
	}{
		{0x00, 0x00, 0},
		{0xff, 0xfc, 16383},
		{0x80, 0x00, 8192},
		{0x00, 0x04, 1},
		{0x01, 0x00, 64},
	}
	for _, c := range cases {
		p := &fakePort{high: c.high, low: c.low}
		d := &i2cDevice{dev: p}
		got, err := d.ReadCount()
		if err != nil {
			t.Fatalf("read %02x %02x: %v", c.high, c.low, err)
		}
		if got != c.want {
			t.Errorf("read %02x %02x: count %d, want %d", c.high, c.low, got, c.want)
		}
		if p.lastReg != RegAngleH {
			t.Errorf("read started at register %#x, want ANGLE_H", p.lastReg)
		}
	}
}

func TestI2CReadErrorPropagates(t *testing.T) {
	d := &i2cDevice{dev: &fakePort{err: errBus}}
	if _, err := d.ReadCount(); !errors.Is(err, errBus) {
		t.Fatalf("expected wrapped bus error, got %v", err)
	}
}
