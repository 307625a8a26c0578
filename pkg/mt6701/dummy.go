package mt6701

import "time"

// Dummy returns a Device that synthesizes a steady rotation at the
// given RPM, for running the demo binaries without hardware.
func Dummy(rpm float64) Device {
	return &dummyDevice{rpm: rpm, start: time.Now()}
}

type dummyDevice struct {
	rpm   float64
	start time.Time
}

func (d *dummyDevice) ReadCount() (int, error) {
	turns := d.rpm * time.Since(d.start).Minutes()
	count := int(turns*CountsPerRevolution) % CountsPerRevolution
	if count < 0 {
		count += CountsPerRevolution
	}
	return count, nil
}
