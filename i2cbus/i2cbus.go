package i2cbus

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	I2C_SLAVE = 0x0703
)

type Device struct {
	path string
	fd   int
	addr uint8
}

func Open(bus int, addr uint8) (*Device, error) {
	d := &Device{
		path: fmt.Sprintf("/dev/i2c-%d", bus),
		fd:   -1,
		addr: addr,
	}

	err := d.open()
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) open() error {
	fd, err := unix.Open(d.path, unix.O_RDWR, 0600)
	if err != nil {
		return err
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), I2C_SLAVE, uintptr(d.addr))
	if errno != 0 {
		unix.Close(fd)
		return fmt.Errorf("could not select address %#02x: %w", d.addr, errno)
	}

	d.fd = fd
	return nil
}

func (d *Device) Write(p []byte) (int, error) {
	return unix.Write(d.fd, p)
}

func (d *Device) Read(p []byte) (int, error) {
	return unix.Read(d.fd, p)
}

func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}

	fd := d.fd
	d.fd = -1

	return unix.Close(fd)
}
