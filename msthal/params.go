package msthal

import (
	"fmt"
	"strconv"
)

/* ParseBus validates a user-supplied i2c bus number. The accepted form
 * is a plain decimal number between 0 and 255, anything trailing the
 * digits is rejected rather than silently dropped. */
func ParseBus(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: bus number not specified", ErrorInvalidArgument)
	}

	numLen := 0
	if value[0] == '+' || value[0] == '-' {
		numLen = 1
	}
	for numLen < len(value) && value[numLen] >= '0' && value[numLen] <= '9' {
		numLen++
	}

	bus, err := strconv.ParseInt(value[:numLen], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: could not convert bus value %q", ErrorInvalidArgument, value)
	}

	if bus < 0 || bus > 255 {
		return 0, fmt.Errorf("%w: bus value %d is out of range (0..255)", ErrorInvalidArgument, bus)
	}

	if numLen != len(value) {
		return 0, fmt.Errorf("%w: garbage after bus value %q", ErrorInvalidArgument, value)
	}

	return int(bus), nil
}
