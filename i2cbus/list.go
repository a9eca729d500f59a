package i2cbus

import (
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

type BusInfo struct {
	Number int
	Name   string
}

func List() ([]BusInfo, error) {
	adapters := "/sys/class/i2c-adapter"

	entries, err := os.ReadDir(adapters)
	if err != nil {
		return nil, err
	}

	var results []BusInfo
	for _, m := range entries {
		name := m.Name()

		if !strings.HasPrefix(name, "i2c-") {
			continue
		}

		number, err := strconv.ParseUint(name[4:], 10, 64)
		if err != nil {
			continue
		}

		info := BusInfo{Number: int(number)}

		if data, err := os.ReadFile(path.Join(adapters, name, "name")); err == nil {
			info.Name = strings.TrimSpace(string(data))
		}

		results = append(results, info)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Number < results[j].Number
	})

	return results, nil
}
