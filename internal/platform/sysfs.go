package platform

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/logger"
)

const defaultBusPath = "/sys/bus/acpi/devices"

// sysfsBus enumerates devices from a sysfs bus directory. Each device
// directory is named "<HID>:<instance>" and carries a "resources" file
// with one declared resource per line:
//
//	mem 0x00000000887f1000-0x00000000887f1fff
//	io 0x60-0x6f
//	irq 9
type sysfsBus struct {
	root string
}

// NewSysfsBus returns a Bus backed by the given sysfs directory, or the
// standard firmware bus path when root is empty.
func NewSysfsBus(root string) Bus {
	if root == "" {
		root = defaultBusPath
	}

	return &sysfsBus{root: root}
}

func (b *sysfsBus) Devices() ([]Device, error) {
	errFactory := errors.New()

	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, errFactory.Wrap(ErrScanBus, err)
	}

	devices := make([]Device, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		hid, _, found := strings.Cut(entry.Name(), ":")
		if !found {
			continue
		}

		path := filepath.Join(b.root, entry.Name())
		resources, err := readResources(filepath.Join(path, "resources"))
		if err != nil {
			// Devices without a readable resource list are still
			// enumerable; they just cannot be bound.
			logger.Debug().
				Str("device", entry.Name()).
				Err(err).
				Msg("Skipping resource list")
		}

		devices = append(devices, Device{
			HID:       hid,
			Path:      path,
			Resources: resources,
		})
	}

	return devices, nil
}

func readResources(path string) ([]Resource, error) {
	errFactory := errors.New()

	f, err := os.Open(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrReadResources, err)
	}
	defer f.Close()

	var resources []Resource
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		res, ok, err := parseResourceLine(line)
		if err != nil {
			return nil, err
		}
		if ok {
			resources = append(resources, res)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errFactory.Wrap(ErrReadResources, err)
	}

	return resources, nil
}

// parseResourceLine parses one resource declaration. Lines that are not
// resource declarations (e.g. "state = active") are skipped without
// error.
func parseResourceLine(line string) (Resource, bool, error) {
	errFactory := errors.New()

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Resource{}, false, nil
	}

	var resType ResourceType
	switch fields[0] {
	case "mem":
		resType = ResourceMem
	case "io":
		resType = ResourceIO
	case "irq":
		resType = ResourceIRQ
	default:
		return Resource{}, false, nil
	}

	if resType == ResourceIRQ {
		start, err := strconv.ParseUint(fields[1], 0, 64)
		if err != nil {
			return Resource{}, false, errFactory.WithData(ErrMalformedEntry, line)
		}

		return Resource{Type: ResourceIRQ, Start: start}, true, nil
	}

	first, last, found := strings.Cut(fields[1], "-")
	if !found {
		return Resource{}, false, errFactory.WithData(ErrMalformedEntry, line)
	}

	start, err := strconv.ParseUint(first, 0, 64)
	if err != nil {
		return Resource{}, false, errFactory.WithData(ErrMalformedEntry, line)
	}

	end, err := strconv.ParseUint(last, 0, 64)
	if err != nil {
		return Resource{}, false, errFactory.WithData(ErrMalformedEntry, line)
	}

	if end < start {
		return Resource{}, false, errFactory.WithData(ErrResourceOverflow, line)
	}

	return Resource{Type: resType, Start: start, Len: end - start + 1}, true, nil
}

// FindByHID returns the first enumerated device with the given hardware
// identifier.
func FindByHID(bus Bus, hid string) (Device, error) {
	errFactory := errors.New()

	devices, err := bus.Devices()
	if err != nil {
		return Device{}, err
	}

	for _, dev := range devices {
		if dev.HID == hid {
			return dev, nil
		}
	}

	return Device{}, errFactory.WithData(ErrDeviceNotOnBus, hid)
}
