package autonomy

import (
	"fmt"
	"strings"
)

// PortType is the output port a device draws power from.
type PortType uint8

const (
	PortUSBA PortType = iota + 1
	PortUSBCPD
	PortDC12V
	PortAC220V
)

// Ports lists every known port type in catalog order.
var Ports = []PortType{PortUSBA, PortUSBCPD, PortDC12V, PortAC220V}

// String returns the port label as printed on the hardware.
func (p PortType) String() string {
	switch p {
	case PortUSBA:
		return "USB-A"
	case PortUSBCPD:
		return "USB-C PD"
	case PortDC12V:
		return "DC 12V"
	case PortAC220V:
		return "AC 220V"
	default:
		return "UNKNOWN"
	}
}

// ParsePortType accepts the hardware label, case-insensitively.
func ParsePortType(s string) (PortType, error) {
	for _, p := range Ports {
		if strings.EqualFold(p.String(), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown port type %q", s)
}

func (p PortType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid port type %d", p)
	}
	return []byte(p.String()), nil
}

func (p *PortType) UnmarshalText(text []byte) error {
	v, err := ParsePortType(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p PortType) Valid() bool {
	return p >= PortUSBA && p <= PortAC220V
}

// SourceType classifies a power source.
type SourceType uint8

const (
	SourceTypePowerBank SourceType = iota + 1
	SourceTypeStation
	SourceTypeUPS
	SourceTypeBattery
)

var SourceTypes = []SourceType{SourceTypePowerBank, SourceTypeStation, SourceTypeUPS, SourceTypeBattery}

// String returns the machine name of the source type.
func (t SourceType) String() string {
	switch t {
	case SourceTypePowerBank:
		return "POWERBANK"
	case SourceTypeStation:
		return "STATION"
	case SourceTypeUPS:
		return "UPS"
	case SourceTypeBattery:
		return "BATTERY"
	default:
		return "UNKNOWN"
	}
}

// Label returns the name shown in the catalog.
func (t SourceType) Label() string {
	switch t {
	case SourceTypePowerBank:
		return "Павербанк"
	case SourceTypeStation:
		return "Зарядна станція"
	case SourceTypeUPS:
		return "ДБЖ (UPS)"
	case SourceTypeBattery:
		return "Акумулятор"
	default:
		return ""
	}
}

// ParseSourceType accepts either the machine name or the catalog label.
func ParseSourceType(s string) (SourceType, error) {
	s = strings.TrimSpace(s)
	for _, t := range SourceTypes {
		if strings.EqualFold(t.String(), s) || t.Label() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown source type %q", s)
}

func (t SourceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid source type %d", t)
	}
	return []byte(t.String()), nil
}

func (t *SourceType) UnmarshalText(text []byte) error {
	v, err := ParseSourceType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t SourceType) Valid() bool {
	return t >= SourceTypePowerBank && t <= SourceTypeBattery
}

// DeviceType tells whether a device carries its own battery.
type DeviceType uint8

const (
	// DeviceTypeChargeable devices hold a battery that is credited to the global energy pool.
	DeviceTypeChargeable DeviceType = iota + 1
	// DeviceTypeConstant devices only draw power while connected.
	DeviceTypeConstant
)

var DeviceTypes = []DeviceType{DeviceTypeChargeable, DeviceTypeConstant}

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeChargeable:
		return "CHARGEABLE"
	case DeviceTypeConstant:
		return "CONSTANT"
	default:
		return "UNKNOWN"
	}
}

func (t DeviceType) Label() string {
	switch t {
	case DeviceTypeChargeable:
		return "Заряджання батареї"
	case DeviceTypeConstant:
		return "Постійне навантаження"
	default:
		return ""
	}
}

// ParseDeviceType accepts either the machine name or the catalog label.
func ParseDeviceType(s string) (DeviceType, error) {
	s = strings.TrimSpace(s)
	for _, t := range DeviceTypes {
		if strings.EqualFold(t.String(), s) || t.Label() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown device type %q", s)
}

func (t DeviceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid device type %d", t)
	}
	return []byte(t.String()), nil
}

func (t *DeviceType) UnmarshalText(text []byte) error {
	v, err := ParseDeviceType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t DeviceType) Valid() bool {
	return t == DeviceTypeChargeable || t == DeviceTypeConstant
}
