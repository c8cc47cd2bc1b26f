package hardware

// ConnectionKind represents how a printer is physically attached
type ConnectionKind string

const (
	ConnectionNetwork ConnectionKind = "network"
	ConnectionSerial  ConnectionKind = "serial"
	ConnectionUSB     ConnectionKind = "usb"
)

// IsValid checks if the connection kind is valid
func (c ConnectionKind) IsValid() bool {
	switch c {
	case ConnectionNetwork, ConnectionSerial, ConnectionUSB:
		return true
	}
	return false
}

// String returns the string representation
func (c ConnectionKind) String() string {
	return string(c)
}

// IsLocal reports whether the printer is reached through the local print
// agent instead of a direct TCP connection.
func (c ConnectionKind) IsLocal() bool {
	return c == ConnectionSerial || c == ConnectionUSB
}

// StationKind classifies a kitchen display station
type StationKind string

const (
	StationHot  StationKind = "hot"
	StationCold StationKind = "cold"
	StationExpo StationKind = "expo"
)

// IsValid checks if the station kind is valid
func (s StationKind) IsValid() bool {
	switch s {
	case StationHot, StationCold, StationExpo:
		return true
	}
	return false
}

// String returns the string representation
func (s StationKind) String() string {
	return string(s)
}
