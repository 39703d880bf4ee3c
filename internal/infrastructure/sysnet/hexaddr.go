//go:build linux

package sysnet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	ipv4ByteLength      int = 4
	ipv6ByteLength      int = 16
	addressPartCount    int = 2
	byteReversalDivisor int = 2
	hexBase             int = 16
	portBitSize         int = 16
)

var (
	errInvalidAddressFormat = errors.New("invalid address format")
	errInvalidIPv4Length    = errors.New("invalid IPv4 length")
	errInvalidIPv6Length    = errors.New("invalid IPv6 length")
)

// parseHexAddress parses a kernel socket-table address field, formatted
// "<hex-ip>:<hex-port>" with the IP little-endian for IPv4.
//
// Params:
//   - hexAddr: the raw field, e.g. "0100007F:0050".
//   - v6: true when the field is from a *6 table.
//
// Returns:
//   - string: the decoded IP address.
//   - int: the decoded port.
//   - error: non-nil if the field is malformed.
func parseHexAddress(hexAddr string, v6 bool) (string, int, error) {
	parts := strings.Split(hexAddr, ":")
	if len(parts) != addressPartCount {
		return "", 0, fmt.Errorf("%w: %s", errInvalidAddressFormat, hexAddr)
	}

	port, err := parseHexPort(parts[1])
	if err != nil {
		return "", 0, err
	}

	ip, err := parseHexIP(parts[0], v6)
	if err != nil {
		return "", 0, err
	}

	return ip, port, nil
}

// parseHexPort parses a big-endian hex port field.
//
// Params:
//   - portHex: the hex-encoded port.
//
// Returns:
//   - int: the decoded port number.
//   - error: non-nil if portHex is not valid hex.
func parseHexPort(portHex string) (int, error) {
	v, err := strconv.ParseUint(portHex, hexBase, portBitSize)
	if err != nil {
		return 0, fmt.Errorf("parsing port %s: %w", portHex, err)
	}
	return int(v), nil
}

// parseHexIP decodes a hex-encoded kernel address into its string form.
//
// Params:
//   - ipHex: the hex-encoded address.
//   - v6: true when the address is 16 bytes (IPv6).
//
// Returns:
//   - string: the decoded IP address.
//   - error: non-nil on malformed hex or unexpected length.
func parseHexIP(ipHex string, v6 bool) (string, error) {
	raw, err := hex.DecodeString(ipHex)
	if err != nil {
		return "", fmt.Errorf("decoding IP %s: %w", ipHex, err)
	}

	if v6 {
		return parseIPv6Bytes(raw)
	}
	return parseIPv4Bytes(raw)
}

// parseIPv4Bytes reverses the kernel's little-endian IPv4 byte order and
// formats the result.
//
// Params:
//   - ipBytes: 4 raw address bytes.
//
// Returns:
//   - string: the dotted-quad address.
//   - error: non-nil if ipBytes is not 4 bytes long.
func parseIPv4Bytes(ipBytes []byte) (string, error) {
	if len(ipBytes) != ipv4ByteLength {
		return "", fmt.Errorf("%w: %d", errInvalidIPv4Length, len(ipBytes))
	}
	for i := range len(ipBytes) / byteReversalDivisor {
		j := len(ipBytes) - 1 - i
		ipBytes[i], ipBytes[j] = ipBytes[j], ipBytes[i]
	}
	return net.IP(ipBytes).String(), nil
}

// parseIPv6Bytes formats a 16-byte kernel address. The kernel writes an
// IPv6 address as four 32-bit words, each in little-endian byte order, so
// each 4-byte word is reversed independently to recover network byte
// order.
//
// Params:
//   - ipBytes: 16 raw address bytes.
//
// Returns:
//   - string: the IPv6 address.
//   - error: non-nil if ipBytes is not 16 bytes long.
func parseIPv6Bytes(ipBytes []byte) (string, error) {
	if len(ipBytes) != ipv6ByteLength {
		return "", fmt.Errorf("%w: %d", errInvalidIPv6Length, len(ipBytes))
	}
	const wordLen = 4
	out := make([]byte, 0, ipv6ByteLength)
	for w := 0; w < ipv6ByteLength; w += wordLen {
		word := ipBytes[w : w+wordLen]
		out = append(out, word[3], word[2], word[1], word[0])
	}
	return net.IP(out).String(), nil
}
