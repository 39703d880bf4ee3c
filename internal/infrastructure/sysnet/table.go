//go:build linux

package sysnet

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
)

// minFields is the minimum column count a data line must have to be
// considered well-formed; fields of interest are local address (1),
// state (3), and inode (9), all zero-indexed.
const minFields int = 10

const (
	localAddrField = 1
	stateField     = 3
	inodeField     = 9
)

// listenStateHex is the kernel's hex encoding for TCP_LISTEN.
const listenStateHex = "0A"

// readTable parses one /proc/net/{tcp,tcp6,udp,udp6} file into Listener
// rows. For TCP tables only rows in LISTEN state are kept; for UDP tables
// (which have no listen state) every row is kept and the caller applies
// the known-port allow-list filter.
//
// Params:
//   - path: the file to read.
//   - proto: "tcp" or "udp", recorded on each returned Listener.
//   - v6: true when path is a *6 table.
//
// Returns:
//   - []socket.Listener: the rows kept from this table.
//   - error: non-nil on read or parse failure; a missing file is not an error.
func readTable(path, proto string, v6 bool) ([]socket.Listener, error) {
	f, err := os.Open(path) // #nosec G304 - proc root is operator-controlled, not request input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var out []socket.Listener
	scanner := bufio.NewScanner(f)
	_ = scanner.Scan() // header line

	for scanner.Scan() {
		l, ok := parseTableLine(scanner.Text(), proto, v6)
		if ok {
			out = append(out, l)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	return out, nil
}

// parseTableLine parses a single data line from a kernel socket table.
//
// Params:
//   - line: the raw line.
//   - proto: "tcp" or "udp".
//   - v6: true when the line is from a *6 table.
//
// Returns:
//   - socket.Listener: the parsed row.
//   - bool: true if the line is a listening socket worth keeping.
func parseTableLine(line, proto string, v6 bool) (socket.Listener, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return socket.Listener{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < minFields {
		return socket.Listener{}, false
	}

	state := fields[stateField]
	if proto == "tcp" && state != listenStateHex {
		return socket.Listener{}, false
	}

	ip, port, err := parseHexAddress(fields[localAddrField], v6)
	if err != nil {
		return socket.Listener{}, false
	}
	if port == 0 {
		return socket.Listener{}, false
	}

	var inode uint64
	_, err = fmt.Sscanf(fields[inodeField], "%d", &inode)
	if err != nil {
		return socket.Listener{}, false
	}

	st := socket.StateListen
	if proto == "udp" {
		st = socket.StateUnconnected
	}

	return socket.Listener{
		Protocol: proto,
		HostIP:   ip,
		HostPort: port,
		Inode:    inode,
		State:    st,
	}, true
}
