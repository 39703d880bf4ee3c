//go:build linux

package sysnet

import (
	"errors"
	"path/filepath"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
)

// errNoProcRoot is returned when no candidate proc root exposes a readable
// net/tcp table.
var errNoProcRoot = errors.New("no usable proc root found for kernel socket tables")

// Enumerator reads the kernel's listening-socket tables under a resolved
// proc root.
type Enumerator struct {
	procRoot string
}

// NewEnumerator resolves a proc root (probing candidates if override is
// empty) and returns an Enumerator bound to it.
//
// Params:
//   - override: an operator-supplied proc root override.
//
// Returns:
//   - *Enumerator: ready to enumerate listening sockets.
//   - error: non-nil if no proc root candidate is usable.
func NewEnumerator(override string) (*Enumerator, error) {
	root, err := DetectProcRoot(override)
	if err != nil {
		return nil, err
	}
	return &Enumerator{procRoot: root}, nil
}

// ProcRoot returns the proc root this enumerator resolved to.
//
// Returns:
//   - string: the resolved proc root path.
func (e *Enumerator) ProcRoot() string {
	return e.procRoot
}

// EnumerateListeners reads every kernel socket table and returns the
// listening TCP sockets plus, depending on includeUDP, either every UDP
// socket or only the ones on the known-UDP allow-list.
//
// Params:
//   - includeUDP: when false, UDP rows are filtered to config.KnownUDPPorts().
//
// Returns:
//   - []socket.Listener: the combined, filtered rows.
//   - error: non-nil if a table read failed for a reason other than the
//     file being absent.
func (e *Enumerator) EnumerateListeners(includeUDP bool) ([]socket.Listener, error) {
	var out []socket.Listener

	tcp4, err := readTable(filepath.Join(e.procRoot, "net", "tcp"), "tcp", false)
	if err != nil {
		return nil, err
	}
	out = append(out, tcp4...)

	tcp6, err := readTable(filepath.Join(e.procRoot, "net", "tcp6"), "tcp", true)
	if err != nil {
		return nil, err
	}
	out = append(out, tcp6...)

	udp4, err := readTable(filepath.Join(e.procRoot, "net", "udp"), "udp", false)
	if err != nil {
		return nil, err
	}
	udp6, err := readTable(filepath.Join(e.procRoot, "net", "udp6"), "udp", true)
	if err != nil {
		return nil, err
	}

	for _, u := range append(udp4, udp6...) {
		if includeUDP || config.IsKnownUDPPort(u.HostPort) {
			out = append(out, u)
		}
	}

	return out, nil
}
