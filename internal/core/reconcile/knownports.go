package reconcile

import "strings"

// knownService is one entry of the known-service registry used for step 4
// fuzzy enrichment: a port number and the name/image substrings that
// identify its usual owning container, most-preferred first.
type knownService struct {
	port  int
	names []string
}

// knownServices is the fixed known-service registry, spec.md §4.7 step 4's
// examples (WireGuard, OpenVPN) plus their common community container
// images.
var knownServices = []knownService{
	{port: 51820, names: []string{"wg-easy", "wireguard"}},
	{port: 51821, names: []string{"wg-easy", "wireguard"}},
	{port: 51822, names: []string{"wg-easy", "wireguard"}},
	{port: 1194, names: []string{"openvpn"}},
	{port: 1198, names: []string{"openvpn"}},
}

// lookupKnownService returns the registry entry for p, if any.
func lookupKnownService(p int) (knownService, bool) {
	for _, s := range knownServices {
		if s.port == p {
			return s, true
		}
	}
	return knownService{}, false
}

// matchingContainers returns every container whose display name or image
// contains any of svc's name substrings, case-insensitive.
func matchingContainers(svc knownService, candidates []containerInfo) []containerInfo {
	var matches []containerInfo
	for _, c := range candidates {
		if containerMatchesAny(c, svc.names) {
			matches = append(matches, c)
		}
	}
	return matches
}

func containerMatchesAny(c containerInfo, substrs []string) bool {
	name := strings.ToLower(c.Name)
	image := strings.ToLower(c.Image)
	for _, s := range substrs {
		s = strings.ToLower(s)
		if strings.Contains(name, s) || strings.Contains(image, s) {
			return true
		}
	}
	return false
}

// preferredMatch narrows matches to the registry's most-preferred name
// substring when more than one container matched, per spec.md §4.7 step 4
// ("prefer exact name matches before arbitrary"). Returns the single best
// match, or the zero value and false if no unambiguous winner exists.
func preferredMatch(svc knownService, matches []containerInfo) (containerInfo, bool) {
	if len(matches) == 1 {
		return matches[0], true
	}
	if len(matches) == 0 {
		return containerInfo{}, false
	}
	for _, preferred := range svc.names {
		var narrowed []containerInfo
		for _, c := range matches {
			if strings.Contains(strings.ToLower(c.Name), strings.ToLower(preferred)) {
				narrowed = append(narrowed, c)
			}
		}
		if len(narrowed) == 1 {
			return narrowed[0], true
		}
	}
	return containerInfo{}, false
}
