// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "strings"

// adapterSuffixes are stripped from adapter names before port matching.
var adapterSuffixes = []string{"Repository", "Adapter", "Impl"}

// stripSuffixes removes any number of known suffixes from a name.
func stripSuffixes(name string, suffixes []string) string {
	for changed := true; changed; {
		changed = false
		for _, s := range suffixes {
			if len(name) > len(s) && strings.HasSuffix(name, s) {
				name = strings.TrimSuffix(name, s)
				changed = true
			}
		}
	}
	return name
}

// AdapterMatchesPort reports whether an adapter name corresponds to a port
// name: the adapter contains the port name, or their suffix-stripped bases
// line up after a vendor prefix (PostgresUserRepository -> UserRepository,
// StripePaymentAdapter -> PaymentProcessor does not).
func AdapterMatchesPort(adapter, port string) bool {
	a := strings.ToLower(adapter)
	p := strings.ToLower(port)
	if p != "" && strings.Contains(a, p) {
		return true
	}

	aBase := strings.ToLower(stripSuffixes(adapter, adapterSuffixes))
	pBase := strings.ToLower(stripSuffixes(port, []string{"Port", "Interface", "Repository", "Service"}))
	if aBase == "" || pBase == "" {
		return false
	}
	return aBase == pBase || strings.HasSuffix(aBase, pBase)
}

// AdapterHasPort reports whether any port name matches the adapter.
func AdapterHasPort(adapter string, portNames []string) bool {
	for _, p := range portNames {
		if AdapterMatchesPort(adapter, p) {
			return true
		}
	}
	return false
}
