// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"fmt"
	"net"

	"github.com/Darkone83/XBOX-RGB/internal/version"
)

// DeviceName is the fixed product name advertised in discover replies.
const DeviceName = "XBOX RGB"

type discoverReply struct {
	OK   bool   `json:"ok"`
	Op   string `json:"op"`
	Name string `json:"name"`
	Ver  string `json:"ver"`
	Port uint16 `json:"port"`
	IP   string `json:"ip"`
	MAC  string `json:"mac"`
}

func newDiscoverReply(port uint16) discoverReply {
	ip, mac := localAddr()
	return discoverReply{
		OK:   true,
		Op:   "discover",
		Name: DeviceName,
		Ver:  version.String(),
		Port: port,
		IP:   ip,
		MAC:  mac,
	}
}

// localAddr picks the first non-loopback, active interface with both an
// IPv4 address and a hardware address, formatting the MAC as
// "AA:BB:CC:DD:EE:FF" per spec §6.
func localAddr() (ip, mac string) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "0.0.0.0", "00:00:00:00:00:00"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			v4 := ipNet.IP.To4()
			if v4 == nil {
				continue
			}
			return v4.String(), formatMAC(iface.HardwareAddr)
		}
	}
	return "0.0.0.0", "00:00:00:00:00:00"
}

func formatMAC(hw net.HardwareAddr) string {
	if len(hw) != 6 {
		return "00:00:00:00:00:00"
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", hw[0], hw[1], hw[2], hw[3], hw[4], hw[5])
}
