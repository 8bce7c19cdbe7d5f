// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
)

// Listener owns the UDP socket and drives the packet classifier, the
// quiet window, and presence advertisement, per spec §4.8.
type Listener struct {
	Dispatcher *Dispatcher
	Quiet      *QuietWindow
	Log        *log.Logger

	conn *net.UDPConn
}

// Serve opens the UDP socket on port and reads frames until stop is
// closed. It never returns an error on stop; errors from ListenUDP are
// returned immediately.
func (l *Listener) Serve(port uint16, stop <-chan struct{}) error {
	addr := &net.UDPAddr{Port: int(port)}
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return err
	}
	l.conn = conn
	defer conn.Close()

	go func() {
		<-stop
		conn.Close()
	}()

	buf := make([]byte, MinBufferSize)
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-stop:
				return nil
			default:
				continue
			}
		}
		l.handle(buf[:n], from)
	}
}

func (l *Listener) handle(frame []byte, from *net.UDPAddr) {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) == 0 {
		return
	}
	if trimmed[0] != '{' {
		reply := l.Dispatcher.DispatchText(string(trimmed))
		l.reply(reply, from)
		return
	}

	now := time.Now()
	if l.Quiet != nil && l.Quiet.Active(now) {
		// Copy into a single latest-wins deferred slot; no JSON parsing or
		// apply happens on this path while the bus driver holds quiet.
		cp := append([]byte(nil), trimmed...)
		l.Dispatcher.Pending.QueueDeferred(cp, true)
		return
	}
	reply := l.Dispatcher.Dispatch(trimmed)
	l.reply(reply, from)
}

func (l *Listener) reply(data []byte, to *net.UDPAddr) {
	if l.conn == nil {
		return
	}
	l.conn.WriteToUDP(data, to)
}

// Advertise broadcasts the discover JSON to 255.255.255.255:port: fast
// cadence (3s) for the first 3 announces, then slow cadence (15s), per
// spec §4.8. It runs until stop is closed.
func (l *Listener) Advertise(port uint16, stop <-chan struct{}) {
	broadcast := &net.UDPAddr{IP: net.IPv4bcast, Port: int(port)}
	conn, err := net.DialUDP("udp4", nil, broadcast)
	if err != nil {
		if l.Log != nil {
			l.Log.Error("presence advertise: dial failed", "err", err)
		}
		return
	}
	defer conn.Close()

	send := func() {
		payload := mustJSON(newDiscoverReply(port))
		conn.Write(payload)
		conn.Write(append([]byte("RGBDISC! "), payload...))
	}

	lastIP, _ := localAddr()
	fastCount := 0
	const fastTotal = 3
	interval := 3 * time.Second

	for {
		send()
		fastCount++
		if fastCount >= fastTotal {
			interval = 15 * time.Second
		}
		select {
		case <-stop:
			return
		case <-time.After(interval):
		}
		if ip, _ := localAddr(); ip != lastIP {
			lastIP = ip
			fastCount = 0
			interval = 3 * time.Second
		}
	}
}

// AnnounceMDNS additively publishes the same name/port via DNS-SD using
// github.com/brutella/dnssd, so LAN clients that support mDNS discovery
// never need to send the UDP discover probe at all. It adds no wire
// fields; it is a pure convenience layered on top of the mandatory UDP
// protocol.
func AnnounceMDNS(port uint16, log *log.Logger) {
	cfg := dnssd.Config{
		Name: DeviceName,
		Type: "_xboxrgb._udp",
		Port: int(port),
	}
	sv, err := dnssd.NewService(cfg)
	if err != nil {
		if log != nil {
			log.Error("mdns: failed to create service", "err", err)
		}
		return
	}
	rp, err := dnssd.NewResponder()
	if err != nil {
		if log != nil {
			log.Error("mdns: failed to create responder", "err", err)
		}
		return
	}
	if _, err := rp.Add(sv); err != nil {
		if log != nil {
			log.Error("mdns: failed to add service", "err", err)
		}
		return
	}
	go func() {
		if err := rp.Respond(context.Background()); err != nil {
			if log != nil {
				log.Error("mdns: responder error", "err", err)
			}
		}
	}()
}
