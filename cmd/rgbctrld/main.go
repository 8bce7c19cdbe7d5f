// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command rgbctrld is the XBOX RGB ring controller daemon: it wires the
// Config Store, Scheduler, Control Plane, and fallback HTTP surface
// together and drives them against real (or test) LED hardware.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/maruel/interrupt"

	"github.com/Darkone83/XBOX-RGB/controlplane"
	"github.com/Darkone83/XBOX-RGB/httpapi"
	"github.com/Darkone83/XBOX-RGB/internal/version"
	"github.com/Darkone83/XBOX-RGB/pixelsink"
	"github.com/Darkone83/XBOX-RGB/rgbconfig"
	"github.com/Darkone83/XBOX-RGB/scheduler"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "rgbctrld:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.help {
		return nil
	}

	logger := log.Default()
	logger.Info("starting", "version", version.String(), "udpPort", flags.udpPort)

	store, err := rgbconfig.NewStore(flags.stateDir, logger)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !store.Snapshot().ResumeOnBoot {
		if err := store.Reset(); err != nil {
			logger.Error("reset on boot failed", "err", err)
		}
	}

	cfg := store.Snapshot()
	var numPixels [pixelsink.NumChannels]int
	for i, c := range cfg.Count {
		numPixels[i] = int(c)
	}

	var sink pixelsink.Sink
	if flags.spiPort == ([4]string{}) {
		logger.Warn("no SPI ports configured, rendering into an in-memory sink")
		sink = &pixelsink.Recorder{}
	} else {
		hw, err := openHardwareSink(flags.spiPort, numPixels, logger)
		if err != nil {
			return fmt.Errorf("opening hardware sink: %w", err)
		}
		sink = hw
	}

	pending := &controlplane.Pending{}
	sched := scheduler.New(store, sink)
	sched.Pending = pending

	interrupt.HandleCtrlC()

	// stop fans out interrupt.Channel's single close into a struct{}
	// channel every component here can select on, regardless of
	// interrupt.Channel's own element type.
	stop := make(chan struct{})
	go func() {
		<-interrupt.Channel
		close(stop)
	}()

	go sched.Run(stop)

	dispatcher := &controlplane.Dispatcher{
		Store:   store,
		Pending: pending,
		PSK:     flags.psk,
		Port:    flags.udpPort,
		Log:     logger,
	}
	// CH5/CH6 are status-bar I2C telemetry readers; the core does not drive
	// them (spec Non-goal), it only accepts their enable flags and consumes
	// the quiet-window request the reader issues while it holds the bus. With
	// neither enabled there is no reader to request a quiet window, so the
	// UDP handler never defers JSON work.
	smbusEnabled := flags.smbus[0] != "" || flags.smbus[1] != ""
	var quiet *controlplane.QuietWindow
	if smbusEnabled {
		quiet = &controlplane.QuietWindow{}
		logger.Info("smbus status-bar reader enabled", "ch5", flags.smbus[0], "ch6", flags.smbus[1])
	}
	listener := &controlplane.Listener{Dispatcher: dispatcher, Quiet: quiet, Log: logger}

	go func() {
		if err := listener.Serve(flags.udpPort, stop); err != nil {
			logger.Error("udp listener stopped", "err", err)
		}
	}()
	go listener.Advertise(flags.udpPort, stop)
	controlplane.AnnounceMDNS(flags.udpPort, logger)

	mux := http.NewServeMux()
	api := &httpapi.API{Store: store, Base: flags.httpBase}
	api.Register(mux)

	httpServer := &http.Server{Addr: flags.httpAddr, Handler: mux}
	go func() {
		<-stop
		httpServer.Close()
	}()
	logger.Info("http fallback surface listening", "addr", flags.httpAddr, "base", flags.httpBase)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
