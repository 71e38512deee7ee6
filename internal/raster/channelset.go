// Package raster provides channel raster loading, selection, and mask output.
package raster

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrChannelNotFound indicates that neither the reporter channel nor the
// fallback channel is present in a channel set.
var ErrChannelNotFound = errors.New("reporter channel not found")

// Channel is one raster of a multi-channel acquisition.
type Channel struct {
	Index int      // channel index as reported by the loader
	Name  string   // loader-assigned name, suffixed with the channel index
	Mat   gocv.Mat // intensity raster, single channel (8 or 16 bit)
}

// ChannelSet is the ordered collection of channel rasters produced by the
// loader for one input file. It is consumed once per image and then closed.
type ChannelSet struct {
	Path     string
	Channels []Channel
}

// Select returns the channel carrying the reporter signal: the channel with
// the preferred index if present, otherwise the fallback index. Selection is
// read-only; the returned channel's raster is still owned by the set.
func (cs *ChannelSet) Select(preferred, fallback int) (Channel, error) {
	for _, ch := range cs.Channels {
		if ch.Index == preferred {
			return ch, nil
		}
	}
	for _, ch := range cs.Channels {
		if ch.Index == fallback {
			return ch, nil
		}
	}
	return Channel{}, fmt.Errorf("%s: no channel %d or %d: %w",
		cs.Path, preferred, fallback, ErrChannelNotFound)
}

// Close releases every raster in the set.
func (cs *ChannelSet) Close() {
	for i := range cs.Channels {
		if !cs.Channels[i].Mat.Empty() {
			cs.Channels[i].Mat.Close()
		}
	}
	cs.Channels = nil
}
