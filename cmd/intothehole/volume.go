package main

import (
	"context"
	"math"
	"strconv"

	"github.com/lixenwraith/into-the-hole/audio"
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/store"
)

const volumePref = "volume"

// stepVolume moves the master volume one step in dir and returns the new level
func stepVolume(sounds *audio.SoundManager, dir float64) float64 {
	v := sounds.Volume() + dir*parameter.VolumeStep
	// keep levels on the step grid so repeated presses land on 0 and 1 exactly
	v = math.Round(v/parameter.VolumeStep) * parameter.VolumeStep
	sounds.SetVolume(v)
	return sounds.Volume()
}

// loadVolume applies a stored volume preference, reporting whether one was found
func loadVolume(ctx context.Context, db *store.Store, sounds *audio.SoundManager) bool {
	raw, ok, err := db.GetPref(ctx, volumePref)
	if err != nil || !ok {
		return false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	sounds.SetVolume(v)
	return true
}

func saveVolume(ctx context.Context, db *store.Store, v float64) error {
	return db.SetPref(ctx, volumePref, strconv.FormatFloat(v, 'f', 2, 64))
}
