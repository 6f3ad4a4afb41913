package fretboard

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	strumChannel  = 0
	strumVelocity = 96
	// General MIDI program 26, acoustic guitar (steel)
	strumProgram = 25
	strumTempo   = 90
)

// MIDINotes returns the sounded keys of frets in tuning, lowest string first
func MIDINotes(frets [NumStrings]int, tuning Tuning) []uint8 {
	keys := make([]uint8, 0, NumStrings)
	for s, f := range frets {
		if f == Muted {
			continue
		}
		keys = append(keys, uint8(tuning.OpenPitch[s]+f))
	}
	return keys
}

// NoteNames returns scientific note names for the sounded keys ("E3", "C4")
func NoteNames(frets [NumStrings]int, tuning Tuning) []string {
	keys := MIDINotes(frets, tuning)
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = midi.Note(k).String()
	}
	return names
}

// WriteStrumSMF writes a single-track standard MIDI file that strums the
// fingering low to high and lets it ring for one bar.
func WriteStrumSMF(w io.Writer, f Fingering, tuning Tuning, name string) error {
	keys := MIDINotes(f.Frets, tuning)
	if len(keys) == 0 {
		return fmt.Errorf("fingering %s sounds no strings", f.Shape())
	}

	clock := smf.MetricTicks(960)
	gap := clock.Ticks4th() / 8

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	tr.Add(0, smf.MetaTempo(strumTempo))
	tr.Add(0, midi.ProgramChange(strumChannel, strumProgram))
	for i, k := range keys {
		delta := gap
		if i == 0 {
			delta = 0
		}
		tr.Add(delta, midi.NoteOn(strumChannel, k, strumVelocity))
	}

	ring := clock.Ticks4th()*4 - gap*uint32(len(keys)-1)
	for i, k := range keys {
		delta := uint32(0)
		if i == 0 {
			delta = ring
		}
		tr.Add(delta, midi.NoteOff(strumChannel, k))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write midi file: %w", err)
	}
	return nil
}
