// Package ugetest builds .uge files in memory for tests.
package ugetest

import (
	"bytes"
	"encoding/binary"
)

const (
	NoteNone = 90
	rows     = 64
)

type SubRow struct {
	Note        int
	Jump        int
	EffectCode  int
	EffectParam int
}

type Instrument struct {
	Type               int
	Name               string
	Length             int
	LengthEnabled      bool
	InitialVolume      int
	VolumeDirection    int
	VolumeSweep        int
	FreqSweepTime      int
	FreqSweepDirection int
	FreqSweepShift     int
	Duty               int
	WaveOutputLevel    int
	WaveIndex          int
	CounterStep        int
	DividingRatio      int
	NoiseMacro         [6]int8
	SubpatternEnabled  bool
	Subpattern         []SubRow
}

type Cell struct {
	Note        int
	Instrument  int
	EffectCode  int
	EffectParam int
}

type Pattern struct {
	ID    int
	Cells [rows]Cell
}

func NewPattern(id int) Pattern {
	p := Pattern{ID: id}
	for i := range p.Cells {
		p.Cells[i].Note = NoteNone
	}
	return p
}

type File struct {
	Version      int
	Name         string
	Artist       string
	Comment      string
	Instruments  map[int]Instrument
	Waves        [16][32]byte
	TicksPerRow  int
	TimerEnabled bool
	TimerDivider int
	Patterns     []Pattern
	Orders       [4][]int
}

func NewFile(version int) *File {
	return &File{
		Version:     version,
		Instruments: make(map[int]Instrument),
		TicksPerRow: 7,
	}
}

func instrumentCount(version int) int {
	if version < 3 {
		return 15
	}
	return 45
}

// Bytes serializes the file. Unset instrument slots are written with the
// type their slot range implies.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	u32 := func(v int) { binary.Write(&buf, binary.LittleEndian, uint32(v)) }
	u8 := func(v int) { buf.WriteByte(byte(v)) }
	text := func(s string) {
		slot := make([]byte, 256)
		slot[0] = byte(len(s))
		copy(slot[1:], s)
		buf.Write(slot)
	}
	flag := func(b bool) {
		if b {
			u8(1)
		} else {
			u8(0)
		}
	}

	u32(f.Version)
	text(f.Name)
	text(f.Artist)
	text(f.Comment)

	for slot := 0; slot < instrumentCount(f.Version); slot++ {
		inst, ok := f.Instruments[slot]
		if !ok {
			inst = Instrument{Type: slot / 15}
		}
		u32(inst.Type)
		text(inst.Name)
		u32(inst.Length)
		flag(inst.LengthEnabled)
		u8(inst.InitialVolume)
		u32(inst.VolumeDirection)
		u8(inst.VolumeSweep)
		u32(inst.FreqSweepTime)
		u32(inst.FreqSweepDirection)
		u32(inst.FreqSweepShift)
		u8(inst.Duty)
		u32(inst.WaveOutputLevel)
		u32(inst.WaveIndex)
		if f.Version >= 6 {
			u32(inst.CounterStep)
			flag(inst.SubpatternEnabled)
			for i := 0; i < rows; i++ {
				row := SubRow{Note: NoteNone}
				if i < len(inst.Subpattern) {
					row = inst.Subpattern[i]
				}
				u32(row.Note)
				u32(0)
				u32(row.Jump)
				u32(row.EffectCode)
				u8(row.EffectParam)
			}
			continue
		}
		u32(0)
		u32(inst.CounterStep)
		u32(inst.DividingRatio)
		if f.Version >= 4 {
			for _, v := range inst.NoiseMacro {
				u8(int(uint8(v)))
			}
		}
	}

	for _, w := range f.Waves {
		buf.Write(w[:])
		if f.Version < 3 {
			u8(0)
		}
	}

	u32(f.TicksPerRow)
	if f.Version >= 6 {
		flag(f.TimerEnabled)
		u32(f.TimerDivider)
	}

	u32(len(f.Patterns))
	for _, p := range f.Patterns {
		if f.Version >= 5 {
			u32(p.ID)
		}
		for _, c := range p.Cells {
			u32(c.Note)
			u32(c.Instrument)
			if f.Version >= 6 {
				u32(0)
			}
			u32(c.EffectCode)
			u8(c.EffectParam)
		}
	}

	for _, order := range f.Orders {
		u32(len(order) + 1)
		for _, v := range order {
			u32(v)
		}
		u32(0)
	}

	return buf.Bytes()
}
