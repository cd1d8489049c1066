package parse

type pendingMacro struct {
	index int
	macro []int
}

// Load parses a .uge file. Malformed input yields an error matching ErrFormat
// and no song.
func Load(raw []byte) (*Song, error) {
	r := newReader(raw)

	version := r.uint32("version")
	if r.err != nil {
		return nil, r.err
	}
	lay, err := layoutFor(version)
	if err != nil {
		return nil, err
	}

	song := &Song{
		Version: int(version),
		Mapping: newInstrumentMapping(),
	}
	song.Name = r.text("song name")
	song.Artist = r.text("artist")
	song.Comment = r.text("comment")

	var macros []pendingMacro
	for slot := 0; slot < lay.instrumentCount; slot++ {
		inst := readInstrument(r, lay)
		if r.err != nil {
			return nil, r.err
		}
		switch inst.typ {
		case uint32(InstrumentDuty):
			song.addDutyInstrument(slot, inst.dutyInstrument())
		case uint32(InstrumentWave):
			song.addWaveInstrument(slot, inst.waveInstrument())
		case uint32(InstrumentNoise):
			song.addNoiseInstrument(slot, inst.noiseInstrument())
			if hasNoiseMacro(inst.noiseMacro) {
				macros = append(macros, pendingMacro{
					index: len(song.NoiseInstruments) - 1,
					macro: inst.noiseMacro,
				})
			}
		}
	}

	for i := range song.Waves {
		copy(song.Waves[i][:], r.take(WaveSize, "wave table"))
		if lay.wavePadding {
			r.skip(1, "wave padding")
		}
	}

	song.TicksPerRow = r.int("ticks per row")
	if lay.timer {
		song.TimerEnabled = r.bool("timer enabled")
		song.TimerDivider = r.int("timer divider")
	}
	if r.err != nil {
		return nil, r.err
	}

	for _, m := range macros {
		migrateNoiseMacro(&song.NoiseInstruments[m.index], m.macro, song.TicksPerRow)
	}

	table, err := readPatternTable(r, lay)
	if err != nil {
		return nil, err
	}

	orders, err := readOrders(r)
	if err != nil {
		return nil, err
	}

	for pos := range orders[0] {
		song.addDeduplicated(buildPattern(table, orders, pos, song.Mapping))
	}

	return song, nil
}

func readPatternTable(r *reader, lay layout) (rawPatternTable, error) {
	count := r.int("pattern count")
	if r.err != nil {
		return nil, r.err
	}
	// Sized with the legacy 13-byte cell whatever the version.
	start := r.off
	if need := count * legacyCellStride * PatternRows; start+need > len(r.data) {
		return nil, &TruncatedBufferError{Offset: start, Need: need, Len: len(r.data), Field: "pattern table"}
	}

	table := make(rawPatternTable, count)
	for n := 0; n < count; n++ {
		id := n
		if lay.patternIDs {
			id = r.int("pattern id")
		}
		pat := readPattern(r, lay)
		if r.err != nil {
			return nil, r.err
		}
		table.place(id, pat, lay.appendOnIDClash)
	}
	return table, nil
}

// readOrders reads the four order lists. hUGETracker stores one more entry
// than it uses, so the trailing entry is skipped. A zero count has no entries
// at all.
func readOrders(r *reader) ([ChannelCount][]int, error) {
	var orders [ChannelCount][]int
	for ch := 0; ch < ChannelCount; ch++ {
		count := r.int("order count")
		if r.err != nil {
			return orders, r.err
		}
		if count > 0 && (count-1)*4 > r.remaining() {
			return orders, &TruncatedBufferError{Offset: r.off, Need: (count - 1) * 4, Len: len(r.data), Field: "order list"}
		}
		if count <= 0 {
			continue
		}
		for i := 0; i < count-1; i++ {
			orders[ch] = append(orders[ch], r.int("order entry"))
		}
		r.skip(4, "order terminator")
		if r.err != nil {
			return orders, r.err
		}
	}
	return orders, nil
}
