package transform

import "ugeforge/sound"

// CleanSequence keeps every stride-th entry starting at index 0. With the
// default stride of 4 this drops the filler entries hUGETracker imports carry.
func CleanSequence(sequence []int, stride int) []int {
	if stride <= 0 {
		stride = 1
	}
	cleaned := make([]int, 0, (len(sequence)+stride-1)/stride)
	for i := 0; i < len(sequence); i += stride {
		cleaned = append(cleaned, sequence[i])
	}
	return cleaned
}

// placeSequence lays the cleaned positions out on the step grid, skipping
// positions whose pattern is empty on this channel.
func placeSequence(cleaned []int, patterns map[int]ConvertedPattern) map[int]int {
	seq := make(map[int]int)
	for pos, idx := range cleaned {
		if _, ok := patterns[idx]; !ok {
			continue
		}
		seq[pos*sound.ConvertedPatternSize] = idx
	}
	return seq
}
