package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ugeforge/parse"
	"ugeforge/pipeline"
	"ugeforge/transform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Width(14)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))
)

var channelNames = [parse.ChannelCount]string{"Duty 1", "Duty 2", "Wave", "Noise"}

var infoCmd = &cobra.Command{
	Use:   "info [file.uge]",
	Short: "Show what a song contains and what conversion keeps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		res, err := pipeline.NewRunner(cfg, nil).Inspect(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderInfo(res))
		return nil
	},
}

func line(label, value string) string {
	return labelStyle.Render(label) + value
}

func renderInfo(res *pipeline.Result) string {
	song, a := res.Song, res.Analysis

	title := song.Name
	if title == "" {
		title = res.Source
	}
	header := []string{
		line("Version", fmt.Sprint(song.Version)),
		line("Artist", song.Artist),
		line("Ticks/row", fmt.Sprint(song.TicksPerRow)),
		line("Positions", fmt.Sprintf("%d kept of %d", len(a.ReachablePositions), len(song.Sequence))),
		line("Patterns", fmt.Sprintf("%d unique, %d repeated positions", len(song.Patterns), a.DuplicatePositions)),
	}
	if song.TimerEnabled {
		header = append(header, line("Timer", fmt.Sprintf("divider %d", song.TimerDivider)))
	}

	var inst []string
	for t := parse.InstrumentDuty; t <= parse.InstrumentNoise; t++ {
		inst = append(inst, line(t.String(), fmt.Sprintf("%d defined, used %v", song.InstrumentCount(t), a.UsedInstruments[t])))
	}

	var channels []string
	for ch, nr := range a.NoteRanges {
		value := "empty"
		if nr.Count > 0 {
			value = fmt.Sprintf("%d notes, %s..%s", nr.Count, transform.NoteLabel(nr.Low), transform.NoteLabel(nr.High))
		}
		channels = append(channels, line(channelNames[ch], value))
	}

	sections := []string{
		titleStyle.Render(title),
		sectionStyle.Render(strings.Join(header, "\n")),
		sectionStyle.Render(strings.Join(inst, "\n")),
		sectionStyle.Render(strings.Join(channels, "\n")),
	}
	if len(a.EffectUsage) > 0 {
		sections = append(sections, warnStyle.Render(fmt.Sprintf("Effects dropped: %s", effectSummary(a.EffectUsage))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func effectSummary(usage map[int]int) string {
	codes := make([]int, 0, len(usage))
	for code := range usage {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%X x%d", code, usage[code])
	}
	return strings.Join(parts, ", ")
}
