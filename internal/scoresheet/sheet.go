package scoresheet

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/playperu/minibasket/internal/minibasket"
)

// heading upper-cases a section title. Names elsewhere print as entered.
// A cases.Caser is not safe for concurrent use, so build one per call.
func heading(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Write renders the official scoresheet for g as plain text.
func Write(w io.Writer, g minibasket.Game) error {
	var sb strings.Builder

	a, b := minibasket.FinalScore(g.ScoreHistory)
	sb.WriteString("MINI-BASKET SCORESHEET\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Game: %s\n", g.ID)
	if g.StartTime > 0 {
		fmt.Fprintf(&sb, "Started: %s\n", formatMillis(g.StartTime))
	}
	if g.EndTime > 0 {
		fmt.Fprintf(&sb, "Ended: %s\n", formatMillis(g.EndTime))
	}
	label := "Score"
	if g.Phase == minibasket.PhaseFinished {
		label = "Final score"
	}
	fmt.Fprintf(&sb, "%s: %s %d - %d %s\n\n", label, teamName(g.TeamA), a, b, teamName(g.TeamB))

	for _, t := range []minibasket.Team{g.TeamA, g.TeamB} {
		writeTeam(&sb, g, t)
	}
	writeRunningScore(&sb, g)
	writeQuarterScores(&sb, g)

	_, err := io.WriteString(w, sb.String())
	return err
}

// Render is Write into a string.
func Render(g minibasket.Game) string {
	var sb strings.Builder
	Write(&sb, g)
	return sb.String()
}

func writeTeam(sb *strings.Builder, g minibasket.Game, t minibasket.Team) {
	fmt.Fprintf(sb, "TEAM %s: %s\n", t.ID, heading(teamName(t)))
	if t.CoachName != "" {
		fmt.Fprintf(sb, "Coach: %s\n", t.CoachName)
	}
	if t.AssistantCoachName != "" {
		fmt.Fprintf(sb, "Assistant coach: %s\n", t.AssistantCoachName)
	}
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	tw := tabwriter.NewWriter(sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "No\tName\tQ1\tQ2\tQ3\tQ4\tFouls\tPTS\t")
	for _, p := range sortedPlayers(t.Players) {
		name := p.DisplayName()
		if p.IsCaptain {
			name += " (C)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			p.Number, name,
			playMark(p.QuartersPlayed[0]), playMark(p.QuartersPlayed[1]),
			playMark(p.QuartersPlayed[2]), playMark(p.QuartersPlayed[3]),
			foulMarks(p.Fouls), p.Stats.Points)
	}
	tw.Flush()

	sb.WriteString("Team fouls:")
	for q, n := range t.TeamFouls {
		fmt.Fprintf(sb, "  Q%d %d", q+1, n)
	}
	sb.WriteString("\n")

	sb.WriteString("Bench:")
	if bench := numbers(t.Bench()); len(bench) == 0 {
		sb.WriteString("  none")
	} else {
		for _, n := range bench {
			fmt.Fprintf(sb, "  #%d", n)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("Timeouts:")
	if len(t.Timeouts) == 0 {
		sb.WriteString("  none")
	}
	for _, to := range t.Timeouts {
		fmt.Fprintf(sb, "  Q%d %d'", to.Quarter, to.ElapsedMinutes)
	}
	sb.WriteString("\n")

	if len(t.CoachFouls) > 0 {
		sb.WriteString("Coach/bench fouls:")
		for _, f := range t.CoachFouls {
			fmt.Fprintf(sb, "  %s%d (%s)", f.Type, f.Quarter, strings.ToLower(f.PlayerID))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeRunningScore(sb *strings.Builder, g minibasket.Game) {
	sb.WriteString("RUNNING SCORE\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if len(g.ScoreHistory) == 0 {
		sb.WriteString("no points scored\n\n")
		return
	}
	entries := slices.Clone(g.ScoreHistory)
	slices.SortStableFunc(entries, func(x, y minibasket.ScoreEntry) int {
		return cmp.Compare(x.Timestamp, y.Timestamp)
	})

	tw := tabwriter.NewWriter(sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Q\tTeam\tNo\tType\tA\tB\t")
	for _, e := range minibasket.RecomputeRunningScores(entries) {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%d\t\n",
			e.Quarter, e.TeamID, e.PlayerNumber, e.ScoreType, e.RunningScoreA, e.RunningScoreB)
	}
	tw.Flush()
	sb.WriteString("\n")
}

func writeQuarterScores(sb *strings.Builder, g minibasket.Game) {
	sb.WriteString("QUARTER SCORES\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	quarters := g.QuarterScores()

	tw := tabwriter.NewWriter(sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tQ1\tQ2\tQ3\tQ4\tTotal\t")
	for _, t := range []minibasket.Team{g.TeamA, g.TeamB} {
		qs := quarters[t.ID]
		total := 0
		for _, n := range qs {
			total += n
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n", teamName(t), qs[0], qs[1], qs[2], qs[3], total)
	}
	tw.Flush()
}

func teamName(t minibasket.Team) string {
	if t.Name == "" {
		return "Team " + string(t.ID)
	}
	return t.Name
}

// playMark is the scoresheet convention: a circled X for starters, a plain X
// for substitutes.
func playMark(q minibasket.QuarterPlay) string {
	switch q {
	case minibasket.QuarterStarter, minibasket.QuarterBoth:
		return "(X)"
	case minibasket.QuarterSub:
		return "X"
	}
	return "-"
}

func foulMarks(fouls []minibasket.FoulRecord) string {
	if len(fouls) == 0 {
		return "-"
	}
	marks := make([]string, len(fouls))
	for i, f := range fouls {
		marks[i] = fmt.Sprintf("%s%d", f.Type, f.Quarter)
		if f.FreeThrows > 0 {
			marks[i] += fmt.Sprintf("/%d", f.FreeThrows)
		}
	}
	if len(fouls) >= minibasket.FoulOutLimit {
		marks = append(marks, "OUT")
	}
	return strings.Join(marks, " ")
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
