// Package interactive provides the interactive command-line interface
// for the horo calculator.
package interactive

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/horo-tools/horo-go/pkg/calendar"
	"github.com/horo-tools/horo-go/pkg/clockangle"
	"github.com/horo-tools/horo-go/pkg/datetext"
	"github.com/horo-tools/horo-go/pkg/log"
	"github.com/horo-tools/horo-go/pkg/timespan"
)

// Shell handles interactive mode for horo-shell.
type Shell struct {
	rl    *readline.Instance
	out   io.Writer
	audit log.Logger
}

// New creates a new interactive shell. A nil audit logger disables
// audit logging.
func New(audit log.Logger) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "horo> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	if audit == nil {
		audit = log.NoopLogger{}
	}

	return &Shell{
		rl:    rl,
		out:   rl.Stdout(),
		audit: audit,
	}, nil
}

// Run starts the interactive command loop. It returns when the user
// quits or input reaches EOF.
func (s *Shell) Run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if s.exec(line) {
			return
		}
	}
}

// exec handles one input line. It reports whether the shell should exit.
func (s *Shell) exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "parse", "p":
		s.cmdParse(args, parseAnyFamily)

	case "rfc":
		s.cmdParse(args, singleFamily(datetext.ParseRFC2822, log.OpParseRFC2822))

	case "iso":
		s.cmdParse(args, singleFamily(datetext.ParseISO8601, log.OpParseISO8601))

	case "leap", "l":
		s.cmdLeap(args)

	case "span", "s":
		s.cmdSpan(args)

	case "angle", "a":
		s.cmdAngle(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Horo Commands:
  Parsing:
    parse <text>       - Parse a date string (tries ISO 8601, then RFC 2822)
    rfc <text>         - Parse an RFC 2822 date string
    iso <text>         - Parse an ISO 8601 date string

  Calculations:
    leap <year|date>   - Check whether a year is a leap year
    span <start> <end> - Format the span between two ISO 8601 instants
    angle <HH:MM|date> - Clock-hand angle in radians and degrees

  General:
    help               - Show this help
    quit               - Exit

  Examples:
    parse Thu, 21 Dec 2000 16:01:07 +0200
    leap 2024
    span 2024-03-01T01:02:03Z 2024-03-01T02:03:04.500Z
    angle 12:30`)
}

// parseFunc parses text and reports the audit operation for the format
// family that handled it.
type parseFunc func(text string) (time.Time, log.Operation, error)

// singleFamily adapts a one-family parser to parseFunc.
func singleFamily(parse func(string) (time.Time, error), op log.Operation) parseFunc {
	return func(text string) (time.Time, log.Operation, error) {
		t, err := parse(text)
		return t, op, err
	}
}

// parseAnyFamily tries both families and attributes the result to the
// one that matched.
func parseAnyFamily(text string) (time.Time, log.Operation, error) {
	t, family, err := datetext.ParseAny(text)
	if family == datetext.FamilyRFC2822 {
		return t, log.OpParseRFC2822, err
	}
	return t, log.OpParseISO8601, err
}

// cmdParse handles the parse, rfc and iso commands.
func (s *Shell) cmdParse(args []string, parse parseFunc) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: parse <date text>")
		return
	}

	text := strings.Join(args, " ")
	instant, op, err := parse(text)

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceShell,
		Operation: op,
		Input:     &log.InputData{Text: text},
	}

	if err != nil {
		event.Outcome = log.OutcomeParseFailure
		event.Error = &log.ErrorData{Message: err.Error()}
		s.audit.Log(event)

		fmt.Fprintf(s.out, "Parse failed: %v\n", err)
		return
	}

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Instant: &instant}
	s.audit.Log(event)

	fmt.Fprintf(s.out, "%s (unix millis %d)\n", instant.Format(time.RFC3339Nano), instant.UnixMilli())
}

// cmdLeap handles the leap command. It accepts a bare year or an
// ISO 8601 instant.
func (s *Shell) cmdLeap(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: leap <year|ISO 8601 date>")
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceShell,
		Operation: log.OpLeapYear,
	}

	var year int
	if y, err := strconv.Atoi(args[0]); err == nil {
		year = y
	} else {
		instant, err := datetext.ParseISO8601(args[0])
		if err != nil {
			event.Outcome = log.OutcomeInvalidInput
			event.Input = &log.InputData{Text: args[0]}
			event.Error = &log.ErrorData{Message: err.Error()}
			s.audit.Log(event)

			fmt.Fprintf(s.out, "Not a year or ISO 8601 date: %s\n", args[0])
			return
		}
		year = instant.Year()
		event.Input = &log.InputData{Instant: &instant}
	}

	leap := calendar.LeapYear(year)

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Leap: &leap}
	s.audit.Log(event)

	if leap {
		fmt.Fprintf(s.out, "%d is a leap year\n", year)
	} else {
		fmt.Fprintf(s.out, "%d is not a leap year\n", year)
	}
}

// cmdSpan handles the span command.
func (s *Shell) cmdSpan(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: span <start> <end> (ISO 8601 instants)")
		return
	}

	start, err := datetext.ParseISO8601(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid start: %v\n", err)
		return
	}
	end, err := datetext.ParseISO8601(args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid end: %v\n", err)
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceShell,
		Operation: log.OpTimeSpan,
		Input:     &log.InputData{Start: &start, End: &end},
	}

	formatted, err := timespan.Format(start, end)
	if err != nil {
		event.Outcome = log.OutcomeInvalidInput
		event.Error = &log.ErrorData{Message: err.Error()}
		s.audit.Log(event)

		fmt.Fprintf(s.out, "Invalid span: %v\n", err)
		return
	}

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Formatted: formatted}
	s.audit.Log(event)

	fmt.Fprintln(s.out, formatted)
}

// cmdAngle handles the angle command. It accepts HH:MM or an ISO 8601
// instant.
func (s *Shell) cmdAngle(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: angle <HH:MM|ISO 8601 date>")
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceShell,
		Operation: log.OpClockAngle,
	}

	var radians float64
	if hour, minute, ok := parseHourMinute(args[0]); ok {
		radians = clockangle.FromHourMinute(hour, minute)
		event.Input = &log.InputData{Text: args[0]}
	} else {
		instant, err := datetext.ParseISO8601(args[0])
		if err != nil {
			event.Outcome = log.OutcomeInvalidInput
			event.Input = &log.InputData{Text: args[0]}
			event.Error = &log.ErrorData{Message: err.Error()}
			s.audit.Log(event)

			fmt.Fprintf(s.out, "Not a HH:MM time or ISO 8601 date: %s\n", args[0])
			return
		}
		radians = clockangle.Radians(instant)
		event.Input = &log.InputData{Instant: &instant}
	}

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Radians: &radians}
	s.audit.Log(event)

	fmt.Fprintf(s.out, "%.6f rad (%.2f°)\n", radians, radians*180/math.Pi)
}

// parseHourMinute parses "HH:MM" wall-clock input.
func parseHourMinute(text string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(text, ":")
	if !found {
		return 0, 0, false
	}

	var err error
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}
