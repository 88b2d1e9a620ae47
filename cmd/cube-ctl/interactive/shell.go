// Package interactive provides the interactive command-line interface
// for cube-ctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/samber/lo"

	"github.com/cubekit/cube-go/pkg/config"
	"github.com/cubekit/cube-go/pkg/inspect"
	"github.com/cubekit/cube-go/pkg/service"
	"github.com/cubekit/cube-go/pkg/subscription"
	"github.com/cubekit/cube-go/pkg/version"
	"github.com/cubekit/cube-go/pkg/wire"
)

// Session is the part of *service.DeviceSession the shell drives.
type Session interface {
	config.SensorTarget

	SessionID() string
	State() service.State
	Dropped() uint64
	Subscribe(ch wire.Channel, h subscription.Handler) subscription.ID

	SetMotor(left, right int, d time.Duration) error
	SetMotorTarget(t wire.MotorTarget) error
	SetMotorMultipleTargets(t wire.MultiTarget) error
	SetMotorAcceleration(a wire.Acceleration) error
	SetLight(l wire.Light) error
	SetLightOff() error
	SetLightPattern(lights []wire.Light, repeat uint8) error
	PlaySound(effect, volume uint8) error
	PlayNotes(notes []wire.Note, repeat uint8) error
	StopSound() error

	Identification() (wire.Identification, error)
	Motion() (wire.MotionState, error)
	Button() (wire.ButtonState, error)
	Battery() (wire.BatteryLevel, error)
	Motor() (wire.MotorStatus, error)
	ProtocolVersion(ctx context.Context) (string, error)
}

var _ Session = (*service.DeviceSession)(nil)

// Shell handles interactive mode for cube-ctl.
type Shell struct {
	session   Session
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer

	controlID int
	watching  map[wire.Channel]bool
}

// NewReadline creates the terminal line editor. Create it before anything
// logs so that log output can go through its Stdout.
func NewReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cube> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// New creates a shell reading commands from rl.
func New(rl *readline.Instance, session Session) *Shell {
	s := newShell(session, rl.Stdout())
	s.rl = rl
	return s
}

func newShell(session Session, out io.Writer) *Shell {
	return &Shell{
		session:   session,
		formatter: inspect.NewFormatter(),
		out:       out,
		watching:  make(map[wire.Channel]bool),
	}
}

// Run reads and executes commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	// Closing the terminal unblocks Readline when ctx ends first.
	stop := context.AfterFunc(ctx, func() { _ = s.rl.Close() })
	defer stop()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if s.Execute(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Execute runs one command line. It returns true when the user asked to quit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "status":
		s.cmdStatus()
	case "version", "caps":
		err = s.cmdVersion(ctx)
	case "read", "r":
		err = s.cmdRead(args)
	case "watch", "w":
		err = s.cmdWatch(args)
	case "notify":
		err = s.cmdNotify(args)

	case "motor", "m":
		err = s.cmdMotor(args)
	case "stop":
		err = s.session.SetMotor(0, 0, 0)
	case "goto":
		err = s.cmdGoto(args)
	case "path":
		err = s.cmdPath(args)
	case "accel":
		err = s.cmdAccel(args)

	case "light", "l":
		err = s.cmdLight(args)
	case "pattern":
		err = s.cmdPattern(args)
	case "sound":
		err = s.cmdSound(args)
	case "notes":
		err = s.cmdNotes(args)
	case "mute":
		err = s.session.StopSound()

	case "collision":
		err = s.cmdLevel(args, s.session.SetCollisionThreshold)
	case "level":
		err = s.cmdLevel(args, s.session.SetLevelThreshold)
	case "doubletap":
		err = s.cmdLevel(args, s.session.SetDoubleTapTiming)
	case "idnotify":
		err = s.cmdIDNotify(args)
	case "idmissed":
		err = s.cmdIDMissed(args)
	case "magnetic":
		err = s.cmdMagnetic(args)
	case "tilt":
		err = s.cmdTilt(args)
	case "speednotify":
		err = s.cmdSpeedNotify(args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
		return false
	}

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Cube Commands:
  Session:
    status                      - Show session state
    version                     - Show firmware version and capabilities
    read <channel>              - Read id, motion, button, battery or motor
    watch <channel>...          - Print notifications from channels
    notify <channel> on|off     - Enable or disable notifications

  Motion:
    motor <left> <right> [ms]   - Drive wheels (-115..115)
    stop                        - Stop the motors
    goto <x,y[,deg]> [speed]    - Move to a mat position
    path <x,y[,deg]>...         - Move through up to four positions
    accel <speed> <accel> [turn] - Drive with acceleration

  Light & Sound:
    light <r,g,b[,ms]>          - Turn the light on
    light off                   - Turn the light off
    pattern <repeat> <r,g,b,ms>... - Play a light pattern
    sound <effect> [volume]     - Play a sound effect
    notes <repeat> <n:ms[:vol]>... - Play notes (n=0-127 or rest)
    mute                        - Stop sound

  Sensors:
    collision <1-10>            - Collision threshold
    level <1-45>                - Level threshold in degrees
    doubletap <1-7>             - Double tap timing
    idnotify <ms> [condition]   - ID report interval
    idmissed <ms>               - ID missed delay
    magnetic <mode> [ms] [condition] - Magnetic sensor (off, status, force)
    tilt <format> [ms] [condition]   - Posture reports (off, euler, quaternion)
    speednotify on|off          - Motor speed reports

  General:
    help                        - Show this help
    quit                        - Exit

  Conditions: periodic, changed, changed_or_300ms`)
}

func (s *Shell) cmdStatus() {
	fmt.Fprintf(s.out, "Session: %s\n", s.session.SessionID())
	fmt.Fprintf(s.out, "State:   %s\n", s.session.State())
	fmt.Fprintf(s.out, "Dropped: %d\n", s.session.Dropped())

	watched := lo.Filter(wire.Channels, func(ch wire.Channel, _ int) bool { return s.watching[ch] })
	if len(watched) > 0 {
		names := lo.Map(watched, func(ch wire.Channel, _ int) string { return ch.String() })
		fmt.Fprintf(s.out, "Watching: %s\n", strings.Join(names, ", "))
	}
}

func (s *Shell) cmdVersion(ctx context.Context) error {
	raw, err := s.session.ProtocolVersion(ctx)
	if err != nil {
		return err
	}
	v, err := version.Parse(raw)
	if err != nil {
		fmt.Fprintf(s.out, "Firmware: %s (unrecognized format)\n", raw)
		return nil
	}
	if !v.Compatible(version.MustParse(version.Minimum)) {
		fmt.Fprintf(s.out, "Warning: firmware %s is older than %s\n", v, version.Minimum)
	}
	m, err := version.ManifestFor(v)
	if err != nil {
		fmt.Fprintf(s.out, "Firmware: %s (no capability manifest)\n", v)
		return nil
	}
	s.formatter.FormatManifest(s.out, v, m)
	return nil
}

func (s *Shell) cmdRead(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: read <channel>")
	}
	ch, err := parseChannel(args[0])
	if err != nil {
		return err
	}

	var ev wire.Event
	switch ch {
	case wire.ChannelIdentification:
		ev, err = s.session.Identification()
	case wire.ChannelMotion:
		ev, err = s.session.Motion()
	case wire.ChannelButton:
		ev, err = s.session.Button()
	case wire.ChannelBattery:
		ev, err = s.session.Battery()
	case wire.ChannelMotor:
		ev, err = s.session.Motor()
	default:
		return fmt.Errorf("%s cannot be read", ch)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, inspect.FormatWire(ev))
	return nil
}

// cmdWatch subscribes a printer to each channel once. Subscriptions last for
// the whole session.
func (s *Shell) cmdWatch(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: watch <channel>...")
	}
	channels, err := parseEach(args, parseChannel)
	if err != nil {
		return err
	}

	for _, ch := range lo.Uniq(channels) {
		if !ch.IsNotifiable() {
			return fmt.Errorf("%s does not notify", ch)
		}
		if s.watching[ch] {
			continue
		}
		s.session.Subscribe(ch, s.printEvent)
		s.watching[ch] = true
		fmt.Fprintf(s.out, "Watching %s\n", ch)
	}
	return nil
}

func (s *Shell) printEvent(ev wire.Event) {
	fmt.Fprintf(s.out, "[%s] %s\n", ev.Channel(), inspect.FormatWire(ev))
}

func (s *Shell) cmdNotify(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: notify <channel> on|off")
	}
	ch, err := parseChannel(args[0])
	if err != nil {
		return err
	}
	on, err := parseOnOff(args[1])
	if err != nil {
		return err
	}
	return s.session.EnableNotification(ch, on)
}

func (s *Shell) cmdMotor(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: motor <left> <right> [ms]")
	}
	left, err := parseInt("left", args[0])
	if err != nil {
		return err
	}
	right, err := parseInt("right", args[1])
	if err != nil {
		return err
	}
	d, err := parseMillis("duration", optional(args, 2, "0"))
	if err != nil {
		return err
	}
	return s.session.SetMotor(left, right, d)
}

// nextControlID cycles through 0-255 so target results can be matched.
func (s *Shell) nextControlID() int {
	id := s.controlID
	s.controlID = (s.controlID + 1) % 256
	return id
}

func (s *Shell) cmdGoto(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: goto <x,y[,deg]> [speed]")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	speed, err := parseInt("speed", optional(args, 1, "80"))
	if err != nil {
		return err
	}

	id := s.nextControlID()
	if err := s.session.SetMotorTarget(wire.MotorTarget{
		ControlID: id,
		Target:    target,
		Timeout:   5,
		MaxSpeed:  speed,
	}); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Moving (control id %d)\n", id)
	return nil
}

func (s *Shell) cmdPath(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: path <x,y[,deg]>...")
	}
	goals, err := parseEach(args, parseTarget)
	if err != nil {
		return err
	}

	id := s.nextControlID()
	if err := s.session.SetMotorMultipleTargets(wire.MultiTarget{
		ControlID: id,
		Goals:     goals,
		Timeout:   10,
		MaxSpeed:  80,
	}); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Moving through %d goals (control id %d)\n", len(goals), id)
	return nil
}

func (s *Shell) cmdAccel(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: accel <speed> <accel> [turn]")
	}
	speed, err := parseInt("speed", args[0])
	if err != nil {
		return err
	}
	accel, err := parseInt("accel", args[1])
	if err != nil {
		return err
	}
	turn, err := parseInt("turn", optional(args, 2, "0"))
	if err != nil {
		return err
	}

	a := wire.Acceleration{
		TranslationSpeed: abs(speed),
		TranslationAccel: accel,
		TurnSpeed:        abs(turn),
	}
	if speed < 0 {
		a.TravelDirection = wire.DirectionBackward
	}
	if turn < 0 {
		a.TurnDirection = wire.DirectionBackward
	}
	return s.session.SetMotorAcceleration(a)
}

func (s *Shell) cmdLight(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: light <r,g,b[,ms]> | light off")
	}
	if strings.EqualFold(args[0], "off") {
		return s.session.SetLightOff()
	}
	l, err := parseLight(args[0])
	if err != nil {
		return err
	}
	return s.session.SetLight(l)
}

func (s *Shell) cmdPattern(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: pattern <repeat> <r,g,b,ms>...")
	}
	repeat, err := parseByte("repeat", args[0])
	if err != nil {
		return err
	}
	lights, err := parseEach(args[1:], parseLight)
	if err != nil {
		return err
	}
	return s.session.SetLightPattern(lights, repeat)
}

func (s *Shell) cmdSound(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: sound <effect> [volume]")
	}
	effect, err := parseByte("effect", args[0])
	if err != nil {
		return err
	}
	volume, err := parseByte("volume", optional(args, 1, "255"))
	if err != nil {
		return err
	}
	return s.session.PlaySound(effect, volume)
}

func (s *Shell) cmdNotes(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: notes <repeat> <n:ms[:vol]>...")
	}
	repeat, err := parseByte("repeat", args[0])
	if err != nil {
		return err
	}
	notes, err := parseEach(args[1:], parseNote)
	if err != nil {
		return err
	}
	return s.session.PlayNotes(notes, repeat)
}

func (s *Shell) cmdLevel(args []string, set func(int) error) error {
	if len(args) != 1 {
		return errors.New("expected one value")
	}
	n, err := parseInt("value", args[0])
	if err != nil {
		return err
	}
	return set(n)
}

func (s *Shell) cmdIDNotify(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: idnotify <ms> [condition]")
	}
	interval, err := parseMillis("interval", args[0])
	if err != nil {
		return err
	}
	cond, err := parseCondition(optional(args, 1, "changed"))
	if err != nil {
		return err
	}
	return s.session.SetIDNotify(interval, cond)
}

func (s *Shell) cmdIDMissed(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: idmissed <ms>")
	}
	delay, err := parseMillis("delay", args[0])
	if err != nil {
		return err
	}
	return s.session.SetIDMissedNotify(delay)
}

func (s *Shell) cmdMagnetic(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errors.New("usage: magnetic <mode> [ms] [condition]")
	}
	mode, err := parseMagneticMode(args[0])
	if err != nil {
		return err
	}
	interval, err := parseMillis("interval", optional(args, 1, "0"))
	if err != nil {
		return err
	}
	cond, err := parseCondition(optional(args, 2, "changed"))
	if err != nil {
		return err
	}
	return s.session.SetMagneticSensor(mode, interval, cond)
}

func (s *Shell) cmdTilt(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errors.New("usage: tilt <format> [ms] [condition]")
	}
	format, err := parseTiltFormat(args[0])
	if err != nil {
		return err
	}
	interval, err := parseMillis("interval", optional(args, 1, "0"))
	if err != nil {
		return err
	}
	cond, err := parseCondition(optional(args, 2, "changed"))
	if err != nil {
		return err
	}
	return s.session.SetHighPrecisionTilt(format, interval, cond)
}

func (s *Shell) cmdSpeedNotify(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: speednotify on|off")
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	return s.session.SetMotorSpeedNotify(on)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func completer() *readline.PrefixCompleter {
	channels := lo.Map(wire.Channels, func(ch wire.Channel, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(strings.ToLower(ch.String()))
	})
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("status"),
		readline.PcItem("version"),
		readline.PcItem("read", channels...),
		readline.PcItem("watch", channels...),
		readline.PcItem("notify", channels...),
		readline.PcItem("motor"),
		readline.PcItem("stop"),
		readline.PcItem("goto"),
		readline.PcItem("path"),
		readline.PcItem("accel"),
		readline.PcItem("light", readline.PcItem("off")),
		readline.PcItem("pattern"),
		readline.PcItem("sound"),
		readline.PcItem("notes"),
		readline.PcItem("mute"),
		readline.PcItem("collision"),
		readline.PcItem("level"),
		readline.PcItem("doubletap"),
		readline.PcItem("idnotify"),
		readline.PcItem("idmissed"),
		readline.PcItem("magnetic", readline.PcItem("off"), readline.PcItem("status"), readline.PcItem("force")),
		readline.PcItem("tilt", readline.PcItem("off"), readline.PcItem("euler"), readline.PcItem("quaternion")),
		readline.PcItem("speednotify", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem("quit"),
	)
}
