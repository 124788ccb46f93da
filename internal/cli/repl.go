// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/catalog"
)

var errQuit = errors.New("quit")

const replHelp = `commands:
  play <n|path>   play sound n from "list", or a path
  stop            stop playback
  reverse         toggle instant reverse
  speed <x>       playback speed, > 0
  pitch <n>       pitch shift in semitones
  lock on|off     let speed change pitch
  reverb on|off   route through the reverb
  wet <x>         reverb mix, 0 to 1
  volume <db>     master volume in decibels
  mute on|off     silence the output
  state           print the current state
  list            list the sounds
  quit            exit`

// runREPL executes one command per line until in ends, ctx is done or
// the user quits.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, sess *soundboard.Session, sounds []catalog.Sound) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "> ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			return nil
		}

		err := execLine(ctx, out, sess, sounds, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func execLine(ctx context.Context, out io.Writer, sess *soundboard.Session, sounds []catalog.Sound, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "help", "?":
		fmt.Fprintln(out, replHelp)
	case "quit", "exit", "q":
		return errQuit
	case "list", "ls":
		renderList(out, sounds)
	case "state":
		b, err := json.MarshalIndent(sess.Snapshot(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	case "play", "p":
		if len(args) != 1 {
			return errors.New("usage: play <n|path>")
		}
		p, err := resolveSound(sounds, args[0])
		if err != nil {
			return err
		}
		if err := sess.PlayPath(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", sess.Status(), p)
	case "stop", "s":
		sess.Stop()
	case "reverse", "r":
		sess.ToggleInstantReverse()
		fmt.Fprintf(out, "%s at %.3fs\n", sess.Status(), sess.Position())
	case "speed":
		v, err := floatArg(args)
		if err != nil {
			return err
		}
		return sess.SetSpeed(v)
	case "pitch":
		v, err := floatArg(args)
		if err != nil {
			return err
		}
		sess.SetPitch(v)
	case "wet":
		v, err := floatArg(args)
		if err != nil {
			return err
		}
		sess.SetReverbWet(v)
	case "volume", "vol":
		v, err := floatArg(args)
		if err != nil {
			return err
		}
		sess.SetVolume(v)
	case "mute":
		on, err := switchArg(args)
		if err != nil {
			return err
		}
		sess.SetMuted(on)
	case "lock":
		on, err := switchArg(args)
		if err != nil {
			return err
		}
		sess.SetPitchLock(on)
	case "reverb":
		on, err := switchArg(args)
		if err != nil {
			return err
		}
		sess.SetReverb(on)
	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}

	return nil
}

// resolveSound accepts a 1-based index into sounds or a path.
func resolveSound(sounds []catalog.Sound, arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(sounds) {
			return "", fmt.Errorf("no sound %d, have %d", n, len(sounds))
		}
		return sounds[n-1].Path, nil
	}
	if !strings.HasPrefix(arg, "/") {
		arg = "/" + arg
	}
	return arg, nil
}

func floatArg(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one number")
	}
	return strconv.ParseFloat(args[0], 64)
}

func switchArg(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args[0])
}
