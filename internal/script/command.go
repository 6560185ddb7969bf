package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/image-transform/internal/imaging"
)

// Kind classifies a parsed command.
type Kind int

const (
	KindLoad Kind = iota + 1
	KindSave
	KindTransform
	KindQuit
)

// Command is one parsed script line.
type Command struct {
	Kind Kind
	// Word is the command word as written, e.g. "red-component".
	Word string

	// Path and Name are set for load and save.
	Path string
	Name string

	// Request is set for transforms.
	Request imaging.Request
}

// greyscaleWords maps the component commands to their greyscale kind.
var greyscaleWords = map[string]imaging.GreyscaleKind{
	"red-component":       imaging.GreyscaleRed,
	"green-component":     imaging.GreyscaleGreen,
	"blue-component":      imaging.GreyscaleBlue,
	"value-component":     imaging.GreyscaleValue,
	"intensity-component": imaging.GreyscaleIntensity,
	"luma-component":      imaging.GreyscaleLuma,
}

// Parse turns one non-empty, non-comment line into a Command.
//
// Grammar (square brackets mark the optional mask name):
//
//	load <path> <name>
//	save <path> <name>
//	brighten <src> <strength> [mask] <dest>
//	horizontal-flip <src> <dest>
//	vertical-flip <src> <dest>
//	red-component|green-component|blue-component <src> [mask] <dest>
//	value-component|intensity-component|luma-component <src> [mask] <dest>
//	blur|sharpen|greyscale|sepia <src> [mask] <dest>
//	downscale <width-factor> <height-factor> <src> <dest>
//	q|quit
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	word, args := fields[0], fields[1:]
	cmd := Command{Word: word}

	switch word {
	case "q", "Q", "quit":
		cmd.Kind = KindQuit
		return cmd, nil

	case "load", "save":
		if len(args) != 2 {
			return Command{}, arity(word, "<path> <name>")
		}
		cmd.Kind = KindLoad
		if word == "save" {
			cmd.Kind = KindSave
		}
		cmd.Path, cmd.Name = args[0], args[1]
		return cmd, nil

	case "horizontal-flip", "vertical-flip":
		if len(args) != 2 {
			return Command{}, arity(word, "<src> <dest>")
		}
		kind := imaging.FlipHorizontal
		if word == "vertical-flip" {
			kind = imaging.FlipVertical
		}
		return transform(cmd, imaging.Flip{Kind: kind}, args)

	case "brighten":
		if len(args) != 3 && len(args) != 4 {
			return Command{}, arity(word, "<src> <strength> [mask] <dest>")
		}
		strength, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("brighten: invalid strength %q: %w", args[1], imaging.ErrInvalidArgument)
		}
		// The strength sits between the source and the rest of the names.
		names := append([]string{args[0]}, args[2:]...)
		return transform(cmd, imaging.Brighten{Strength: strength}, names)

	case "blur", "sharpen":
		kind, _ := imaging.ParseFilterKind(word)
		return maskable(cmd, imaging.Filter{Kind: kind}, args)

	case "greyscale", "sepia":
		kind, _ := imaging.ParseColorTransformKind(word)
		return maskable(cmd, imaging.ColorTransform{Kind: kind}, args)

	case "downscale":
		if len(args) != 4 {
			return Command{}, arity(word, "<width-factor> <height-factor> <src> <dest>")
		}
		wf, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("downscale: invalid width factor %q: %w", args[0], imaging.ErrInvalidArgument)
		}
		hf, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Command{}, fmt.Errorf("downscale: invalid height factor %q: %w", args[1], imaging.ErrInvalidArgument)
		}
		return transform(cmd, imaging.Downscale{WidthFactor: wf, HeightFactor: hf}, args[2:])
	}

	if kind, ok := greyscaleWords[word]; ok {
		return maskable(cmd, imaging.Greyscale{Kind: kind}, args)
	}
	return Command{}, fmt.Errorf("unknown command %q", word)
}

func maskable(cmd Command, op imaging.Operation, args []string) (Command, error) {
	if len(args) != 2 && len(args) != 3 {
		return Command{}, arity(cmd.Word, "<src> [mask] <dest>")
	}
	return transform(cmd, op, args)
}

// transform fills the request from "<src> <dest>" or "<src> <mask> <dest>".
func transform(cmd Command, op imaging.Operation, args []string) (Command, error) {
	cmd.Kind = KindTransform
	cmd.Request = imaging.Request{Op: op, Source: args[0], Dest: args[len(args)-1]}
	if len(args) == 3 {
		cmd.Request.Mask = args[1]
	}
	return cmd, nil
}

func arity(word, usage string) error {
	return fmt.Errorf("%s: usage: %s %s: %w", word, word, usage, imaging.ErrInvalidArgument)
}
