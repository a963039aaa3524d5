package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ivlev/asciimator/internal/animation"
	"github.com/ivlev/asciimator/internal/codec"
	"github.com/ivlev/asciimator/internal/config"
	"github.com/ivlev/asciimator/internal/export"
	"github.com/ivlev/asciimator/internal/generate"
	"github.com/ivlev/asciimator/internal/player"
	"github.com/ivlev/asciimator/internal/system"
	"github.com/ivlev/asciimator/internal/terminal"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var menu = []string{
	"1. Play animation",
	"2. Edit current frame",
	"3. Add new frame",
	"4. Delete current frame",
	"5. Reorder frames",
	"6. Adjust speed (current: %dms)",
	"7. Save animation",
	"8. Load animation",
	"g. Add QR code frame",
	"x. Export GIF",
	"n/p. Next/previous frame   r. Rewind",
	"q. Quit",
}

// Shell is the interactive menu around one animation.
type Shell struct {
	cfg    *config.Config
	term   *terminal.Session
	anim   *animation.Animation
	sinks  []player.Sink
	status string
}

// New creates a Shell editing anim. Extra sinks receive played frames in
// addition to the screen.
func New(cfg *config.Config, term *terminal.Session, anim *animation.Animation, sinks ...player.Sink) *Shell {
	return &Shell{cfg: cfg, term: term, anim: anim, sinks: sinks}
}

// Animation returns the animation currently being edited. It changes after a
// successful load.
func (s *Shell) Animation() *animation.Animation {
	return s.anim
}

// Run shows the menu and dispatches keys until quit, end of input or ctx
// cancellation.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.render()

		key, err := s.term.ReadKey()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		s.status = ""
		switch key {
		case '1':
			err = s.play(ctx)
		case '2':
			err = s.editFrame()
		case '3':
			err = s.addFrame()
		case '4':
			err = s.deleteFrame()
		case '5':
			err = s.reorder()
		case '6':
			err = s.adjustSpeed()
		case '7':
			err = s.save()
		case '8':
			err = s.load()
		case 'g':
			err = s.addQR()
		case 'x':
			err = s.export(ctx)
		case 'n':
			_, err = s.anim.NextFrame()
		case 'p':
			err = s.previous()
		case 'r':
			err = s.anim.SetCursor(0)
		case 'q', 3:
			return nil
		}

		if errors.Is(err, terminal.ErrInterrupted) {
			s.status = "cancelled"
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			log.Printf("[!] %v", err)
			s.status = "[!] " + err.Error()
		}
	}
}

func (s *Shell) render() {
	s.term.Clear()
	if f, err := s.anim.Current(); err == nil {
		for _, line := range f.Lines() {
			s.term.Println(line)
		}
	}

	s.term.Printf("\n%s %s\n", titleStyle.Render("Main Menu"),
		dimStyle.Render(fmt.Sprintf("frame %d/%d", s.anim.Cursor()+1, s.anim.Len())))
	for _, item := range menu {
		if strings.Contains(item, "%d") {
			item = fmt.Sprintf(item, s.anim.Speed())
		}
		s.term.Println(item)
	}
	if s.status != "" {
		s.term.Printf("\n%s\n", statusStyle.Render(s.status))
	}
}

func (s *Shell) play(ctx context.Context) error {
	sinks := append([]player.Sink{player.ScreenSink{Screen: s.term}}, s.sinks...)
	shown, err := player.New(s.cfg.PlayTicks, sinks...).Play(ctx, s.anim, s.term.Keys())
	if err != nil {
		return err
	}
	s.status = fmt.Sprintf("played %d frames", shown)
	return nil
}

func (s *Shell) editFrame() error {
	index := s.anim.Cursor()
	if _, err := s.anim.FrameAt(index); err != nil {
		return err
	}

	s.term.Clear()
	s.term.Println("Editing current frame. Commands:")
	s.term.Println("'a' to add a line, 'e <line_number>' to edit a line, 'd <line_number>' to delete a line")
	s.term.Println("'q' to finish editing")

	for {
		frame, err := s.anim.FrameAt(index)
		if err != nil {
			return err
		}
		for i, line := range frame.Lines() {
			s.term.Printf("%d: %s\n", i, line)
		}

		command, err := s.term.ReadLine()
		if err != nil {
			return err
		}
		parts := strings.Fields(command)
		if len(parts) == 0 {
			s.term.Println("Invalid command")
			continue
		}

		switch parts[0] {
		case "a":
			line, err := s.term.Prompt("Enter new line:\n")
			if err != nil {
				return err
			}
			err = s.anim.EditFrame(index, func(f *animation.Frame) error {
				f.AppendLine(line)
				return nil
			})
			if err != nil {
				return err
			}
		case "e":
			n, err := lineNumber(parts)
			if err == nil {
				err = checkLine(frame, n)
			}
			if err != nil {
				s.term.Printf("%v\n", err)
				continue
			}
			line, err := s.term.Prompt(fmt.Sprintf("Enter new content for line %d:\n", n))
			if err != nil {
				return err
			}
			err = s.anim.EditFrame(index, func(f *animation.Frame) error {
				return f.SetLine(n, line)
			})
			if err != nil {
				s.term.Printf("%v\n", err)
			}
		case "d":
			n, err := lineNumber(parts)
			if err == nil {
				err = s.anim.EditFrame(index, func(f *animation.Frame) error {
					return f.DeleteLine(n)
				})
			}
			if err != nil {
				s.term.Printf("%v\n", err)
			}
		case "q":
			return nil
		default:
			s.term.Println("Invalid command")
		}
	}
}

func lineNumber(parts []string) (int, error) {
	if len(parts) < 2 {
		return 0, fmt.Errorf("missing line number")
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid line number %q", parts[1])
	}
	return n, nil
}

func checkLine(f animation.Frame, n int) error {
	if n < 0 || n >= f.LineCount() {
		return fmt.Errorf("%w: line %d not in [0, %d)", animation.ErrIndexOutOfRange, n, f.LineCount())
	}
	return nil
}

func (s *Shell) addFrame() error {
	s.term.Clear()
	s.term.Println("Adding a new frame. Enter content (empty line to finish):")

	var lines []string
	for {
		line, err := s.term.ReadLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}

	if len(lines) == 0 {
		s.status = "no frame added"
		return nil
	}
	s.anim.AddFrame(animation.NewFrame(lines...))
	s.status = fmt.Sprintf("added frame %d", s.anim.Len())
	return nil
}

func (s *Shell) deleteFrame() error {
	before := s.anim.Len()
	if err := s.anim.DeleteFrame(s.anim.Cursor()); err != nil {
		return err
	}
	if s.anim.Len() == before {
		s.status = "cannot delete the only frame"
	}
	return nil
}

func (s *Shell) reorder() error {
	s.term.Clear()
	s.term.Println("Current frame order:")
	for i, f := range s.anim.Frames() {
		s.term.Printf("%d. %d lines\n", i, f.LineCount())
	}

	input, err := s.term.Prompt("\nEnter the frame number to move, followed by its new position:\n")
	if err != nil {
		return err
	}
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return fmt.Errorf("expected two frame numbers, got %q", input)
	}
	from, err1 := strconv.Atoi(parts[0])
	to, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("invalid frame numbers %q", input)
	}
	if err := s.anim.MoveFrame(from, to); err != nil {
		return err
	}
	s.status = fmt.Sprintf("moved frame %d to %d", from, to)
	return nil
}

func (s *Shell) adjustSpeed() error {
	input, err := s.term.Prompt("Enter new speed in milliseconds:\n")
	if err != nil {
		return err
	}
	ms, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("invalid speed %q", input)
	}
	return s.anim.SetSpeed(ms)
}

func (s *Shell) save() error {
	filename, err := s.term.Prompt("Enter filename to save (empty for a new file):\n")
	if err != nil {
		return err
	}
	filename = strings.TrimSpace(filename)
	format := codec.Format(s.cfg.Format)
	if filename == "" {
		if err := os.MkdirAll(s.cfg.AnimationsDir, 0755); err != nil {
			return err
		}
		filename = codec.GeneratePath(s.cfg.AnimationsDir, format)
	}

	if err := codec.Save(filename, s.anim, format); err != nil {
		return err
	}
	log.Printf("[+++] Animation saved to %s", filename)
	s.status = fmt.Sprintf("Animation saved to %s", filename)
	return nil
}

func (s *Shell) load() error {
	filename, err := s.term.Prompt("Enter filename to load ('latest' for the newest):\n")
	if err != nil {
		return err
	}
	filename = strings.TrimSpace(filename)
	if filename == "latest" {
		filename, err = system.FindLatestAnimation(s.cfg.AnimationsDir)
		if err != nil {
			return err
		}
	}

	loaded, err := codec.Load(filename)
	if err != nil {
		return err
	}
	s.anim = loaded
	log.Printf("[*] Animation loaded from %s", filename)
	s.status = fmt.Sprintf("Animation loaded from %s", filename)
	return nil
}

func (s *Shell) addQR() error {
	text, err := s.term.Prompt("Enter text to encode:\n")
	if err != nil {
		return err
	}
	f, err := generate.QR(text)
	if err != nil {
		return err
	}
	s.anim.AddFrame(f)
	s.status = fmt.Sprintf("added QR frame %d", s.anim.Len())
	return nil
}

func (s *Shell) export(ctx context.Context) error {
	path, err := s.term.Prompt("Enter GIF filename (empty for a new file):\n")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		if err := os.MkdirAll(s.cfg.AnimationsDir, 0755); err != nil {
			return err
		}
		path = export.DefaultPath(s.cfg.AnimationsDir)
	}

	opts, err := export.OptionsFromConfig(s.cfg.Export)
	if err != nil {
		return err
	}
	res, err := export.WriteFile(ctx, s.anim, path, opts)
	if err != nil {
		return err
	}
	s.status = fmt.Sprintf("exported %d frames to %s", res.Frames, res.Path)

	if s.cfg.Export.ShowStats {
		stats, err := system.ReadStats()
		if err != nil {
			log.Printf("[!] Could not read stats: %v", err)
			return nil
		}
		log.Print(system.Report(s.cfg.BuildVersion, res.Frames, res.Elapsed, stats))
	}
	return nil
}

func (s *Shell) previous() error {
	n := s.anim.Len()
	if n == 0 {
		return animation.ErrEmptyAnimation
	}
	return s.anim.SetCursor((s.anim.Cursor() - 1 + n) % n)
}
