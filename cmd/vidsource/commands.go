package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gocv.io/x/gocv"

	"github.com/kmmndr/movement_detector/internal/frame"
	"github.com/kmmndr/movement_detector/internal/paths"
	"github.com/kmmndr/movement_detector/internal/video"
)

func (e *env) open(c *cli.Context) (*video.Source, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("expected one video path, got %d arguments", c.NArg())
	}
	return video.Open(c.Args().First(), video.WithLogger(e.log))
}

// outputPath returns the --out flag, or a file named after the video in the
// configured output directory.
func (e *env) outputPath(c *cli.Context, s *video.Source, suffix string) string {
	if out := c.String("out"); out != "" {
		return out
	}
	base := strings.TrimSuffix(s.Name(), filepath.Ext(s.Name()))
	return filepath.Join(e.cfg.OutputDir, base+suffix)
}

func printInfo(w io.Writer, s *video.Source) {
	width, height := s.FrameShape()
	fmt.Fprintf(w, "Name: %s\n", s.Name())
	fmt.Fprintf(w, "Frame shape: %dx%d\n", width, height)
	fmt.Fprintf(w, "Frame rate: %.2f fps\n", s.FrameRate())
	fmt.Fprintf(w, "Frame count: %d\n", s.FrameCount())
	if duration, err := s.Duration(); err != nil {
		fmt.Fprintf(w, "Duration: unknown (%v)\n", err)
	} else {
		fmt.Fprintf(w, "Duration: %.2f seconds\n", duration)
	}
}

func infoCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print frame shape, frame rate, frame count and duration",
		ArgsUsage: "<video>",
		Action: func(c *cli.Context) error {
			s, err := e.open(c)
			if err != nil {
				return err
			}
			defer s.Close()

			printInfo(c.App.Writer, s)
			return nil
		},
	}
}

func frameCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "frame",
		Usage:     "write one frame as an image",
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Usage: "zero-based frame index"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output image (default <output_dir>/<name>-frame-<index>.png)"},
			&cli.BoolFlag{Name: "gray", Usage: "write a single-channel image"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.open(c)
			if err != nil {
				return err
			}
			defer s.Close()

			index := c.Int("index")
			f, err := s.Frame(index)
			if errors.Is(err, video.ErrEndOfStream) {
				return fmt.Errorf("frame %d is past the end of %s (%d frames)", index, s.Name(), s.FrameCount())
			}
			if err != nil {
				return err
			}
			defer f.Close()

			if c.Bool("gray") {
				gray, err := f.Gray()
				if err != nil {
					return err
				}
				defer gray.Close()
				f = gray
			}

			out := e.outputPath(c, s, fmt.Sprintf("-frame-%d.png", index))
			if !gocv.IMWrite(out, *f.Mat()) {
				return fmt.Errorf("unable to write image %s", out)
			}
			e.log.Info("Wrote frame %d to %s", index, out)

			return nil
		},
	}
}

func sumCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sum",
		Usage:     "accumulate every frame and write the mean image",
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output image (default <output_dir>/<name>-mean.png)"},
			&cli.BoolFlag{Name: "gray", Usage: "write a single-channel image"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.open(c)
			if err != nil {
				return err
			}
			defer s.Close()

			acc, err := s.FramesSum()
			if err != nil {
				return err
			}
			defer acc.Close()

			mean, err := acc.Mean()
			if err != nil {
				return err
			}
			defer mean.Close()

			mat := gocv.NewMat()
			mean.ConvertTo(&mat, gocv.MatTypeCV8U)
			image, err := frame.NewFrame(acc.Count(), &mat)
			if err != nil {
				mat.Close()
				return err
			}
			defer image.Close()

			if c.Bool("gray") {
				gray, err := image.Gray()
				if err != nil {
					return err
				}
				defer gray.Close()
				image = gray
			}

			out := e.outputPath(c, s, "-mean.png")
			if !gocv.IMWrite(out, *image.Mat()) {
				return fmt.Errorf("unable to write image %s", out)
			}
			fmt.Fprintf(c.App.Writer, "Accumulated frames: %d\n", acc.Count())
			e.log.Info("Wrote mean image to %s", out)

			return nil
		},
	}
}

func statsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "print the per-channel average of the per-pixel mean and standard deviation",
		ArgsUsage: "<video>",
		Action: func(c *cli.Context) error {
			s, err := e.open(c)
			if err != nil {
				return err
			}
			defer s.Close()

			acc, err := s.Stats()
			if err != nil {
				return err
			}
			defer acc.Close()

			mean, err := acc.Mean()
			if err != nil {
				return err
			}
			defer mean.Close()

			std, err := acc.Std()
			if err != nil {
				return err
			}
			defer std.Close()

			w := c.App.Writer
			fmt.Fprintf(w, "Frames: %d\n", acc.Count())
			fmt.Fprintf(w, "Mean: %s\n", formatChannels(mean.Mean(), mean.Channels()))
			fmt.Fprintf(w, "Std: %s\n", formatChannels(std.Mean(), std.Channels()))

			return nil
		},
	}
}

func formatChannels(s gocv.Scalar, channels int) string {
	values := []float64{s.Val1, s.Val2, s.Val3, s.Val4}[:min(channels, 4)]
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, " ")
}

func scanCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "list the videos of a directory with their metadata",
		ArgsUsage: "[dir]",
		Action: func(c *cli.Context) error {
			dir := c.Args().First()
			if dir == "" {
				project, err := paths.ProjectDir(e.cfg.ProjectMarker)
				if err != nil {
					return err
				}
				dir = filepath.Join(project, e.cfg.VideoDir)
			}
			e.log.Info("Scanning %s", dir)

			files, err := paths.VideoFiles(dir, e.cfg.Extensions)
			if err != nil {
				return err
			}

			w := c.App.Writer
			for _, file := range files {
				s, err := video.Open(file, video.WithLogger(e.log))
				if err != nil {
					e.log.Warn("Skipping %s: %v", file, err)
					continue
				}
				fmt.Fprintf(w, "%s\n", file)
				printInfo(w, s)
				fmt.Fprintln(w)
				s.Close()
			}

			return nil
		},
	}
}
