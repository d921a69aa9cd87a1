package movie

import (
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"

	xdraw "golang.org/x/image/draw"
)

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process. Encoder names
// follow ffmpeg: libx264, h264_nvenc, h264_videotoolbox.
type FFmpegEncoder struct {
	Encoder string
	Quality int
}

// EncodeSequence writes frames to path at the given frame rate. All frames
// are normalized to the first frame's dimensions, rounded down to even
// numbers as yuv420p requires.
func (e *FFmpegEncoder) EncodeSequence(ctx context.Context, frames []image.Image, path string, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("ffmpeg export: no frames")
	}
	if fps <= 0 {
		fps = 10
	}

	b := frames[0].Bounds()
	w := b.Dx() &^ 1
	h := b.Dy() &^ 1
	if w == 0 || h == 0 {
		return fmt.Errorf("ffmpeg export: frame too small (%d×%d)", b.Dx(), b.Dy())
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", e.encoderName(),
	}
	args = append(args, e.qualityArgs()...)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	for i, frame := range frames {
		if err := writeRawRGBA(stdin, frame, w, h); err != nil {
			stdin.Close()
			cmd.Wait()
			return fmt.Errorf("write frame %d: %w", i, err)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w", err)
	}
	return nil
}

func (e *FFmpegEncoder) encoderName() string {
	if e.Encoder == "" {
		return "libx264"
	}
	return e.Encoder
}

func (e *FFmpegEncoder) qualityArgs() []string {
	q := e.Quality
	switch e.encoderName() {
	case "h264_videotoolbox":
		// VideoToolbox takes a bitrate rather than a quality index.
		if q == 0 {
			q = 75
		}
		return []string{"-b:v", fmt.Sprintf("%dk", q*100)}
	case "h264_nvenc":
		if q == 0 {
			q = 28
		}
		return []string{"-cq", fmt.Sprintf("%d", q)}
	default:
		if q == 0 {
			q = 23
		}
		return []string{"-crf", fmt.Sprintf("%d", q), "-preset", "medium"}
	}
}

// writeRawRGBA emits one frame as tightly packed RGBA at w×h, rescaling
// when the frame's own dimensions differ.
func writeRawRGBA(w io.Writer, frame image.Image, width, height int) error {
	b := frame.Bounds()
	rgba, ok := frame.(*image.RGBA)
	if !ok || b.Dx() != width || b.Dy() != height ||
		rgba.Stride != width*4 || b.Min.X != 0 || b.Min.Y != 0 {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), frame, b, xdraw.Src, nil)
		rgba = dst
	}
	_, err := w.Write(rgba.Pix)
	return err
}
