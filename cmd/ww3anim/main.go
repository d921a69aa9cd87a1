package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/ww3anim/internal/archive"
	"github.com/ivlev/ww3anim/internal/config"
	"github.com/ivlev/ww3anim/internal/hindcast"
	"github.com/ivlev/ww3anim/internal/movie"
	"github.com/ivlev/ww3anim/internal/player"
	"github.com/ivlev/ww3anim/internal/render"
	"github.com/ivlev/ww3anim/internal/source"
	"github.com/ivlev/ww3anim/internal/system"
)

func main() {
	system.InitResourceLimits()

	for _, d := range []string{"input/hindcast", "output"} {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Path to a .ww3a hindcast archive (default: most recent file in input/hindcast/)")
	outputPtr := flag.String("output", "", "Output path base (default: generated in output/)")
	delayPtr := flag.Float64("delay", config.DefaultDelay, "Pacing delay between steps in seconds (0 disables pacing)")
	livePtr := flag.Bool("live", false, "Live playback only: no movie buffers are kept")
	formatPtr := flag.String("format", "apng", "Movie format: apng, gif, mp4")
	fpsPtr := flag.Int("fps", 10, "Movie frame rate")
	widthPtr := flag.Int("width", 768, "Surface width in pixels")
	heightPtr := flag.Int("height", 512, "Surface height in pixels")
	palettePtr := flag.String("palette", "", "Color palette: "+strings.Join(render.PaletteNames(), ", "))
	crangePtr := flag.String("crange", "", "Shared color range as min:max (default: derived from the first record)")
	stylePtr := flag.String("style", "", "Path to a YAML style preset")
	fontPtr := flag.String("font", "", "Path to a TTF font for titles")
	sharedPtr := flag.Bool("shared", false, "Tile all channels on one shared surface")
	qrPtr := flag.String("qr", "", "Append a QR outro frame carrying this link")
	encoderPtr := flag.String("encoder", "", "ffmpeg video encoder (default: autodetected)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = encoder default)")
	statsPtr := flag.Bool("stats", false, "Print a performance report")
	packPtr := flag.Int("pack", 0, "Write a synthetic demo archive with N records and exit")

	flag.Parse()

	if *packPtr > 0 {
		if err := packDemo(*packPtr, *inputPtr); err != nil {
			log.Fatalf("[-] Pack failed: %v", err)
		}
		return
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestArchive("input/hindcast")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a .ww3a archive in input/hindcast/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected archive: %s\n", inputPath)
	}

	src, err := source.NewArchiveSource(inputPath)
	if err != nil {
		log.Fatalf("[-] Source init error: %v", err)
	}
	defer src.Close()

	cfg := config.Default()
	cfg.InputPath = inputPath
	cfg.Delay = *delayPtr
	cfg.Movie = !*livePtr
	cfg.Format = *formatPtr
	cfg.FPS = *fpsPtr
	cfg.StylePath = *stylePtr
	cfg.QRLink = *qrPtr
	cfg.Quality = *qualityPtr
	cfg.ShowStats = *statsPtr
	cfg.Render = render.Options{
		Width:    *widthPtr,
		Height:   *heightPtr,
		Palette:  *palettePtr,
		FontPath: *fontPtr,
	}

	if *crangePtr != "" {
		rng, err := parseRange(*crangePtr)
		if err != nil {
			log.Fatalf("[-] Bad -crange: %v", err)
		}
		cfg.Render.ColorRange = rng
	}
	if *sharedPtr {
		parents := make([]int, len(src.Channels()))
		cfg.Render.Parents = parents
	}
	if cfg.StylePath != "" {
		style, err := config.LoadStyle(cfg.StylePath)
		if err != nil {
			log.Fatalf("[-] Style error: %v", err)
		}
		style.Apply(&cfg.Render)
		fmt.Printf("[*] Style preset applied: %s\n", cfg.StylePath)
	}

	cfg.Encoder = *encoderPtr
	if cfg.Format == "mp4" && cfg.Encoder == "" {
		cfg.Encoder = system.GetBestH264Encoder()
		if cfg.Encoder != "libx264" {
			fmt.Printf("[*] Hardware encoder detected: %s\n", cfg.Encoder)
		}
	}

	fmt.Println("--- [WW3 HINDCAST ANIMATION] ---")
	fmt.Printf("[*] Archive: %s | Records: %d | Channels: %d\n", inputPath, src.RecordCount(), len(src.Channels()))
	fmt.Printf("[*] Grid: %d×%d | Delay: %.2fs | Surface: %dx%d\n",
		src.Grid().Rows(), src.Grid().Cols(), cfg.Delay, cfg.Render.Width, cfg.Render.Height)
	fmt.Println("--------------------------------")

	startTime := time.Now()
	p := player.New(src, render.NewPixmapRenderer(), cfg)
	buffers, err := p.Run()
	if err != nil {
		log.Fatalf("[-] Run aborted: %v", err)
	}

	if cfg.Movie {
		if err := exportBuffers(cfg, buffers, outputBase(*outputPtr, inputPath)); err != nil {
			log.Fatalf("[-] Export error: %v", err)
		}
	}

	if cfg.ShowStats {
		t := p.Timings()
		total := time.Since(startTime)
		fmt.Println("--- [PERFORMANCE REPORT] ---")
		fmt.Printf("Total Time: %.2fs\n", total.Seconds())
		fmt.Printf("Fetch: %.2fs | Pace: %.2fs | Update: %.2fs | Capture: %.2fs\n",
			t.Fetch.Seconds(), t.Pace.Seconds(), t.Update.Seconds(), t.Capture.Seconds())
		fmt.Printf("Steps: %d | %s\n", t.Steps+1, system.MemoryReport())
		fmt.Println("----------------------------")
	}

	fmt.Println("[+++] Success!")
}

// exportBuffers writes one movie file per channel. Channels are independent
// sequences, so they encode in parallel.
func exportBuffers(cfg *config.Config, buffers []*movie.Buffer, base string) error {
	var outro image.Image
	if cfg.QRLink != "" {
		var err error
		outro, err = movie.QROutro(cfg.QRLink, cfg.Render.Width, cfg.Render.Height)
		if err != nil {
			return fmt.Errorf("qr outro: %w", err)
		}
	}

	delayCS := 100 / cfg.FPS
	if delayCS < 1 {
		delayCS = 1
	}

	var g errgroup.Group
	for _, b := range buffers {
		g.Go(func() error {
			frames := b.Frames()
			if outro != nil {
				frames = append(append([]image.Image{}, frames...), outro)
			}
			path := fmt.Sprintf("%s_%s.%s", base, b.Channel.Name, cfg.Format)

			var err error
			switch cfg.Format {
			case "apng":
				err = movie.SaveAPNG(path, frames, delayCS)
			case "gif":
				err = movie.SaveGIF(path, frames, delayCS)
			case "mp4":
				enc := &movie.FFmpegEncoder{Encoder: cfg.Encoder, Quality: cfg.Quality}
				err = enc.EncodeSequence(context.Background(), frames, path, cfg.FPS)
			default:
				err = fmt.Errorf("unknown format %q", cfg.Format)
			}
			if err != nil {
				return fmt.Errorf("channel %s: %w", b.Channel.Name, err)
			}
			fmt.Printf("[>] Ready: %s (%d frames)\n", path, len(frames))
			return nil
		})
	}
	return g.Wait()
}

func outputBase(explicit, inputPath string) string {
	if explicit != "" {
		return explicit
	}
	baseName := filepath.Base(inputPath)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s", cleanName, timestamp))
}

func parseRange(s string) (*[2]float64, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("want min:max, got %q", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	if lo >= hi {
		return nil, fmt.Errorf("range [%v,%v] is empty", lo, hi)
	}
	return &[2]float64{lo, hi}, nil
}

// packDemo writes a synthetic hindcast archive so the tool can be exercised
// without real model output.
func packDemo(steps int, path string) error {
	if path == "" {
		path = filepath.Join("input/hindcast", fmt.Sprintf("demo_%d.ww3a", steps))
	}
	ds := hindcast.Demo(steps)

	w, err := archive.Create(path, ds.Grid, ds.Channels)
	if err != nil {
		return err
	}
	for _, rec := range ds.Records {
		if err := w.Append(rec); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Printf("[+++] Demo archive written: %s (%d records)\n", path, steps)
	return nil
}
