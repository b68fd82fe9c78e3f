// Command embroider renders an image with the pixel-art embroidery effect.
//
//	embroider -i photo.jpg -texture cross -size 12 -mode multiply -o out.png
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/embroidery"
	"github.com/setanarut/embroidery/textures"
	"github.com/setanarut/embroidery/utils"
)

func main() {
	input := flag.String("i", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
	output := flag.String("o", utils.DefaultOutputName, "output file (png or jpeg)")
	texture := flag.String("texture", "texture", "built-in texture name or texture image path")
	size := flag.Int("size", embroidery.DefaultOptions().PixelSize, "cell size in pixels")
	mode := flag.String("mode", embroidery.Multiply.String(), "blend mode: "+modeNames())
	maxW := flag.Int("max-width", 0, "fit the render into this width (0 = source width)")
	maxH := flag.Int("max-height", 0, "fit the render into this height (0 = source height)")
	paletteN := flag.Int("palette", 0, "snap cells to a palette of N colors extracted from the input")
	paletteMethod := flag.String("palette-method", "dominant", "palette extraction: dominant or kmeans")
	legacy := flag.Bool("legacy", false, "multiply only, ignore transparency")
	list := flag.Bool("list", false, "list built-in textures and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	embroidery.SetLogger(logger)

	if *list {
		for _, name := range textures.Names() {
			fmt.Printf("%-8s %s\n", name, utils.FormatTextureName(name))
		}
		return
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "embroider: -i is required")
		flag.Usage()
		os.Exit(2)
	}

	opt := embroidery.DefaultOptions()
	if *legacy {
		opt = embroidery.LegacyOptions()
	} else {
		m, err := embroidery.ParseBlendMode(*mode)
		if err != nil {
			fatal(logger, err)
		}
		opt.Mode = m
	}
	opt.PixelSize = *size
	opt.MaxSize = image.Pt(*maxW, *maxH)

	if err := run(logger, *input, *output, *texture, *paletteN, *paletteMethod, opt); err != nil {
		fatal(logger, err)
	}
}

func run(logger *slog.Logger, input, output, texture string, paletteN int, paletteMethod string, opt embroidery.Options) error {
	src, err := utils.ReadImage(input)
	if err != nil {
		return err
	}
	tex, err := utils.LoadTexture(texture)
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	if paletteN > 0 {
		method, err := utils.ParsePaletteMethod(paletteMethod)
		if err != nil {
			return err
		}
		opt.Palette = utils.ExtractPalette(src, paletteN, method)
		utils.SortPaletteByBrightness(opt.Palette)
	}

	st := embroidery.NewStylizer(src, tex)
	out, err := st.Render(opt)
	if err != nil {
		return err
	}
	if err := utils.SaveImage(out, output); err != nil {
		return err
	}

	var fileSize int64
	if fi, err := os.Stat(input); err == nil {
		fileSize = fi.Size()
	}
	cfg, _ := st.Config(opt)
	summary := utils.Summarize(embroidery.CellColors(st.Fitted(opt.MaxSize), opt.PixelSize, cfg.HasAlpha), cfg.HasAlpha)
	logger.Info("stylized",
		"source", strings.ToUpper(filepath.Base(input)),
		"size", utils.FormatFileSize(fileSize),
		"dims", fmt.Sprintf("%dx%d", out.Rect.Dx(), out.Rect.Dy()),
		"texture", utils.FormatTextureName(texture),
		"mode", opt.Mode,
		"alpha", cfg.HasAlpha,
		"cells", summary.String(),
		"output", output)
	return nil
}

func modeNames() string {
	var names []string
	for _, m := range embroidery.BlendModes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("embroider failed", "err", err)
	os.Exit(1)
}
