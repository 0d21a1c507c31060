// Command livesvg renders a YAML scene file to SVG markup, and
// optionally to a PNG preview.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"go.uber.org/zap"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svgelem"
	"github.com/benoitkugler/livesvg/svgraster"
	"github.com/benoitkugler/livesvg/svgrender"
)

func main() {
	var (
		sceneFile = flag.String("scene", "", "Path to the YAML scene file")
		outFile   = flag.String("out", "", "Write the SVG markup to this file (default stdout)")
		pngFile   = flag.String("png", "", "Also rasterize the scene to this PNG file")
		width     = flag.Int("w", 256, "Raster width in pixels")
		height    = flag.Int("h", 256, "Raster height in pixels")
		fit       = flag.Bool("fit", false, "Shrink the view box to the drawn content")
		verbose   = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: livesvg -scene <scene.yaml> [-out out.svg] [-png out.png] [-w 256 -h 256] [-fit] [-v]")
		os.Exit(1)
	}

	if err := run(*sceneFile, *outFile, *pngFile, *width, *height, *fit, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneFile, outFile, pngFile string, width, height int, fit, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()
	}

	data, err := os.ReadFile(sceneFile)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	sc, err := LoadScene(data)
	if err != nil {
		return err
	}

	doc := svgdom.NewMemory()
	opts := []svgrender.Option{svgrender.WithLogger(log)}
	if len(sc.ViewBox) == 4 {
		opts = append(opts, svgrender.WithViewBox(sc.ViewBox[0], sc.ViewBox[1], sc.ViewBox[2], sc.ViewBox[3]))
	}
	r, err := svgrender.New(doc, nil, opts...)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	if err := Build(sc, r); err != nil {
		return err
	}
	log.Info("scene rendered",
		zap.Int("shapes", len(sc.Shapes)),
		zap.Int("definitions", r.Defs().Len()))

	if fit {
		box, err := svgraster.ContentBounds(doc, svgraster.WarnErrorMode, svgraster.WithLogger(log))
		if err != nil {
			return fmt.Errorf("measure content: %w", err)
		}
		if box.W > 0 && box.H > 0 {
			if err := r.SetViewBox(box.X, box.Y, box.W, box.H); err != nil {
				return fmt.Errorf("fit view box: %w", err)
			}
			log.Info("view box fitted",
				zap.Float64("width", box.W), zap.Float64("height", box.H))
		}
	}

	markup := doc.MarkupString()
	if outFile == "" {
		fmt.Println(markup)
	} else {
		if err := os.WriteFile(outFile, []byte(markup+"\n"), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	if pngFile != "" {
		if err := writePNG(doc, sc, pngFile, width, height, log); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(doc svgdom.Document, sc Scene, file string, width, height int, log *zap.Logger) error {
	opts := []svgraster.Option{svgraster.WithLogger(log)}
	if sc.Background != "" {
		bg, err := svgelem.ParseHex(sc.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		opts = append(opts, svgraster.WithBackground(bg))
	}
	img, err := svgraster.Rasterize(doc, width, height, svgraster.WarnErrorMode, opts...)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
