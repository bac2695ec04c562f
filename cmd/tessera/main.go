package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"tessera/internal/buildinfo"
	"tessera/internal/logging"
	"tessera/internal/mosaic"
	"tessera/internal/palette"
	"tessera/internal/shutdown"
)

var (
	flagTiles       string
	flagManifest    string
	flagIn          string
	flagOut         string
	flagRows        int
	flagCols        int
	flagTileWidth   int
	flagTileHeight  int
	flagConcurrency int
)

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Tessera - photomosaic assembler",
	Long:  `Tessera builds photomosaics by matching image regions to the nearest-color tile in a library.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s %s\n", buildinfo.Info.Name(), buildinfo.Info.Tag(), buildinfo.Info.Time())
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a mosaic from a source image and a tile library",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagTiles, "tiles", "./tiles", "directory of tile images")
	buildCmd.Flags().StringVar(&flagManifest, "manifest", "", "palette manifest file (overrides --tiles)")
	buildCmd.Flags().StringVar(&flagIn, "in", "", "source image file")
	buildCmd.Flags().StringVar(&flagOut, "out", "mosaic.png", "output file")
	buildCmd.Flags().IntVar(&flagRows, "rows", 64, "mosaic grid rows")
	buildCmd.Flags().IntVar(&flagCols, "cols", 64, "mosaic grid columns")
	buildCmd.Flags().IntVar(&flagTileWidth, "tile-width", 16, "rendered tile width in pixels")
	buildCmd.Flags().IntVar(&flagTileHeight, "tile-height", 16, "rendered tile height in pixels")
	buildCmd.Flags().IntVar(&flagConcurrency, "concurrency", 8, "concurrent tile loads")
	_ = buildCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, done := shutdown.New()
	defer done()
	logger := logging.FromContext(ctx)

	shutdownCh := make(chan error, 1)
	manager, err := palette.New(
		nil,
		shutdownCh,
		palette.WithDir(flagTiles),
		palette.WithManifest(flagManifest),
		palette.WithMaxConcurrentLoads(flagConcurrency),
	)
	if err != nil {
		return fmt.Errorf("palette.New: %w", err)
	}
	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("palette.Run: %w", err)
	}
	defer manager.Stop()

	snapshot, err := manager.Snapshot()
	if err != nil {
		return fmt.Errorf("palette.Snapshot: %w", err)
	}

	f, err := os.Open(flagIn)
	if err != nil {
		return fmt.Errorf("open source image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode source image: %w", err)
	}

	source, err := mosaic.NewSourceImage(img, flagRows, flagCols)
	if err != nil {
		return err
	}
	canvas, err := mosaic.Assemble(ctx, source, snapshot)
	if err != nil {
		return err
	}
	rendered, err := canvas.Render(flagTileWidth, flagTileHeight)
	if err != nil {
		return err
	}

	out, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, rendered); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	logger.Infof("wrote %dx%d mosaic from %d tiles to %s", flagRows, flagCols, snapshot.Len(), flagOut)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
