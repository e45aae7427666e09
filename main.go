package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shoccho/pnGo/config"
	"github.com/shoccho/pnGo/logging"
	"github.com/shoccho/pnGo/pngDecoder"
	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:           "pnGo",
	Short:         "Decode 8-bit RGBA PNG files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		config.Config.LogLevel = level
		logging.SetLevel(level)
		return nil
	},
}

var logLevel string

func init() {
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", config.Config.LogLevel.String(), "trace, debug, info, warn or error")
	flags.IntVar(&config.Config.InflateChunkSize, "inflate-chunk-size", config.Config.InflateChunkSize, "initial size and growth step of the inflate buffer, in bytes")
	flags.BoolVar(&config.Config.AllowMissingIEND, "allow-missing-iend", config.Config.AllowMissingIEND, "accept files that end without an IEND chunk")

	infoCommand := &cobra.Command{
		Use:   "info <file.png>",
		Short: "Print the header of a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := pngDecoder.DecodeFile(args[0])
			if err != nil {
				return err
			}
			desc := img.Descriptor
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:       %s\n", img.Filename)
			fmt.Fprintf(out, "width:      %d\n", desc.Width)
			fmt.Fprintf(out, "height:     %d\n", desc.Height)
			fmt.Fprintf(out, "bit depth:  %d\n", desc.BitDepth)
			fmt.Fprintf(out, "color type: %v\n", desc.ColorType)
			fmt.Fprintf(out, "pixels:     %d bytes\n", len(img.Pix))
			return nil
		},
	}
	rootCommand.AddCommand(infoCommand)

	convertCommand := &cobra.Command{
		Use:   "convert <in.png> <out.{ppm,bmp,tif,tiff}>",
		Short: "Decode a PNG file and write it in another format",
		Long:  "Decode a PNG file and write it as PPM (alpha is dropped), BMP or TIFF, chosen by the output extension.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(args[0], args[1])
		},
	}
	rootCommand.AddCommand(convertCommand)
}

func main() {
	defer logging.LogPanics(nil)

	if err := rootCommand.Execute(); err != nil {
		event := logging.Error().Err(err)
		if kind := pngDecoder.KindOf(err); kind != 0 {
			event = event.Stringer("kind", kind)
		}
		event.Msg("pnGo failed")
		os.Exit(1)
	}
}
