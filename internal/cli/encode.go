package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ui/console"
)

func encodeCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "encode <text>",
		Short: "Show the byte records of a text without transferring it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := domain.EncodePayload(args[0])
			if err != nil {
				return err
			}
			return printPayload(cmd.OutOrStdout(), payload, format)
		},
	}

	c.Flags().StringVar(&format, "format", domain.FormatPretty, "Output format: pretty|plain|json")
	return c
}

func printPayload(w io.Writer, p domain.Payload, format string) error {
	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case domain.FormatPretty, "":
		_, err := fmt.Fprint(w, console.NewRenderer(console.DefaultTheme()).Table(p))
		return err
	case domain.FormatPlain:
		_, err := fmt.Fprint(w, console.NewRenderer(console.PlainTheme()).Table(p))
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|plain|json)", format)
	}
}
