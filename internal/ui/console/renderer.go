package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/usbsim/internal/domain"
)

// RAM base addresses shown for the sender and receiver buffers.
const (
	senderBase   = 0x1000
	receiverBase = 0x2000
)

// Renderer turns pipeline events into narration text.
type Renderer struct {
	theme Theme
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Banner is the opening box shown before anything runs.
func (r *Renderer) Banner(content string) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		"LOW-LEVEL USB TRANSFER SIMULATOR",
		fmt.Sprintf("Transferring file %s between two computers", quote(content)),
	)
	return r.theme.Banner.Render(body) + "\n"
}

func (r *Renderer) Render(ev domain.Event) string {
	var b strings.Builder

	switch ev.Kind {
	case domain.EventTransferStarted:
		b.WriteString(r.Banner(ev.Content))
		fmt.Fprintf(&b, "%s %s\n", r.theme.Faint.Render("source:     "), ev.Path)
		fmt.Fprintf(&b, "%s %s\n", r.theme.Faint.Render("destination:"), ev.Dest)
		if ev.TransferID != "" {
			fmt.Fprintf(&b, "%s %s\n", r.theme.Faint.Render("transfer:   "), ev.TransferID)
		}

	case domain.EventPhaseStarted:
		r.renderPhase(&b, ev)

	case domain.EventSourceWritten:
		r.title(&b, "SENDER - STEP 1: Create file")
		fmt.Fprintf(&b, "%s\n", r.theme.Heading.Render(fmt.Sprintf("Creating file %s with content %s", quote(ev.Path), quote(ev.Content))))
		fmt.Fprintf(&b, "%s\n", r.theme.OK.Render("✓ File created"))

	case domain.EventSourceRead:
		r.title(&b, "SENDER - STEP 2: Read file")
		fmt.Fprintf(&b, "%s\n\n", r.theme.Heading.Render("MACHINE CODE:"))
		r.listing(&b, readListing(len([]rune(ev.Content))))
		fmt.Fprintf(&b, "\n%s\n", r.theme.OK.Render("✓ Content read: "+quote(ev.Content)))

	case domain.EventRecordLoaded:
		if ev.Index == 0 {
			r.title(&b, "SENDER - STEP 3: Load into RAM")
		}
		if rec := ev.Record; rec != nil {
			addr := senderBase + ev.Index
			fmt.Fprintf(&b, "Character: %q\n", rec.Character)
			fmt.Fprintf(&b, "  └─ ASCII decimal: %d\n", rec.CodePoint)
			fmt.Fprintf(&b, "  └─ Hexadecimal:   0x%s\n", rec.Hex)
			fmt.Fprintf(&b, "  └─ Binary:        %s\n", rec.Binary)
			fmt.Fprintf(&b, "%s\n", r.theme.Code.Render("Machine code:"))
			r.listing(&b, loadListing(rec.Hex, rec.Binary, addr))
			fmt.Fprintf(&b, "%s\n\n", r.theme.OK.Render(fmt.Sprintf("✓ Byte stored at memory address 0x%04X", addr)))
		}

	case domain.EventChannelReady:
		r.title(&b, "SENDER - STEP 4: USB configuration")
		fmt.Fprintf(&b, "%s\n\n", r.theme.Heading.Render("USB CONTROLLER INITIALIZATION:"))
		r.listing(&b, usbInitListing())
		fmt.Fprintf(&b, "\n%s\n", r.theme.OK.Render("✓ USB port configured and ready to transmit"))

	case domain.EventRecordSent:
		if ev.Index == 0 {
			r.title(&b, "SENDER - STEP 5: USB transmission")
		}
		if rec := ev.Record; rec != nil {
			fmt.Fprintf(&b, "Packet #%d:\n", ev.Index+1)
			fmt.Fprintf(&b, "  Data:   %q (0x%s)\n", rec.Character, rec.Hex)
			fmt.Fprintf(&b, "  Binary: %s\n", rec.Binary)
			r.listing(&b, sendListing(senderBase+ev.Index))
			fmt.Fprintf(&b, "  %s %s\n\n", r.theme.Heading.Render("Sending....."), r.theme.OK.Render("✓ Transmitted"))
		}

	case domain.EventRecordRelayed:
		if rec := ev.Record; rec != nil {
			fmt.Fprintf(&b, "%s\n", r.theme.Heading.Render("Transmitting on D+/D- lines:"))
			fmt.Fprintf(&b, "  Bits: %s\n", r.bits(rec.Binary))
			fmt.Fprintf(&b, "  Checksum: %08b (error control)\n", ev.Checksum)
			fmt.Fprintf(&b, "%s\n\n", r.theme.OK.Render("✓ Packet verified"))
		}

	case domain.EventRecordReceived:
		if rec := ev.Record; rec != nil {
			fmt.Fprintf(&b, "Received: %q → %s (0x%s)\n", rec.Character, rec.Binary, rec.Hex)
		}
		if ev.Index == ev.Total-1 {
			fmt.Fprintf(&b, "\n%s\n", r.theme.OK.Render("✓ All data received"))
		}

	case domain.EventRecordStored:
		if ev.Index == 0 {
			r.title(&b, "RECEIVER - STEP 2: Store in RAM")
		}
		if rec := ev.Record; rec != nil {
			addr := receiverBase + ev.Index
			fmt.Fprintf(&b, "Address: 0x%04X\n", addr)
			fmt.Fprintf(&b, "  Content: %q (%s)\n", rec.Character, rec.Binary)
			r.listing(&b, storeListing(addr))
			b.WriteString("\n")
		}
		if ev.Index == ev.Total-1 {
			fmt.Fprintf(&b, "%s\n", r.theme.OK.Render("✓ Data stored in RAM"))
		}

	case domain.EventDestinationWritten:
		r.title(&b, "RECEIVER - STEP 3: Write to disk")
		fmt.Fprintf(&b, "%s\n\n", r.theme.Heading.Render("CREATING FILE ON DISK:"))
		r.listing(&b, writeListing(len([]rune(ev.Content))))
		fmt.Fprintf(&b, "\n%s\n", r.theme.OK.Render(fmt.Sprintf("✓ File %s created", quote(ev.Path))))
		fmt.Fprintf(&b, "%s\n", r.theme.OK.Render("✓ Content: "+quote(ev.Content)))

	case domain.EventVerified:
		r.title(&b, "RECEIVER - STEP 4: Verification")
		fmt.Fprintf(&b, "%s\n\n", r.theme.Heading.Render("CHECKING FILE INTEGRITY:"))
		fmt.Fprintf(&b, "Original file:  %s\n", quote(ev.Expected))
		fmt.Fprintf(&b, "Received file:  %s\n\n", quote(ev.Content))
		if ev.Outcome {
			fmt.Fprintf(&b, "%s\n", r.theme.OK.Render("✓✓✓ TRANSFER SUCCESSFUL ✓✓✓"))
			fmt.Fprintf(&b, "%s\n", r.theme.OK.Render("The files match exactly"))
		} else {
			fmt.Fprintf(&b, "%s\n", r.theme.Fail.Render("✗ ERROR: the files do not match"))
		}

	case domain.EventTransferFinished:
		r.renderSummary(&b, ev)
	}

	return b.String()
}

// Table lists the byte records of a payload, one row per character.
func (r *Renderer) Table(p domain.Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.theme.Bold.Render(fmt.Sprintf("%-6s %-5s %-4s %-10s %s", "CHAR", "DEC", "HEX", "BINARY", "CHECKSUM")))
	for _, rec := range p {
		fmt.Fprintf(&b, "%-6q %-5d %-4s %-10s %d\n", rec.Character, rec.CodePoint, rec.Hex, rec.Binary, rec.Checksum())
	}
	fmt.Fprintf(&b, "%s\n", r.theme.Faint.Render(fmt.Sprintf("%d byte(s)", len(p))))
	return b.String()
}

func (r *Renderer) renderPhase(b *strings.Builder, ev domain.Event) {
	var name string
	switch ev.Phase {
	case domain.PhaseSender:
		name = "PHASE 1: SENDING COMPUTER"
	case domain.PhaseChannel:
		name = "PHASE 2: USB COMMUNICATION CHANNEL"
	case domain.PhaseReceiver:
		name = "PHASE 3: RECEIVING COMPUTER"
	default:
		name = strings.ToUpper(string(ev.Phase))
	}

	rule := strings.Repeat("*", width)
	fmt.Fprintf(b, "\n\n%s\n%s\n%s\n", r.theme.Phase.Render(rule), r.theme.Phase.Render(center(name)), r.theme.Phase.Render(rule))

	switch ev.Phase {
	case domain.PhaseChannel:
		r.title(b, "USB CHANNEL - Data transmission")
		fmt.Fprintf(b, "%s\n\n", r.theme.Heading.Render("USB PROTOCOL - PHYSICAL LAYER:"))
		b.WriteString("USB cable (4 wires):\n")
		b.WriteString("  VCC  → Power (+5V)\n")
		b.WriteString("  GND  → Ground (0V)\n")
		b.WriteString("  D+   → Data positive\n")
		b.WriteString("  D-   → Data negative\n\n")
	case domain.PhaseReceiver:
		r.title(b, "RECEIVER - STEP 1: USB reception")
		fmt.Fprintf(b, "%s\n\n", r.theme.Heading.Render("RECEIVING DATA FROM THE USB PORT:"))
		r.listing(b, receiveListing())
		b.WriteString("\n")
	}
}

func (r *Renderer) renderSummary(b *strings.Builder, ev domain.Event) {
	r.title(b, "TRANSFER SUMMARY")
	fmt.Fprintf(b, "%s\n\n", r.theme.Bold.Render("System architecture:"))
	b.WriteString("┌─────────────────┐         ┌──────────┐         ┌─────────────────┐\n")
	b.WriteString("│    COMPUTER     │         │  USB     │         │    COMPUTER     │\n")
	b.WriteString("│     SENDER      │ ══════▶ │  CABLE   │ ══════▶ │    RECEIVER     │\n")
	b.WriteString("└─────────────────┘         └──────────┘         └─────────────────┘\n")
	b.WriteString("        │                                                 │\n")
	b.WriteString("        ├─ CPU                                           ├─ CPU\n")
	b.WriteString("        ├─ RAM                                           ├─ RAM\n")
	b.WriteString("        ├─ USB controller                                ├─ USB controller\n")
	b.WriteString("        └─ File system                                   └─ File system\n")

	status := r.theme.OK.Render("SUCCESS")
	if !ev.Outcome {
		status = r.theme.Fail.Render("FAILED")
	}
	fmt.Fprintf(b, "\n%s\n", r.theme.Bold.Render("Statistics:"))
	fmt.Fprintf(b, "  • Bytes transferred: %d\n", ev.Total)
	b.WriteString("  • Protocol: USB 2.0\n")
	b.WriteString("  • Verification: checksum\n")
	fmt.Fprintf(b, "  • Status: %s\n", status)

	fmt.Fprintf(b, "\n%s\n", r.theme.Bold.Render("Files:"))
	fmt.Fprintf(b, "  • Source: %s\n", ev.Path)
	fmt.Fprintf(b, "  • Destination: %s\n", ev.Dest)

	if ev.Outcome {
		fmt.Fprintf(b, "\n%s\n\n", r.theme.OK.Render("SIMULATION COMPLETE!"))
	} else {
		fmt.Fprintf(b, "\n%s\n\n", r.theme.Fail.Render("SIMULATION FINISHED WITH ERRORS"))
	}
}

func (r *Renderer) title(b *strings.Builder, text string) {
	rule := strings.Repeat("=", width)
	fmt.Fprintf(b, "\n%s\n%s\n%s\n\n", r.theme.Title.Render(rule), r.theme.Title.Render(center(text)), r.theme.Title.Render(rule))
}

func (r *Renderer) listing(b *strings.Builder, ins []instruction) {
	for _, in := range ins {
		line := fmt.Sprintf("%s → %s", r.theme.Code.Render(fmt.Sprintf("%-30s", in.Bits)), r.theme.Asm.Render(fmt.Sprintf("%-20s", in.Asm)))
		if in.Comment != "" {
			line += " ; " + in.Comment
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
}

func (r *Renderer) bits(binary string) string {
	parts := make([]string, 0, len(binary))
	for _, c := range binary {
		if c == '1' {
			parts = append(parts, r.theme.Bit1.Render("1"))
		} else {
			parts = append(parts, r.theme.Bit0.Render("0"))
		}
	}
	return strings.Join(parts, " ")
}

func center(s string) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s
}

func quote(s string) string {
	return "'" + s + "'"
}
