package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AnotherFullstackDev/awsecr/internal/container_image"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	"github.com/docker/go-units"
	"github.com/fatih/color"
)

// PushPrinter writes the progress of an image push, one line per event.
type PushPrinter struct {
	ui      UI
	success *color.Color
	now     func() time.Time
	started time.Time
}

// NewPushPrinter colors its output only when out is a terminal.
func NewPushPrinter(ui UI, out io.Writer) *PushPrinter {
	success := color.New(color.FgGreen)
	if !lib.IsTerminal(out) {
		success.DisableColor()
	}

	return &PushPrinter{ui: ui, success: success, now: time.Now}
}

func (p *PushPrinter) Authenticating(registry string) {
	p.started = p.now()
	p.ui.BeginLinef("Authenticating against %s... ", registry)
}

func (p *PushPrinter) Authenticated() {
	p.ui.PrintLinef("%s", p.success.Sprint("done"))
}

func (p *PushPrinter) Event(event container_image.ProgressEvent) {
	switch e := event.(type) {
	case container_image.LayerProgress:
		p.ui.PrintLinef("layer: %s, progress: %s", e.LayerID, e.Progress)
	case container_image.Tick:
		p.ui.PrintLinef(".")
	}
}

func (p *PushPrinter) Finished() {
	elapsed := strings.ToLower(units.HumanDuration(p.now().Sub(p.started)))
	p.ui.PrintLinef("%s", p.success.Sprint(fmt.Sprintf("Upload finished in %s", elapsed)))
}
