package terminal

import (
	"fmt"
	"time"

	"github.com/freakmaxi/rdrelay/basics/common"
	"github.com/mattn/go-runewidth"
)

const nameWidth = 32
const defaultRefreshInterval = time.Millisecond * 200

// Progress prints the single, rewritten status line of a transfer
type Progress struct {
	output   Output
	verb     string
	interval time.Duration

	lastPrint time.Time
}

// NewProgress creates the progress line, verb describes the direction. Ex: "read", "sent"
func NewProgress(output Output, verb string) *Progress {
	return &Progress{
		output:   output,
		verb:     verb,
		interval: defaultRefreshInterval,
	}
}

// Update prints the line unless the last print is more recent than the refresh interval
func (p *Progress) Update(s *common.Session) {
	now := time.Now()
	if now.Sub(p.lastPrint) < p.interval {
		return
	}
	p.lastPrint = now

	p.output.Rewrite(Line(s, p.verb, now))
}

// Done prints the final line and closes it
func (p *Progress) Done(s *common.Session) {
	p.output.Rewrite(Line(s, p.verb, time.Now()))
	p.output.Println("")
}

func Line(s *common.Session, verb string, now time.Time) string {
	return fmt.Sprintf(
		"%s %s (%d%%) Bytes %s (%s/s)",
		runewidth.Truncate(s.ResourceName, nameWidth, "..."),
		common.SizeToString(s.Transferred),
		s.Percentage(),
		verb,
		common.SizeToString(s.Throughput(now)),
	)
}
