package terminal

import (
	"time"
)

const animationInterval = time.Millisecond * 100

var frames = []string{"/", "-", "\\", "|"}

// Animation spins next to the header until the awaited step reports its result
type Animation struct {
	output Output
	header string

	result chan bool
	done   chan struct{}
}

func NewAnimation(output Output, header string) *Animation {
	return &Animation{
		output: output,
		header: header,
		result: make(chan bool),
		done:   make(chan struct{}),
	}
}

func (a *Animation) Start() {
	a.output.Printf("%s |", a.header)
	go a.spin()
}

func (a *Animation) spin() {
	defer close(a.done)

	ticker := time.NewTicker(animationInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case ok := <-a.result:
			a.output.Remove(1)
			if ok {
				a.output.Println("ok.")
			} else {
				a.output.Println("failed.")
			}
			return
		case <-ticker.C:
			a.output.Remove(1)
			a.output.Print(frames[frame%len(frames)])
		}
	}
}

// Stop ends the animation with success
func (a *Animation) Stop() {
	a.finish(true)
}

// Cancel ends the animation with failure
func (a *Animation) Cancel() {
	a.finish(false)
}

func (a *Animation) finish(ok bool) {
	a.result <- ok
	<-a.done
}
