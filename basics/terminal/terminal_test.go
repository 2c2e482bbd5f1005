package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/freakmaxi/rdrelay/basics/common"
	"github.com/stretchr/testify/assert"
)

func TestStdOut_Rewrite(t *testing.T) {
	buffer := &bytes.Buffer{}
	output := NewOutput(buffer, false)

	output.Rewrite("0123456789")
	output.Rewrite("abc")

	assert.Equal(t, "\r0123456789\rabc       ", buffer.String())
}

func TestStdOut_WideRunes(t *testing.T) {
	buffer := &bytes.Buffer{}
	output := NewOutput(buffer, false)

	output.Print("ファイル")
	output.Rewrite("ab")

	assert.Equal(t, "ファイル\rab      ", buffer.String())
}

func TestStdOut_Remove(t *testing.T) {
	buffer := &bytes.Buffer{}
	output := NewOutput(buffer, false)

	output.Remove(3)
	assert.Equal(t, "", buffer.String())

	output.Print("abc")
	output.Remove(5)
	assert.Equal(t, "abc\033[3D", buffer.String())
}

func TestStdOut_SuccessFailure(t *testing.T) {
	buffer := &bytes.Buffer{}
	output := NewOutput(buffer, false)

	output.Success("finished in %s", "1s")
	output.Failure("failed: %s", "reset")

	assert.Equal(t, "finished in 1s\nfailed: reset\n", buffer.String())
}

func TestLine(t *testing.T) {
	s := common.NewSession("")
	s.Resume(400)
	s.Describe(600, "file.bin")
	s.Stream()
	s.Advance(600)

	line := Line(s, "read", s.Started.Add(time.Second))
	assert.Equal(t, "file.bin 1000b (100%) Bytes read (600b/s)", line)
}

func TestLine_TruncatesName(t *testing.T) {
	s := common.NewSession("")
	s.Describe(10, strings.Repeat("x", 100))

	line := Line(s, "sent", time.Now())
	assert.True(t, strings.HasPrefix(line, strings.Repeat("x", nameWidth-3)+"... "))
}

func TestProgress_Throttle(t *testing.T) {
	buffer := &bytes.Buffer{}
	progress := NewProgress(NewOutput(buffer, false), "read")

	s := common.NewSession("")
	s.Describe(100, "a")
	s.Stream()

	progress.Update(s)
	printed := buffer.Len()
	assert.NotZero(t, printed)

	s.Advance(10)
	progress.Update(s)
	assert.Equal(t, printed, buffer.Len())

	progress.Done(s)
	assert.True(t, strings.HasSuffix(buffer.String(), "\n"))
	assert.Contains(t, buffer.String(), "(10%)")
}

func TestAnimation(t *testing.T) {
	buffer := &bytes.Buffer{}
	output := NewOutput(buffer, false)

	anim := NewAnimation(output, "connecting...")
	anim.Start()
	time.Sleep(time.Millisecond * 250)
	anim.Stop()

	assert.True(t, strings.HasPrefix(buffer.String(), "connecting... |"))
	assert.True(t, strings.HasSuffix(buffer.String(), "ok.\n"))

	buffer.Reset()
	anim = NewAnimation(output, "connecting...")
	anim.Start()
	anim.Cancel()

	assert.True(t, strings.HasSuffix(buffer.String(), "failed.\n"))
}
