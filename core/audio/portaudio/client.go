// Package portaudio is an alternative audio backend on top of PortAudio's
// blocking streams.
package portaudio

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/koscakluka/aeris/core/audio"
)

type Client struct {
	bufferSize int

	input  *portaudio.Stream
	output *portaudio.Stream
	in     []int16
	out    []int16

	mu            sync.Mutex
	leftoverAudio []byte
	marks         []mark

	done chan struct{}
	wg   sync.WaitGroup
}

type mark struct {
	name     string
	position int
	callback func(string)
}

// NewClient opens the default input and output devices. bufferSize is the
// number of samples moved per read or write.
func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	c := &Client{
		bufferSize: bufferSize,
		in:         make([]int16, bufferSize),
		out:        make([]int16, bufferSize),
		done:       make(chan struct{}),
	}

	var err error
	if c.input, err = portaudio.OpenDefaultStream(1, 0, audio.DefaultSampleRate, bufferSize, c.in); err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio input stream: %w", err)
	}
	if c.output, err = portaudio.OpenDefaultStream(0, 1, audio.DefaultSampleRate, bufferSize, c.out); err != nil {
		_ = c.input.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio output stream: %w", err)
	}
	if err := c.output.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to start portaudio output stream: %w", err)
	}

	c.wg.Add(1)
	go c.play()

	return c, nil
}

// Stream delivers captured frames to onAudio until ctx is done.
func (c *Client) Stream(ctx context.Context, onAudio func(audio []byte)) error {
	if err := c.input.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio input stream: %w", err)
	}
	defer c.input.Stop()

	for ctx.Err() == nil {
		if err := c.input.Read(); err != nil {
			logger.Warn("failed to read from portaudio stream", "error", err)
			continue
		}

		frame := make([]byte, 2*len(c.in))
		for i, sample := range c.in {
			binary.LittleEndian.PutUint16(frame[2*i:], uint16(sample))
		}
		onAudio(frame)
	}
	return nil
}

func (c *Client) play() {
	defer c.wg.Done()
	chunkSize := 2 * c.bufferSize

	for {
		select {
		case <-c.done:
			return
		default:
		}

		c.mu.Lock()
		n := min(chunkSize, len(c.leftoverAudio))
		for i := range c.out {
			c.out[i] = 0
			if 2*i+1 < n {
				c.out[i] = int16(binary.LittleEndian.Uint16(c.leftoverAudio[2*i:]))
			}
		}
		c.leftoverAudio = c.leftoverAudio[n:]
		reached := c.advanceMarks(n)
		c.mu.Unlock()

		for _, m := range reached {
			m.callback(m.name)
		}

		if err := c.output.Write(); err != nil {
			logger.Warn("failed to write to portaudio stream", "error", err)
		}
	}
}

// advanceMarks must be called with mu held.
func (c *Client) advanceMarks(consumed int) []mark {
	passed := 0
	for i := range c.marks {
		c.marks[i].position -= consumed
		if len(c.leftoverAudio) == 0 || c.marks[i].position <= 0 {
			passed = i + 1
		}
	}
	reached := c.marks[:passed:passed]
	c.marks = c.marks[passed:]
	return reached
}

func (c *Client) SendAudio(audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leftoverAudio = append(c.leftoverAudio, audio...)
	return nil
}

// ClearBuffer drops queued audio and releases pending marks.
func (c *Client) ClearBuffer() {
	c.mu.Lock()
	c.leftoverAudio = nil
	released := c.marks
	c.marks = nil
	c.mu.Unlock()

	for _, m := range released {
		m.callback(m.name)
	}
}

// Mark calls callback once every audio queued before it has been played.
func (c *Client) Mark(name string, callback func(string)) error {
	if callback == nil {
		return fmt.Errorf("mark %q has no callback", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.marks = append(c.marks, mark{name: name, position: len(c.leftoverAudio), callback: callback})
	return nil
}

func (c *Client) Close() {
	close(c.done)
	c.wg.Wait()
	_ = c.output.Stop()
	_ = c.output.Close()
	_ = c.input.Close()
	_ = portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}
