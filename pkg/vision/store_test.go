package vision

import (
	"sync"
	"testing"
	"time"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

func TestStore_EmptyUntilFirstPublish(t *testing.T) {
	s := NewStore()

	if _, ok := s.Frame(); ok {
		t.Error("Frame reported present before any publish")
	}
	if _, ok := s.State(); ok {
		t.Error("State reported present before any publish")
	}
}

func TestStore_FrameIsCopiedBothWays(t *testing.T) {
	s := NewStore()

	buf := []byte{1, 2, 3}
	s.PublishFrame(Frame{JPEG: buf, Timestamp: time.Now()})

	// Mutating the writer's buffer must not affect the stored frame
	buf[0] = 99
	got, ok := s.Frame()
	if !ok {
		t.Fatal("Expected a frame")
	}
	if got.JPEG[0] != 1 {
		t.Errorf("Stored frame aliased writer buffer: got %d, want 1", got.JPEG[0])
	}

	// Mutating the reader's copy must not affect later reads
	got.JPEG[1] = 99
	again, _ := s.Frame()
	if again.JPEG[1] != 2 {
		t.Errorf("Stored frame aliased reader copy: got %d, want 2", again.JPEG[1])
	}
}

func TestStore_LatestFrameWins(t *testing.T) {
	s := NewStore()

	s.PublishFrame(Frame{JPEG: []byte{1}})
	s.PublishFrame(Frame{JPEG: []byte{2}})

	got, _ := s.Frame()
	if got.JPEG[0] != 2 {
		t.Errorf("Expected newest frame, got %d", got.JPEG[0])
	}
}

func TestStore_StateDeepCopiesBoxes(t *testing.T) {
	s := NewStore()

	box := &detection.Region{X: 10, Y: 20, W: 30, H: 40}
	s.PublishState(State{
		Left: SubjectState{Stable: emotion.Angry, Box: box},
	})

	// Mutating the published pointer must not reach the store
	box.X = 999
	got, ok := s.State()
	if !ok {
		t.Fatal("Expected a state")
	}
	if got.Left.Box.X != 10 {
		t.Errorf("State aliased writer box: got %d, want 10", got.Left.Box.X)
	}

	// Mutating the read copy must not reach later reads
	got.Left.Box.W = 999
	again, _ := s.State()
	if again.Left.Box.W != 30 {
		t.Errorf("State aliased reader box: got %d, want 30", again.Left.Box.W)
	}
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Fast loop: writes frames, reads states
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := byte(0)
		for {
			select {
			case <-stop:
				return
			default:
			}
			s.PublishFrame(Frame{JPEG: []byte{i, i}})
			s.State()
			i++
		}
	}()

	// Worker: reads frames, writes states
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if f, ok := s.Frame(); ok {
				// A frame must never be torn
				if len(f.JPEG) == 2 && f.JPEG[0] != f.JPEG[1] {
					t.Error("Observed a torn frame")
					return
				}
			}
			s.PublishState(State{Left: SubjectState{Stable: emotion.Neutral}})
		}
	}()

	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()
}
