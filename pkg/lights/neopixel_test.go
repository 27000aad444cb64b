package lights

import (
	"bytes"
	"testing"
)

func TestEncodeFrame_SizeAndLatch(t *testing.T) {
	frame := encodeFrame(ColorOff, 12)

	want := 12*9 + 15
	if len(frame) != want {
		t.Fatalf("Frame length: got %d, want %d", len(frame), want)
	}
	if !bytes.Equal(frame[len(frame)-15:], make([]byte, 15)) {
		t.Error("Latch gap is not all zeros")
	}
}

func TestEncodeFrame_ZeroBits(t *testing.T) {
	// A zero channel is eight 0b100 groups: 100100100100100100100100.
	frame := encodeFrame(ColorOff, 1)
	wantChannel := []byte{0b10010010, 0b01001001, 0b00100100}
	for ch := 0; ch < 3; ch++ {
		got := frame[ch*3 : ch*3+3]
		if !bytes.Equal(got, wantChannel) {
			t.Errorf("Channel %d: got %08b, want %08b", ch, got, wantChannel)
		}
	}
}

func TestEncodeFrame_GRBOrder(t *testing.T) {
	// Pure red: the first (green) channel must be all zero bits, the
	// second (red) all one bits.
	frame := encodeFrame(Color{R: 255}, 1)

	zero := []byte{0b10010010, 0b01001001, 0b00100100}
	ones := []byte{0b11011011, 0b01101101, 0b10110110}

	if !bytes.Equal(frame[0:3], zero) {
		t.Errorf("Green channel: got %08b, want %08b", frame[0:3], zero)
	}
	if !bytes.Equal(frame[3:6], ones) {
		t.Errorf("Red channel: got %08b, want %08b", frame[3:6], ones)
	}
	if !bytes.Equal(frame[6:9], zero) {
		t.Errorf("Blue channel: got %08b, want %08b", frame[6:9], zero)
	}
}

func TestMock_RecordsOps(t *testing.T) {
	m := &Mock{}
	m.On(ColorIdle)
	m.Flash(ColorAlert)
	m.Off()

	ops := m.Ops()
	if len(ops) != 3 || ops[0] != "on" || ops[1] != "flash" || ops[2] != "off" {
		t.Errorf("Ops: got %v", ops)
	}
	if m.Colors()[1] != ColorAlert {
		t.Errorf("Flash color: got %+v", m.Colors()[1])
	}
}
