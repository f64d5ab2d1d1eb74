package cpu

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/mmu"
)

func TestFlags(t *testing.T) {
	c := NewCPU(mmu.NewMMU())

	c.setFlags(true, false, true, false)
	if c.F != 0xA0 {
		t.Errorf("expected F to be 0xA0, got 0x%02X", c.F)
	}

	// the low nibble must never be set
	c.F = 0x0F
	c.setFlags(false, true, false, true)
	if c.F != 0x50 {
		t.Errorf("expected F to be 0x50, got 0x%02X", c.F)
	}

	c.setFlag(FlagZero)
	if !c.isFlagSet(FlagZero) {
		t.Error("expected zero flag to be set")
	}
	c.clearFlag(FlagCarry)
	if c.isFlagSet(FlagCarry) || c.carry() != 0 {
		t.Error("expected carry flag to be reset")
	}
}

func TestConditions(t *testing.T) {
	tests := []struct {
		f    uint8
		cc   Condition
		want bool
	}{
		{0x00, ConditionNZ, true},
		{0x80, ConditionNZ, false},
		{0x80, ConditionZ, true},
		{0x00, ConditionZ, false},
		{0x00, ConditionNC, true},
		{0x10, ConditionNC, false},
		{0x10, ConditionC, true},
		{0xE0, ConditionC, false},
	}
	c := NewCPU(mmu.NewMMU())
	for _, tt := range tests {
		c.F = tt.f
		if got := c.test(tt.cc); got != tt.want {
			t.Errorf("%s with F=%02X: expected %v, got %v", tt.cc, tt.f, tt.want, got)
		}
	}
}
