package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MeetingSlot identifies one of the five mentorship meetings (1..5).
type MeetingSlot int

// MeetingSlotCount is the number of fixed meeting slots.
const MeetingSlotCount = 5

// MeetingLegends maps each slot to the topic covered in that meeting.
var MeetingLegends = map[MeetingSlot]string{
	1: "Diferencial Artístico",
	2: "Montar Pacotes",
	3: "Roteirizar Anúncios",
	4: "Revisão de Funil",
	5: "Revisão Geral",
}

// Valid reports whether the slot is within 1..5.
func (s MeetingSlot) Valid() bool {
	return s >= 1 && s <= MeetingSlotCount
}

// Legend returns the meeting topic, or an empty string for an invalid slot.
func (s MeetingSlot) Legend() string {
	return MeetingLegends[s]
}

// MeetingSlots returns all slots in order.
func MeetingSlots() []MeetingSlot {
	slots := make([]MeetingSlot, MeetingSlotCount)
	for i := range slots {
		slots[i] = MeetingSlot(i + 1)
	}
	return slots
}

// Meetings records which of the five meetings have been completed.
// Index 0 holds slot 1.
type Meetings [MeetingSlotCount]bool

// Completed reports whether the given slot is done. Invalid slots are never done.
func (m Meetings) Completed(slot MeetingSlot) bool {
	if !slot.Valid() {
		return false
	}
	return m[slot-1]
}

// Toggle flips exactly one slot. Invalid slots are ignored.
func (m *Meetings) Toggle(slot MeetingSlot) {
	if !slot.Valid() {
		return
	}
	m[slot-1] = !m[slot-1]
}

// Count returns how many slots are done.
func (m Meetings) Count() int {
	n := 0
	for _, done := range m {
		if done {
			n++
		}
	}
	return n
}

// All reports whether every slot is done.
func (m Meetings) All() bool {
	return m.Count() == MeetingSlotCount
}

// MarshalJSON encodes the meetings as {"1": bool, ..., "5": bool}.
func (m Meetings) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, MeetingSlotCount)
	for i, done := range m {
		out[strconv.Itoa(i+1)] = done
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the object form. Missing slots stay false; unknown keys are rejected.
func (m *Meetings) UnmarshalJSON(data []byte) error {
	var in map[string]bool
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var out Meetings
	for key, done := range in {
		n, err := strconv.Atoi(key)
		if err != nil || !MeetingSlot(n).Valid() {
			return fmt.Errorf("unknown meeting slot %q", key)
		}
		out[n-1] = done
	}
	*m = out
	return nil
}
