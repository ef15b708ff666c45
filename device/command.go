// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/gputypes"
)

// CommandType identifies the type of a recorded command.
type CommandType uint8

const (
	CmdUpdateBuffer     CommandType = iota // Upload bytes into a buffer
	CmdBindProgram                         // Make a program current
	CmdBindVertexBuffer                    // Make a vertex buffer current
	CmdBindTexture                         // Bind a texture to a sampler unit
	CmdSetDrawState                        // Replace the fixed-function state
	CmdDraw                                // Issue a non-indexed draw
)

var commandTypeNames = [...]string{
	CmdUpdateBuffer:     "UpdateBuffer",
	CmdBindProgram:      "BindProgram",
	CmdBindVertexBuffer: "BindVertexBuffer",
	CmdBindTexture:      "BindTexture",
	CmdSetDrawState:     "SetDrawState",
	CmdDraw:             "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// UpdateBufferCommand uploads Data into Buffer starting at byte Offset.
type UpdateBufferCommand struct {
	Buffer BufferID
	Offset uint64
	Data   []byte
}

// Type implements Command.
func (UpdateBufferCommand) Type() CommandType { return CmdUpdateBuffer }

// BindProgramCommand makes Program current for subsequent draws.
type BindProgramCommand struct {
	Program ProgramID
}

// Type implements Command.
func (BindProgramCommand) Type() CommandType { return CmdBindProgram }

// BindVertexBufferCommand makes Buffer the vertex source for subsequent draws.
type BindVertexBufferCommand struct {
	Buffer BufferID
}

// Type implements Command.
func (BindVertexBufferCommand) Type() CommandType { return CmdBindVertexBuffer }

// BindTextureCommand binds Texture to sampler Unit, whose uniform is Name.
type BindTextureCommand struct {
	Unit    uint32
	Name    string
	Texture TextureID
}

// Type implements Command.
func (BindTextureCommand) Type() CommandType { return CmdBindTexture }

// SetDrawStateCommand replaces the fixed-function state.
type SetDrawStateCommand struct {
	State DrawState
}

// Type implements Command.
func (SetDrawStateCommand) Type() CommandType { return CmdSetDrawState }

// DrawCommand draws Count vertices starting at First.
type DrawCommand struct {
	Topology gputypes.PrimitiveTopology
	First    uint32
	Count    uint32
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// CommandBuffer records commands for later submission to a Device.
// The zero value is an empty buffer ready for use.
type CommandBuffer struct {
	cmds []Command
}

// Commands returns the recorded commands in order.
// The returned slice must not be modified.
func (cb *CommandBuffer) Commands() []Command {
	return cb.cmds
}

// Len returns the number of recorded commands.
func (cb *CommandBuffer) Len() int {
	return len(cb.cmds)
}

// DrawCount returns the number of draw commands recorded.
func (cb *CommandBuffer) DrawCount() int {
	n := 0
	for _, c := range cb.cmds {
		if c.Type() == CmdDraw {
			n++
		}
	}
	return n
}

// Reset discards all recorded commands, keeping allocated capacity.
func (cb *CommandBuffer) Reset() {
	clear(cb.cmds)
	cb.cmds = cb.cmds[:0]
}

// UpdateBuffer records an upload. Data is copied, so the caller may reuse it.
func (cb *CommandBuffer) UpdateBuffer(buf BufferID, offset uint64, data []byte) {
	cb.cmds = append(cb.cmds, UpdateBufferCommand{
		Buffer: buf,
		Offset: offset,
		Data:   append([]byte(nil), data...),
	})
}

// BindProgram records a program bind.
func (cb *CommandBuffer) BindProgram(p ProgramID) {
	cb.cmds = append(cb.cmds, BindProgramCommand{Program: p})
}

// BindVertexBuffer records a vertex buffer bind.
func (cb *CommandBuffer) BindVertexBuffer(buf BufferID) {
	cb.cmds = append(cb.cmds, BindVertexBufferCommand{Buffer: buf})
}

// BindTexture records a texture bind on a sampler unit.
func (cb *CommandBuffer) BindTexture(unit uint32, name string, tex TextureID) {
	cb.cmds = append(cb.cmds, BindTextureCommand{Unit: unit, Name: name, Texture: tex})
}

// SetDrawState records a draw-state change.
func (cb *CommandBuffer) SetDrawState(s DrawState) {
	cb.cmds = append(cb.cmds, SetDrawStateCommand{State: s})
}

// Draw records a draw call.
func (cb *CommandBuffer) Draw(topology gputypes.PrimitiveTopology, first, count uint32) {
	cb.cmds = append(cb.cmds, DrawCommand{Topology: topology, First: first, Count: count})
}
